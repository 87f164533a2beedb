package domain

import (
	"testing"
	"time"
)

func newTestHours(t *testing.T) *ServiceHours {
	t.Helper()

	h, err := NewServiceHours(19, 5, DefaultHolidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestServiceHoursHolidayOverridesHour(t *testing.T) {
	h := newTestHours(t)

	ok, err := h.IsHolidayDate("2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("2025-01-01 should be a holiday")
	}

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, StoreZone)
	if !h.IsOpen(at) {
		t.Fatalf("expected open on holiday at 10:00")
	}
}

func TestServiceHoursRegularDay(t *testing.T) {
	h := newTestHours(t)

	cases := []struct {
		hour int
		min  int
		want bool
	}{
		{10, 0, false},
		{18, 59, false},
		{19, 0, true},
		{23, 30, true},
		{0, 0, true},
		{4, 59, true},
		{5, 0, false},
	}

	for _, c := range cases {
		at := time.Date(2025, 2, 11, c.hour, c.min, 0, 0, StoreZone)
		if got := h.IsOpen(at); got != c.want {
			t.Errorf("IsOpen(%02d:%02d) = %v, want %v", c.hour, c.min, got, c.want)
		}
	}
}

func TestServiceHoursUsesStoreZone(t *testing.T) {
	h := newTestHours(t)

	// 23:30 UTC is 19:30 in La Paz.
	at := time.Date(2025, 2, 11, 23, 30, 0, 0, time.UTC)
	if !h.IsOpen(at) {
		t.Fatalf("expected open at 19:30 store time")
	}
}

func TestServiceHoursRejectsBadInput(t *testing.T) {
	if _, err := NewServiceHours(19, 5, []string{"01/01/2025"}); err == nil {
		t.Fatalf("expected error for malformed holiday")
	}
	if _, err := NewServiceHours(24, 5, nil); err == nil {
		t.Fatalf("expected error for hour out of range")
	}

	h := newTestHours(t)
	if _, err := h.IsHolidayDate("not-a-date"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestLocationQuery(t *testing.T) {
	addr := Location{Address: "  Av. Arce 123  "}
	if addr.HasCoordinates() {
		t.Fatalf("address-only location should not have coordinates")
	}
	if got := addr.Query(); got != "Av. Arce 123" {
		t.Fatalf("Query() = %q, want %q", got, "Av. Arce 123")
	}

	pt := Location{Address: "ignored", Coords: &Coordinates{Lat: -16.5, Lng: -68.15}}
	if got := pt.Query(); got != "-16.500000,-68.150000" {
		t.Fatalf("Query() = %q", got)
	}

	if !(Location{}).Empty() {
		t.Fatalf("zero location should be empty")
	}
}
