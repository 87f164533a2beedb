package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// La Paz has no daylight saving time, so a fixed zone is exact.
var StoreZone = time.FixedZone("BOT", -4*60*60)

// National holidays for 2025. Holidays keep the store open all day.
var DefaultHolidays = []string{
	"2025-01-01",
	"2025-01-22",
	"2025-03-03",
	"2025-03-04",
	"2025-04-18",
	"2025-05-01",
	"2025-06-19",
	"2025-06-21",
	"2025-08-06",
	"2025-11-02",
	"2025-12-25",
}

// ServiceHours decides whether deliveries are being taken at a given instant.
//
// The store works overnight: open from OpenHour until CloseHour the next
// morning. Listed holidays override the hour check.
type ServiceHours struct {
	OpenHour  int
	CloseHour int
	Zone      *time.Location
	holidays  map[string]struct{}
}

func NewServiceHours(openHour, closeHour int, holidays []string) (*ServiceHours, error) {
	if openHour < 0 || openHour > 23 || closeHour < 0 || closeHour > 23 {
		return nil, fmt.Errorf("service hours: hours must be within 0..23 (open=%d close=%d)", openHour, closeHour)
	}

	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		d, err := time.Parse(dateLayout, h)
		if err != nil {
			return nil, fmt.Errorf("service hours: parse holiday %q: %w", h, err)
		}
		set[d.Format(dateLayout)] = struct{}{}
	}

	return &ServiceHours{
		OpenHour:  openHour,
		CloseHour: closeHour,
		Zone:      StoreZone,
		holidays:  set,
	}, nil
}

// IsHoliday reports whether t falls on a listed holiday in store time.
func (s *ServiceHours) IsHoliday(t time.Time) bool {
	_, ok := s.holidays[t.In(s.zone()).Format(dateLayout)]
	return ok
}

// IsHolidayDate reports whether a YYYY-MM-DD date is a listed holiday.
func (s *ServiceHours) IsHolidayDate(date string) (bool, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false, fmt.Errorf("is holiday: parse date %q: %w", date, err)
	}
	_, ok := s.holidays[d.Format(dateLayout)]
	return ok, nil
}

// IsOpen reports whether deliveries are accepted at t.
func (s *ServiceHours) IsOpen(t time.Time) bool {
	if s.IsHoliday(t) {
		return true
	}

	hour := t.In(s.zone()).Hour()
	if s.OpenHour > s.CloseHour {
		return hour >= s.OpenHour || hour < s.CloseHour
	}
	return hour >= s.OpenHour && hour < s.CloseHour
}

func (s *ServiceHours) zone() *time.Location {
	if s.Zone == nil {
		return StoreZone
	}
	return s.Zone
}
