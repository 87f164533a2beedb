package services

import (
	"context"
	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestQuoteManyPreservesOrder(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{
		"a": km(1), "b": km(8), "c": km(20),
	})

	quotes, err := f.svc.QuoteMany(context.Background(), []domain.Location{
		{Address: "a"}, {Address: "b"}, {Address: "c"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}

	wantKm := []float64{1, 8, 20}
	for i, q := range quotes {
		if q.Calculation.DistanceKm != wantKm[i] {
			t.Fatalf("quote %d: expected %v km, got %v", i, wantKm[i], q.Calculation.DistanceKm)
		}
	}
	if !quotes[2].OutOfCoverage {
		t.Fatalf("expected last quote to be out of coverage")
	}
}

func TestQuoteManyRejectsEmptyDestination(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.QuoteMany(context.Background(), []domain.Location{{Address: "a"}, {}})
	if !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination, got %v", err)
	}
	if f.est.Calls() != 0 {
		t.Fatalf("expected no estimates, got %d", f.est.Calls())
	}
}

func TestQuoteManyEmpty(t *testing.T) {
	f := newFixture(t, nil, nil)

	quotes, err := f.svc.QuoteMany(context.Background(), nil)
	if err != nil || len(quotes) != 0 {
		t.Fatalf("expected empty result, got %v, %v", quotes, err)
	}
}

type slowEstimator struct {
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (e *slowEstimator) Estimate(ctx context.Context, origin, destination domain.Location) ports.DistanceResult {
	e.mu.Lock()
	e.inFlight++
	if e.inFlight > e.peak {
		e.peak = e.inFlight
	}
	e.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	e.mu.Lock()
	e.inFlight--
	e.mu.Unlock()
	return km(2)
}

func TestQuoteManyBoundsConcurrency(t *testing.T) {
	est := &slowEstimator{}
	svc, err := NewDeliveryService(DeliveryServiceConfig{
		Origin: domain.Location{Address: "store"},
	}, cache.NewDeliveryCache(cache.Config{}, nil), est)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dests := make([]domain.Location, 12)
	for i := range dests {
		dests[i] = domain.Location{Address: fmt.Sprintf("Calle %d", i)}
	}

	quotes, err := svc.QuoteMany(context.Background(), dests)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != len(dests) {
		t.Fatalf("len(quotes) = %d, want %d", len(quotes), len(dests))
	}
	if est.peak > batchConcurrency {
		t.Fatalf("peak concurrency = %d, want <= %d", est.peak, batchConcurrency)
	}
}
