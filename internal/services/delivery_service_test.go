package services

import (
	"context"
	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/adapters/store"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// scriptedEstimator answers by destination query and counts calls.
type scriptedEstimator struct {
	mu      sync.Mutex
	results map[string]ports.DistanceResult
	calls   int
}

func (e *scriptedEstimator) Estimate(ctx context.Context, origin, destination domain.Location) ports.DistanceResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	return e.results[destination.Query()]
}

func (e *scriptedEstimator) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func km(d float64) ports.DistanceResult {
	return ports.DistanceResult{DistanceKm: d, DurationMinutes: int(d * 3), Resolved: true}
}

type fixture struct {
	clock *fakeClock
	cache *cache.DeliveryCache
	est   *scriptedEstimator
	svc   *DeliveryService
}

func newFixture(t *testing.T, blobs ports.BlobStore, results map[string]ports.DistanceResult) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 5, 10, 21, 0, 0, 0, domain.StoreZone)}
	c := cache.NewDeliveryCache(cache.Config{Now: clock.Now}, blobs)
	est := &scriptedEstimator{results: results}

	svc, err := NewDeliveryService(DeliveryServiceConfig{
		Origin: domain.Location{Coords: &domain.Coordinates{Lat: -16.5076, Lng: -68.1264}},
		Now:    clock.Now,
	}, c, est)
	require.NoError(t, err)

	return &fixture{clock: clock, cache: c, est: est, svc: svc}
}

func TestQuoteCachesByNormalizedAddress(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{
		"Av. Arce  123, Sopocachi": km(2.5),
	})
	ctx := context.Background()

	first, err := f.svc.Quote(ctx, domain.Location{Address: "Av. Arce  123, Sopocachi"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, domain.VehicleMoto, first.Calculation.Vehicle)
	assert.Equal(t, 4.0, first.Calculation.Pricing.ClientPrice)

	second, err := f.svc.Quote(ctx, domain.Location{Address: "av. arce 123 ,sopocachi"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Calculation, second.Calculation)
	assert.Equal(t, 1, f.est.Calls())
}

func TestQuoteExpiresAfterTTL(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{"Calle 21": km(5)})
	ctx := context.Background()
	dest := domain.Location{Address: "Calle 21"}

	_, err := f.svc.Quote(ctx, dest)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)
	q, err := f.svc.Quote(ctx, dest)
	require.NoError(t, err)
	assert.True(t, q.Cached)

	f.clock.Advance(time.Minute)
	q, err = f.svc.Quote(ctx, dest)
	require.NoError(t, err)
	assert.False(t, q.Cached)
	assert.Equal(t, 2, f.est.Calls())
}

func TestQuoteOutOfCoverage(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{
		"far":  km(16),
		"edge": km(15),
	})
	ctx := context.Background()

	far, err := f.svc.Quote(ctx, domain.Location{Address: "far"})
	require.NoError(t, err)
	assert.True(t, far.OutOfCoverage)
	assert.Equal(t, 15.0, far.MaxDistanceKm)
	assert.Equal(t, domain.VehicleAuto, far.Calculation.Vehicle)
	assert.Equal(t, 36.8, far.Calculation.Pricing.BaseCost)
	assert.Equal(t, 1.84, far.Calculation.Pricing.ProfitMargin)
	assert.Equal(t, 39.0, far.Calculation.Pricing.ClientPrice)

	edge, err := f.svc.Quote(ctx, domain.Location{Address: "edge"})
	require.NoError(t, err)
	assert.False(t, edge.OutOfCoverage)
}

func TestQuoteUnresolvedIsNotCached(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{})
	ctx := context.Background()
	dest := domain.Location{Address: "nowhere"}

	for i := 0; i < 2; i++ {
		q, err := f.svc.Quote(ctx, dest)
		require.NoError(t, err)
		assert.False(t, q.Resolved)
		assert.False(t, q.OutOfCoverage)
		assert.Equal(t, 0.0, q.Calculation.Pricing.ClientPrice)
		assert.Equal(t, domain.VehicleMoto, q.Calculation.Vehicle)
	}
	assert.Equal(t, 2, f.est.Calls())
	assert.Equal(t, 0, f.cache.Len())
}

func TestQuoteFallbackMarksEstimate(t *testing.T) {
	res := km(4)
	res.IsFallback = true
	f := newFixture(t, nil, map[string]ports.DistanceResult{"-16.540000,-68.080000": res})

	q, err := f.svc.Quote(context.Background(), domain.Location{Coords: &domain.Coordinates{Lat: -16.54, Lng: -68.08}})
	require.NoError(t, err)
	assert.True(t, q.Calculation.IsEstimate)

	_, ok := f.cache.Get(context.Background(), "-16.540000,-68.080000")
	assert.True(t, ok)
}

func TestQuoteRejectsEmptyDestination(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.Quote(context.Background(), domain.Location{Address: "   "})
	assert.True(t, errors.Is(err, ErrInvalidDestination))
	assert.Equal(t, 0, f.est.Calls())
}

func TestForgetAndReset(t *testing.T) {
	f := newFixture(t, nil, map[string]ports.DistanceResult{"a": km(1), "b": km(2)})
	ctx := context.Background()

	for _, a := range []string{"a", "b"} {
		_, err := f.svc.Quote(ctx, domain.Location{Address: a})
		require.NoError(t, err)
	}
	f.svc.Forget(ctx, " A ")
	assert.Equal(t, 1, f.cache.Len())

	f.svc.Reset(ctx)
	assert.Equal(t, 0, f.cache.Len())
}

func TestStartStopRestoresCache(t *testing.T) {
	blobs := store.NewMemoryStore()
	results := map[string]ports.DistanceResult{"Calle 8": km(6)}
	ctx := context.Background()

	f := newFixture(t, blobs, results)
	require.NoError(t, f.svc.Start(ctx))
	_, err := f.svc.Quote(ctx, domain.Location{Address: "Calle 8"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Stop(ctx))

	restarted := newFixture(t, blobs, results)
	require.NoError(t, restarted.svc.Start(ctx))
	q, err := restarted.svc.Quote(ctx, domain.Location{Address: "calle 8"})
	require.NoError(t, err)
	assert.True(t, q.Cached)
	assert.Equal(t, 0, restarted.est.Calls())
}

func TestNewDeliveryServiceRequiresDependencies(t *testing.T) {
	_, err := NewDeliveryService(DeliveryServiceConfig{}, nil, nil)
	assert.Error(t, err)

	c := cache.NewDeliveryCache(cache.Config{}, nil)
	_, err = NewDeliveryService(DeliveryServiceConfig{}, c, &scriptedEstimator{})
	assert.Error(t, err)
}
