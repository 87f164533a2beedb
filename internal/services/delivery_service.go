package services

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrInvalidDestination is returned when a destination has neither an address
// nor usable coordinates.
var ErrInvalidDestination = errors.New("destination requires an address or coordinates")

const DefaultMaxDistanceKm = 15.0

// persistentCache is implemented by caches that keep a durable copy.
type persistentCache interface {
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
}

// DeliveryQuote is a calculation plus the coverage verdict for the caller.
type DeliveryQuote struct {
	Calculation   domain.DeliveryCalculation
	OutOfCoverage bool
	MaxDistanceKm float64
	Resolved      bool
	Cached        bool
}

type DeliveryServiceConfig struct {
	Origin        domain.Location
	MaxDistanceKm float64
	Fees          domain.FeeModel
	Now           func() time.Time
}

// DeliveryService answers "what does delivery to this address cost?".
//
// Lookups go cache first; on a miss the estimator provides a distance, the
// fee model prices it and the result is cached. Unresolved destinations are
// priced at zero and never cached.
type DeliveryService struct {
	cache     ports.DeliveryCache
	estimator ports.DistanceEstimator
	fees      domain.FeeModel
	origin    domain.Location
	maxKm     float64
	now       func() time.Time
}

func NewDeliveryService(
	cfg DeliveryServiceConfig,
	cache ports.DeliveryCache,
	estimator ports.DistanceEstimator,
) (*DeliveryService, error) {
	if cache == nil || estimator == nil {
		return nil, errors.New("delivery service: cache and estimator are required")
	}
	if cfg.Origin.Empty() {
		return nil, errors.New("delivery service: origin is required")
	}
	if cfg.Fees.Costs == nil {
		cfg.Fees = domain.DefaultFeeModel()
	}
	if cfg.MaxDistanceKm <= 0 {
		cfg.MaxDistanceKm = DefaultMaxDistanceKm
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &DeliveryService{
		cache:     cache,
		estimator: estimator,
		fees:      cfg.Fees,
		origin:    cfg.Origin,
		maxKm:     cfg.MaxDistanceKm,
		now:       cfg.Now,
	}, nil
}

// Start restores the persisted cache. A failed load starts with an empty cache.
func (s *DeliveryService) Start(ctx context.Context) error {
	pc, ok := s.cache.(persistentCache)
	if !ok {
		return nil
	}
	if err := pc.Load(ctx); err != nil {
		return fmt.Errorf("delivery service: start: %w", err)
	}
	return nil
}

// Stop flushes the cache to its store.
func (s *DeliveryService) Stop(ctx context.Context) error {
	pc, ok := s.cache.(persistentCache)
	if !ok {
		return nil
	}
	if err := pc.Flush(ctx); err != nil {
		return fmt.Errorf("delivery service: stop: %w", err)
	}
	return nil
}

// Quote returns the delivery calculation for a destination.
func (s *DeliveryService) Quote(ctx context.Context, dest domain.Location) (_ DeliveryQuote, err error) {
	defer obs.Time(ctx, "delivery.Quote")(&err)

	if dest.Empty() {
		return DeliveryQuote{}, ErrInvalidDestination
	}
	key := cacheKey(dest)

	if calc, ok := s.cache.Get(ctx, key); ok {
		return s.quoteFor(calc, true, true), nil
	}

	res := s.estimator.Estimate(ctx, s.origin, dest)
	calc := s.Calculate(res)

	if !res.Resolved {
		obs.FromContext(ctx).WithField("destination", key).Warn("destination could not be located; fee not cached")
		return s.quoteFor(calc, false, false), nil
	}

	s.cache.Set(ctx, key, calc)

	q := s.quoteFor(calc, true, false)
	if q.OutOfCoverage {
		obs.FromContext(ctx).WithFields(logrus.Fields{
			"destination": key,
			"distance_km": calc.DistanceKm,
			"max_km":      s.maxKm,
		}).Info("destination outside delivery coverage")
	}
	return q, nil
}

// Calculate prices an estimator result.
func (s *DeliveryService) Calculate(res ports.DistanceResult) domain.DeliveryCalculation {
	fee := s.fees.Fee(res.DistanceKm)
	return domain.DeliveryCalculation{
		DistanceKm:      res.DistanceKm,
		DurationMinutes: res.DurationMinutes,
		Vehicle:         fee.Vehicle,
		Pricing:         fee.Pricing(),
		CalculatedAt:    s.now(),
		IsEstimate:      res.IsFallback,
	}
}

// Fee exposes the fee model for a raw distance.
func (s *DeliveryService) Fee(distanceKm float64) domain.FeeQuote {
	return s.fees.Fee(distanceKm)
}

// Forget drops the cached calculation for one address.
func (s *DeliveryService) Forget(ctx context.Context, address string) {
	s.cache.Remove(ctx, address)
}

// Reset empties the cache.
func (s *DeliveryService) Reset(ctx context.Context) {
	s.cache.Clear(ctx)
}

func (s *DeliveryService) MaxDistanceKm() float64 { return s.maxKm }

func (s *DeliveryService) quoteFor(calc domain.DeliveryCalculation, resolved, cached bool) DeliveryQuote {
	return DeliveryQuote{
		Calculation:   calc,
		OutOfCoverage: resolved && calc.DistanceKm > s.maxKm,
		MaxDistanceKm: s.maxKm,
		Resolved:      resolved,
		Cached:        cached,
	}
}

// The address is the key when present; coordinate-only requests key on "lat,lng".
func cacheKey(dest domain.Location) string {
	if a := strings.TrimSpace(dest.Address); a != "" {
		return a
	}
	return dest.Coords.String()
}
