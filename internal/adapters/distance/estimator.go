package distance

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/metrics"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// FallbackModel turns a straight-line distance into a road estimate.
type FallbackModel struct {
	RoadFactor      float64
	AverageSpeedKmh float64
	DurationBuffer  float64
}

func DefaultFallbackModel() FallbackModel {
	return FallbackModel{
		RoadFactor:      1.4,
		AverageSpeedKmh: 30,
		DurationBuffer:  1.3,
	}
}

// Apply estimates road distance and duration from two coordinates.
func (m FallbackModel) Apply(a, b domain.Coordinates) ports.DistanceResult {
	km := domain.Round2(HaversineKm(a, b) * m.RoadFactor)

	minutes := 0
	if m.AverageSpeedKmh > 0 {
		minutes = int(math.Ceil(km / m.AverageSpeedKmh * 60 * m.DurationBuffer))
	}

	return ports.DistanceResult{
		DistanceKm:      km,
		DurationMinutes: minutes,
		IsFallback:      true,
		Resolved:        true,
	}
}

// Estimator prefers the remote provider and degrades to the fallback model.
//
// The provider is only asked when both endpoints carry coordinates; an
// address-only endpoint is geocoded and estimated with the fallback model.
//
// Provider and Geocoder may be nil; the estimator then works from
// coordinates alone.
type Estimator struct {
	Provider ports.DistanceProvider
	Geocoder ports.Geocoder
	Model    FallbackModel
	Timeout  time.Duration
}

func NewEstimator(provider ports.DistanceProvider, geocoder ports.Geocoder, model FallbackModel) *Estimator {
	return &Estimator{
		Provider: provider,
		Geocoder: geocoder,
		Model:    model,
		Timeout:  5 * time.Second,
	}
}

var _ ports.DistanceEstimator = (*Estimator)(nil)

// Estimate never fails. An unresolvable endpoint yields Resolved == false.
func (e *Estimator) Estimate(ctx context.Context, origin, destination domain.Location) ports.DistanceResult {
	log := obs.FromContext(ctx)

	if e.Provider != nil && origin.HasCoordinates() && destination.HasCoordinates() {
		res, err := e.callProvider(ctx, origin, destination)
		if err == nil {
			metrics.RecordEstimate("api")
			return res
		}
		log.WithError(err).WithField("destination", destination.Query()).
			Warn("distance api unavailable; using fallback estimate")
	}

	a, okA := e.resolve(ctx, origin)
	b, okB := e.resolve(ctx, destination)
	if !okA || !okB {
		log.WithFields(logrus.Fields{
			"origin_resolved":      okA,
			"destination_resolved": okB,
		}).Warn("cannot estimate distance; endpoint not located")
		metrics.RecordEstimate("unresolved")
		return ports.DistanceResult{}
	}

	metrics.RecordEstimate("fallback")
	return e.Model.Apply(a, b)
}

func (e *Estimator) callProvider(ctx context.Context, origin, destination domain.Location) (ports.DistanceResult, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	return e.Provider.GetDistance(ctx, origin, destination)
}

func (e *Estimator) resolve(ctx context.Context, loc domain.Location) (domain.Coordinates, bool) {
	if loc.HasCoordinates() {
		return *loc.Coords, true
	}
	if e.Geocoder == nil || loc.Address == "" {
		return domain.Coordinates{}, false
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	coords, err := e.Geocoder.Geocode(ctx, loc.Address)
	if err != nil {
		obs.FromContext(ctx).WithError(err).WithField("address", loc.Address).Warn("geocode failed")
		return domain.Coordinates{}, false
	}
	return coords, true
}
