package ports

import (
	"context"
	"delivery-fee-service/internal/domain"
)

// Road distance and travel duration between two locations.
// Resolved is false when no distance could be computed at all (an endpoint
// could not be located); DistanceKm is then zero.
type DistanceResult struct {
	DistanceKm      float64
	DurationMinutes int
	IsFallback      bool
	Resolved        bool
}

// Contract for retrieving travel distance and duration from a remote mapping API.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two locations.
	GetDistance(ctx context.Context, origin domain.Location, destination domain.Location) (DistanceResult, error)
}

// Contract for the best-effort estimator. Implementations never fail; API
// errors are replaced by a fallback estimate.
type DistanceEstimator interface {
	Estimate(ctx context.Context, origin domain.Location, destination domain.Location) DistanceResult
}
