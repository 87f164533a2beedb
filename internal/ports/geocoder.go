package ports

import (
	"context"
	"delivery-fee-service/internal/domain"
)

// Resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
