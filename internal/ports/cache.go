package ports

import (
	"context"
	"delivery-fee-service/internal/domain"
)

// Address-keyed cache of delivery calculations.
// Implementations normalize the address before using it as a key.
type DeliveryCache interface {
	Get(ctx context.Context, address string) (domain.DeliveryCalculation, bool)
	Set(ctx context.Context, address string, calc domain.DeliveryCalculation)
	Remove(ctx context.Context, address string)
	Clear(ctx context.Context)
}

// Persists a single serialized blob under a fixed key.
// Load returns (nil, nil) when nothing has been stored yet.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}
