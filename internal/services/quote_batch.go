package services

import (
	"context"
	"delivery-fee-service/internal/domain"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 5

// QuoteMany quotes several destinations concurrently and returns the quotes
// in input order. The first invalid destination aborts the batch.
func (s *DeliveryService) QuoteMany(ctx context.Context, dests []domain.Location) ([]DeliveryQuote, error) {
	if len(dests) == 0 {
		return []DeliveryQuote{}, nil
	}

	for i, d := range dests {
		if d.Empty() {
			return nil, fmt.Errorf("quote many: destination %d: %w", i, ErrInvalidDestination)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	quotes := make([]DeliveryQuote, len(dests))
	for i, d := range dests {
		g.Go(func() error {
			q, err := s.Quote(gctx, d)
			if err != nil {
				return fmt.Errorf("quote many: destination %d: %w", i, err)
			}
			quotes[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}
