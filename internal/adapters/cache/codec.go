package cache

import (
	"delivery-fee-service/internal/domain"
	"encoding/json"
	"fmt"
	"time"
)

type pricingRecord struct {
	BaseCost     float64 `json:"baseCost"`
	ProfitMargin float64 `json:"profitMargin"`
	ClientPrice  float64 `json:"clientPrice"`
}

type calculationRecord struct {
	DistanceKm      float64       `json:"distanceKm"`
	DurationMinutes int           `json:"durationMinutes"`
	Vehicle         string        `json:"vehicle"`
	Pricing         pricingRecord `json:"pricing"`
	CalculatedAt    time.Time     `json:"calculatedAt"`
	IsEstimate      bool          `json:"isEstimate"`
}

type entryRecord struct {
	Calculation calculationRecord `json:"calculation"`
	CachedAt    time.Time         `json:"cachedAt"`
}

func encodeEntries(entries map[string]Entry) ([]byte, error) {
	out := make(map[string]entryRecord, len(entries))
	for k, e := range entries {
		calc := e.Calculation
		out[k] = entryRecord{
			Calculation: calculationRecord{
				DistanceKm:      calc.DistanceKm,
				DurationMinutes: calc.DurationMinutes,
				Vehicle:         string(calc.Vehicle),
				Pricing: pricingRecord{
					BaseCost:     calc.Pricing.BaseCost,
					ProfitMargin: calc.Pricing.ProfitMargin,
					ClientPrice:  calc.Pricing.ClientPrice,
				},
				CalculatedAt: calc.CalculatedAt,
				IsEstimate:   calc.IsEstimate,
			},
			CachedAt: e.CachedAt,
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode cache entries: %w", err)
	}
	return b, nil
}

// Keys are re-normalized on decode so blobs written by older key rules still hit.
func decodeEntries(blob []byte) (map[string]Entry, error) {
	entries := make(map[string]Entry)
	if len(blob) == 0 {
		return entries, nil
	}

	var in map[string]entryRecord
	if err := json.Unmarshal(blob, &in); err != nil {
		return nil, fmt.Errorf("decode cache entries: %w", err)
	}

	for k, r := range in {
		key := NormalizeAddress(k)
		if key == "" {
			continue
		}

		vehicle := domain.Vehicle(r.Calculation.Vehicle)
		if vehicle != domain.VehicleAuto {
			vehicle = domain.VehicleMoto
		}

		entries[key] = Entry{
			Calculation: domain.DeliveryCalculation{
				DistanceKm:      r.Calculation.DistanceKm,
				DurationMinutes: r.Calculation.DurationMinutes,
				Vehicle:         vehicle,
				Pricing: domain.Pricing{
					BaseCost:     r.Calculation.Pricing.BaseCost,
					ProfitMargin: r.Calculation.Pricing.ProfitMargin,
					ClientPrice:  r.Calculation.Pricing.ClientPrice,
				},
				CalculatedAt: r.Calculation.CalculatedAt,
				IsEstimate:   r.Calculation.IsEstimate,
			},
			CachedAt: r.CachedAt,
		}
	}
	return entries, nil
}
