package cache

import (
	"context"
	"delivery-fee-service/internal/domain"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type GeocodeSeed struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Populate the geocode cache with known address coordinates from a JSON file.
func SeedGeocodeFromJSON(ctx context.Context, c *SQLGeocodeCache, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed geocode cache: read %q: %w", jsonPath, err)
	}

	var data []GeocodeSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed geocode cache: parse json: %w", err)
	}

	rows := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		addr := strings.TrimSpace(item.Address)
		if addr == "" {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: address cannot be empty", i+1)
		}

		coords := domain.Coordinates{Lat: item.Lat, Lng: item.Lng}
		if !coords.Valid() {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: invalid coordinates", i+1)
		}
		rows[addr] = coords
	}

	if err := c.PutMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed geocode cache: %w", err)
	}

	return len(rows), nil
}
