package distance

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address, consulting the geocode cache before the API.
func (c *MapsClient) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := strings.Join(strings.Fields(address), " ")
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if c.geocodeCache != nil {
		hits, err := c.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			obs.FromContext(ctx).WithError(err).Warn("geocode cache read failed")
		}
		for _, coords := range hits {
			return coords, nil
		}
	}

	params := map[string]string{"address": norm}
	if c.region != "" {
		params["region"] = c.region
	}

	req, err := c.newRequest(ctx, "/maps/api/geocode/json", params)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" {
		return domain.Coordinates{}, &apiStatusError{Endpoint: "geocode", Status: decoded.Status, Message: decoded.ErrorMessage}
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", norm)
	}

	loc := decoded.Results[0].Geometry.Location
	coords := domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
	if !coords.Valid() {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinates for %q", norm)
	}

	if c.geocodeCache != nil {
		if err := c.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			obs.FromContext(ctx).WithError(err).Warn("geocode cache write failed")
		}
	}

	return coords, nil
}
