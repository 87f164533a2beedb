package distance

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GetDistance retrieves road distance and duration for one origin/destination pair.
func (c *MapsClient) GetDistance(
	ctx context.Context,
	origin domain.Location,
	destination domain.Location,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "maps.GetDistance")(&err)

	if origin.Empty() || destination.Empty() {
		return ports.DistanceResult{}, errors.New("get distance: origin and destination must be non-empty")
	}

	req, err := c.newRequest(ctx, "/maps/api/distancematrix/json", map[string]string{
		"origins":      origin.Query(),
		"destinations": destination.Query(),
		"mode":         c.mode,
		"units":        "metric",
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("decode matrix response: %w", err)
	}

	if mr.Status != "OK" {
		return ports.DistanceResult{}, &apiStatusError{Endpoint: "distancematrix", Status: mr.Status, Message: mr.ErrorMessage}
	}

	if len(mr.Rows) != 1 || len(mr.Rows[0].Elements) != 1 {
		return ports.DistanceResult{}, fmt.Errorf("expected a 1x1 matrix; got %d rows", len(mr.Rows))
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return ports.DistanceResult{}, &apiStatusError{Endpoint: "distancematrix element", Status: el.Status}
	}

	if el.Distance.Value < 0 || el.Duration.Value < 0 {
		return ports.DistanceResult{}, fmt.Errorf("matrix returned negative metrics for %q", destination.Query())
	}

	return ports.DistanceResult{
		DistanceKm:      domain.Round2(el.Distance.Value / 1000),
		DurationMinutes: int(math.Round(el.Duration.Value / 60)),
		Resolved:        true,
	}, nil
}
