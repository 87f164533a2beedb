package distance

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"errors"
	"net/http"
	"strings"
	"time"
)

const DefaultMapsBaseURL = "https://maps.googleapis.com"

// geocodeStore is the subset of the SQL geocode cache used by the client.
type geocodeStore interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// MapsClient talks to a Google-compatible Distance Matrix and Geocoding API.
//
// It implements both DistanceProvider and Geocoder. Every call is a single
// attempt bounded by the client timeout; there is no retry.
type MapsClient struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	mode         string
	region       string
	geocodeCache geocodeStore
}

type MapsOption func(*MapsClient)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(u string) MapsOption {
	return func(c *MapsClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) MapsOption {
	return func(c *MapsClient) { c.session.Timeout = d }
}

// WithGeocodeCache resolves addresses through a persistent cache first.
func WithGeocodeCache(gc geocodeStore) MapsOption {
	return func(c *MapsClient) { c.geocodeCache = gc }
}

// WithRegion biases geocoding results to a country code.
func WithRegion(region string) MapsOption {
	return func(c *MapsClient) { c.region = region }
}

func NewMapsClient(apiKey string, opts ...MapsOption) (*MapsClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("maps api key is empty")
	}

	c := &MapsClient{
		session: &http.Client{Timeout: 5 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultMapsBaseURL,
		mode:    "driving",
		region:  "bo",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var (
	_ ports.DistanceProvider = (*MapsClient)(nil)
	_ ports.Geocoder         = (*MapsClient)(nil)
)
