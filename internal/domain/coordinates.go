package domain

import (
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as "lat,lng" for external API compatibility.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lng, 'f', 6, 64)
}

// Valid reports whether the coordinates are finite and within WGS84 bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// A trip endpoint: either a coordinate pair, a free-text address, or both.
type Location struct {
	Address string
	Coords  *Coordinates
}

// HasCoordinates reports whether the location carries usable coordinates.
func (l Location) HasCoordinates() bool {
	return l.Coords != nil && l.Coords.Valid()
}

// Query returns the value sent to the mapping API for this endpoint.
// Coordinates win over the address when both are present.
func (l Location) Query() string {
	if l.HasCoordinates() {
		return l.Coords.String()
	}
	return strings.TrimSpace(l.Address)
}

// Empty reports whether the location has neither coordinates nor an address.
func (l Location) Empty() bool {
	return !l.HasCoordinates() && strings.TrimSpace(l.Address) == ""
}
