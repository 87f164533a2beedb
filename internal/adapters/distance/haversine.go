package distance

import (
	"delivery-fee-service/internal/domain"

	"github.com/umahmood/haversine"
)

// HaversineKm returns the great-circle distance in kilometres (R = 6371 km).
func HaversineKm(a, b domain.Coordinates) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lng},
		haversine.Coord{Lat: b.Lat, Lon: b.Lng},
	)
	return km
}
