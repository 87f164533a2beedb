package domain

import "time"

// Vehicle used for a delivery.
type Vehicle string

const (
	VehicleMoto Vehicle = "moto"
	VehicleAuto Vehicle = "auto"
)

// Monetary breakdown of a delivery fee.
type Pricing struct {
	BaseCost     float64
	ProfitMargin float64
	ClientPrice  float64
}

// DeliveryCalculation is the cached and returned result of a delivery-fee request.
// IsEstimate is set when the distance came from the great-circle fallback
// rather than the mapping API.
type DeliveryCalculation struct {
	DistanceKm      float64
	DurationMinutes int
	Vehicle         Vehicle
	Pricing         Pricing
	CalculatedAt    time.Time
	IsEstimate      bool
}
