package domain

import "math"

// Per-kilometer operating costs of a vehicle.
type VehicleCost struct {
	Fuel        float64
	Oil         float64
	Maintenance float64
}

func (c VehicleCost) PerKm() float64 {
	return Round2(c.Fuel + c.Oil + c.Maintenance)
}

// Result of pricing a distance.
type FeeQuote struct {
	Vehicle  Vehicle
	BaseCost float64
	Profit   float64
	Total    float64
}

// FeeModel turns a road distance into a client price.
//
// The vehicle is chosen by distance threshold, the base cost is the vehicle's
// per-km cost times the distance, and a fixed profit rate is added on top.
// The total is the only figure rounded up; everything else rounds to cents.
type FeeModel struct {
	MotoMaxKm  float64
	ProfitRate float64
	Costs      map[Vehicle]VehicleCost
}

func DefaultFeeModel() FeeModel {
	return FeeModel{
		MotoMaxKm:  3,
		ProfitRate: 0.05,
		Costs: map[Vehicle]VehicleCost{
			VehicleMoto: {Fuel: 0.80, Oil: 0.20, Maintenance: 0.30},
			VehicleAuto: {Fuel: 1.50, Oil: 0.30, Maintenance: 0.50},
		},
	}
}

// VehicleFor returns the vehicle that serves the given distance.
func (m FeeModel) VehicleFor(distanceKm float64) Vehicle {
	if distanceKm <= m.MotoMaxKm {
		return VehicleMoto
	}
	return VehicleAuto
}

// Fee prices a distance. Non-finite, zero or negative distances yield a
// zeroed quote for a moto instead of an error.
func (m FeeModel) Fee(distanceKm float64) FeeQuote {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm <= 0 {
		return FeeQuote{Vehicle: VehicleMoto}
	}

	vehicle := m.VehicleFor(distanceKm)
	base := Round2(m.Costs[vehicle].PerKm() * distanceKm)
	profit := Round2(base * m.ProfitRate)

	// Sum is rounded to cents before the ceiling.
	total := math.Ceil(Round2(base + profit))

	return FeeQuote{
		Vehicle:  vehicle,
		BaseCost: base,
		Profit:   profit,
		Total:    total,
	}
}

// Pricing converts the quote into the cached pricing breakdown.
func (q FeeQuote) Pricing() Pricing {
	return Pricing{
		BaseCost:     q.BaseCost,
		ProfitMargin: q.Profit,
		ClientPrice:  q.Total,
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
