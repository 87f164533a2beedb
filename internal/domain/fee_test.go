package domain

import (
	"math"
	"testing"
)

func TestFeeModelVehicleThreshold(t *testing.T) {
	m := DefaultFeeModel()

	if got := m.Fee(3.0).Vehicle; got != VehicleMoto {
		t.Fatalf("Fee(3.0).Vehicle = %q, want %q", got, VehicleMoto)
	}
	if got := m.Fee(3.01).Vehicle; got != VehicleAuto {
		t.Fatalf("Fee(3.01).Vehicle = %q, want %q", got, VehicleAuto)
	}
}

func TestFeeModelAutoTenKm(t *testing.T) {
	q := DefaultFeeModel().Fee(10)

	if q.Vehicle != VehicleAuto {
		t.Fatalf("vehicle = %q, want auto", q.Vehicle)
	}
	if q.BaseCost != 23.00 {
		t.Fatalf("base cost = %v, want 23.00", q.BaseCost)
	}
	if q.Profit != 1.15 {
		t.Fatalf("profit = %v, want 1.15", q.Profit)
	}
	if q.Total != 25 {
		t.Fatalf("total = %v, want 25", q.Total)
	}
}

func TestFeeModelMoto(t *testing.T) {
	q := DefaultFeeModel().Fee(2)

	// 1.30 * 2 = 2.60, profit 0.13, total ceil(2.73) = 3
	if q.BaseCost != 2.60 || q.Profit != 0.13 || q.Total != 3 {
		t.Fatalf("Fee(2) = %+v, want base=2.60 profit=0.13 total=3", q)
	}
}

func TestFeeModelRoundsTotalUp(t *testing.T) {
	q := DefaultFeeModel().Fee(20)

	// 2.30 * 20 = 46.00, profit 2.30, total ceil(48.30) = 49
	if q.BaseCost != 46 || q.Profit != 2.3 || q.Total != 49 {
		t.Fatalf("Fee(20) = %+v, want base=46 profit=2.30 total=49", q)
	}
}

func TestFeeModelInvalidInput(t *testing.T) {
	inputs := []float64{0, -4, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, in := range inputs {
		q := DefaultFeeModel().Fee(in)
		if q != (FeeQuote{Vehicle: VehicleMoto}) {
			t.Errorf("Fee(%v) = %+v, want zeroed moto quote", in, q)
		}
	}
}

func TestVehicleCostPerKm(t *testing.T) {
	m := DefaultFeeModel()

	if got := m.Costs[VehicleMoto].PerKm(); got != 1.30 {
		t.Errorf("moto per km = %v, want 1.30", got)
	}
	if got := m.Costs[VehicleAuto].PerKm(); got != 2.30 {
		t.Errorf("auto per km = %v, want 2.30", got)
	}
}
