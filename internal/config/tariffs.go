package config

import (
	"delivery-fee-service/internal/domain"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type vehicleCostYAML struct {
	Fuel        float64 `yaml:"fuel"`
	Oil         float64 `yaml:"oil"`
	Maintenance float64 `yaml:"maintenance"`
}

// Tariffs is the YAML shape of the pricing and opening-hours file.
type Tariffs struct {
	MotoMaxKm  float64                    `yaml:"moto_max_km"`
	ProfitRate float64                    `yaml:"profit_rate"`
	Vehicles   map[string]vehicleCostYAML `yaml:"vehicles"`
	OpenHour   *int                       `yaml:"open_hour"`
	CloseHour  *int                       `yaml:"close_hour"`
	Holidays   []string                   `yaml:"holidays"`
}

// LoadTariffs reads a tariffs file. An empty path yields the built-in defaults.
func LoadTariffs(path string) (domain.FeeModel, *domain.ServiceHours, error) {
	if path == "" {
		return ParseTariffs(nil)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.FeeModel{}, nil, fmt.Errorf("load tariffs: read %q: %w", path, err)
	}
	return ParseTariffs(b)
}

// ParseTariffs overlays the YAML document on the default fee model and hours.
func ParseTariffs(b []byte) (domain.FeeModel, *domain.ServiceHours, error) {
	var t Tariffs
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &t); err != nil {
			return domain.FeeModel{}, nil, fmt.Errorf("parse tariffs: %w", err)
		}
	}

	model := domain.DefaultFeeModel()
	if t.MotoMaxKm > 0 {
		model.MotoMaxKm = t.MotoMaxKm
	}
	if t.ProfitRate > 0 {
		model.ProfitRate = t.ProfitRate
	}
	for name, c := range t.Vehicles {
		v := domain.Vehicle(name)
		if v != domain.VehicleMoto && v != domain.VehicleAuto {
			return domain.FeeModel{}, nil, fmt.Errorf("parse tariffs: unknown vehicle %q", name)
		}
		model.Costs[v] = domain.VehicleCost{Fuel: c.Fuel, Oil: c.Oil, Maintenance: c.Maintenance}
	}

	openHour, closeHour := 19, 5
	if t.OpenHour != nil {
		openHour = *t.OpenHour
	}
	if t.CloseHour != nil {
		closeHour = *t.CloseHour
	}
	holidays := domain.DefaultHolidays
	if len(t.Holidays) > 0 {
		holidays = t.Holidays
	}

	hours, err := domain.NewServiceHours(openHour, closeHour, holidays)
	if err != nil {
		return domain.FeeModel{}, nil, fmt.Errorf("parse tariffs: %w", err)
	}
	return model, hours, nil
}
