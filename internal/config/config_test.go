package config

import (
	"delivery-fee-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHelpers(t *testing.T) {
	t.Setenv("X_STR", "  hello ")
	t.Setenv("X_FLOAT", "2.5")
	t.Setenv("X_BAD_FLOAT", "abc")
	t.Setenv("X_INT", "42")
	t.Setenv("X_DUR", "45m")
	t.Setenv("X_BLANK", "   ")

	assert.Equal(t, "hello", Get("X_STR", "d"))
	assert.Equal(t, "d", Get("X_BLANK", "d"))
	assert.Equal(t, "d", Get("X_UNSET_FOR_TEST", "d"))
	assert.Equal(t, 2.5, GetFloat("X_FLOAT", 1))
	assert.Equal(t, 1.0, GetFloat("X_BAD_FLOAT", 1))
	assert.Equal(t, 42, GetInt("X_INT", 0))
	assert.Equal(t, 45*time.Minute, GetDuration("X_DUR", time.Minute))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_DELIVERY_KM", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_CAPACITY", "")
	t.Setenv("STORAGE_TYPE", "Memory")

	s := Load()
	assert.Equal(t, 15.0, s.MaxDeliveryKm)
	assert.Equal(t, 30*time.Minute, s.CacheTTL)
	assert.Equal(t, 50, s.CacheCapacity)
	assert.Equal(t, "memory", s.StorageType)
	assert.Equal(t, "delivery_fee_cache", s.CacheKey)
}

func TestParseTariffsDefaults(t *testing.T) {
	model, hours, err := ParseTariffs(nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultFeeModel(), model)
	assert.Equal(t, 19, hours.OpenHour)
	assert.Equal(t, 5, hours.CloseHour)

	ok, err := hours.IsHolidayDate("2025-01-01")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseTariffsOverrides(t *testing.T) {
	doc := []byte(`
moto_max_km: 4
profit_rate: 0.1
vehicles:
  auto: {fuel: 2, oil: 0.5, maintenance: 0.5}
open_hour: 18
holidays: ["2026-01-01"]
`)
	model, hours, err := ParseTariffs(doc)
	require.NoError(t, err)

	assert.Equal(t, 4.0, model.MotoMaxKm)
	assert.Equal(t, 0.1, model.ProfitRate)
	assert.Equal(t, 3.0, model.Costs[domain.VehicleAuto].PerKm())
	assert.Equal(t, 1.3, model.Costs[domain.VehicleMoto].PerKm())
	assert.Equal(t, 18, hours.OpenHour)

	ok, _ := hours.IsHolidayDate("2025-01-01")
	assert.False(t, ok)
}

func TestParseTariffsRejectsUnknownVehicle(t *testing.T) {
	_, _, err := ParseTariffs([]byte("vehicles:\n  bike: {fuel: 1}\n"))
	assert.Error(t, err)
}
