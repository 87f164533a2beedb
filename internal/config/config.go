package config

import (
	"delivery-fee-service/internal/platform/obs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Get returns the environment value for key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		obs.Logger().WithField("key", key).WithError(err).Warn("invalid float; using default")
		return fallback
	}
	return f
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		obs.Logger().WithField("key", key).WithError(err).Warn("invalid int; using default")
		return fallback
	}
	return n
}

// GetDuration accepts Go duration strings ("30m", "5s").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		obs.Logger().WithField("key", key).WithError(err).Warn("invalid duration; using default")
		return fallback
	}
	return d
}

// Settings gathers everything the server needs from the environment.
type Settings struct {
	Port      string
	LogLevel  string
	LogFormat string

	MapsAPIKey  string
	MapsBaseURL string
	MapsTimeout time.Duration

	StoreAddress string
	StoreLat     float64
	StoreLng     float64

	MaxDeliveryKm float64
	CacheTTL      time.Duration
	CacheCapacity int

	RoadFactor     float64
	FallbackSpeed  float64
	DurationBuffer float64

	StorageType string
	DBPath      string
	DatabaseURL string
	RedisAddr   string
	DynamoTable string
	CacheKey    string

	TariffsPath string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads an optional .env file and then the process environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		obs.Logger().Debug("no .env file found (using environment variables)")
	}

	return Settings{
		Port:      Get("PORT", "8080"),
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "text"),

		MapsAPIKey:  Get("MAPS_API_KEY", ""),
		MapsBaseURL: Get("MAPS_BASE_URL", "https://maps.googleapis.com"),
		MapsTimeout: GetDuration("MAPS_TIMEOUT", 5*time.Second),

		StoreAddress: Get("STORE_ADDRESS", "Av. 6 de Agosto 2170, La Paz, Bolivia"),
		StoreLat:     GetFloat("STORE_LAT", -16.5076),
		StoreLng:     GetFloat("STORE_LNG", -68.1264),

		MaxDeliveryKm: GetFloat("MAX_DELIVERY_KM", 15),
		CacheTTL:      GetDuration("CACHE_TTL", 30*time.Minute),
		CacheCapacity: GetInt("CACHE_CAPACITY", 50),

		RoadFactor:     GetFloat("FALLBACK_ROAD_FACTOR", 1.4),
		FallbackSpeed:  GetFloat("FALLBACK_SPEED_KMH", 30),
		DurationBuffer: GetFloat("FALLBACK_DURATION_BUFFER", 1.3),

		StorageType: strings.ToLower(Get("STORAGE_TYPE", "sqlite")),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", "localhost:6379"),
		DynamoTable: Get("DYNAMODB_TABLE", "delivery-fee-cache"),
		CacheKey:    Get("CACHE_KEY", "delivery_fee_cache"),

		TariffsPath: Get("TARIFFS_PATH", ""),

		RateLimitRPS:   GetFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: GetInt("RATE_LIMIT_BURST", 20),
	}
}
