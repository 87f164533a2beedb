package api

import (
	"delivery-fee-service/internal/api/handlers"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/metrics"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	Delivery       handlers.DeliveryService
	Hours          *domain.ServiceHours
	Now            func() time.Time
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	delivery := &handlers.DeliveryHandler{Service: cfg.Delivery}
	hours := &handlers.ServiceHoursHandler{Hours: cfg.Hours, Now: cfg.Now}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/service-hours", hours.Status).Methods(http.MethodGet)

	d := r.PathPrefix("/delivery").Subrouter()
	if cfg.RateLimitRPS > 0 {
		d.Use(newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).middleware)
	}
	d.HandleFunc("/quote", delivery.Quote).Methods(http.MethodPost)
	d.HandleFunc("/quotes", delivery.QuoteBatch).Methods(http.MethodPost)
	d.HandleFunc("/fee", delivery.Fee).Methods(http.MethodGet)
	d.HandleFunc("/cache", delivery.InvalidateCache).Methods(http.MethodDelete)

	r.Use(requestIDMiddleware, loggingMiddleware)

	return r
}
