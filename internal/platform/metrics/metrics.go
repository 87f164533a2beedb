package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "delivery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "fee_cache",
			Name:      "lookups_total",
			Help:      "Delivery fee cache lookups by result (hit, miss, expired).",
		},
		[]string{"result"},
	)

	cacheEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "fee_cache",
			Name:      "capacity_evictions_total",
			Help:      "Entries evicted because the cache was full.",
		},
	)

	estimates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "estimator",
			Name:      "estimates_total",
			Help:      "Distance estimates by source (api, fallback, unresolved).",
		},
		[]string{"source"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, cacheLookups, cacheEvictions, estimates)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

func RecordCacheEviction() {
	cacheEvictions.Inc()
}

func RecordEstimate(source string) {
	estimates.WithLabelValues(source).Inc()
}
