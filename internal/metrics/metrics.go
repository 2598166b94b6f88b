// Package metrics exposes Prometheus collectors for the HTTP surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chaingate",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaingate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chaingate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	dataFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaingate",
			Subsystem: "data",
			Name:      "fetches_total",
			Help:      "Total number of shared-data fetches by source.",
		},
		[]string{"source"},
	)

	transferSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaingate",
			Subsystem: "transfers",
			Name:      "submissions_total",
			Help:      "Total number of transfer submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		dataFetches,
		transferSubmissions,
	)
}

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// IncInFlight increments the in-flight request gauge.
func IncInFlight() { httpInFlight.Inc() }

// DecInFlight decrements the in-flight request gauge.
func DecInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one handled request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDataFetch counts a shared-data fetch served from the given source
// ("cache" or "store").
func RecordDataFetch(source string) {
	dataFetches.WithLabelValues(source).Inc()
}

// RecordTransfer counts a transfer submission outcome ("success",
// "client_error", "submission_error", "persistence_error").
func RecordTransfer(outcome string) {
	transferSubmissions.WithLabelValues(outcome).Inc()
}
