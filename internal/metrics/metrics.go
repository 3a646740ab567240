package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight log service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	FlightsCreatedTotal  prometheus.Counter
	FlightsImportedTotal prometheus.Counter
	LookupFallbackTotal  prometheus.Counter
	ReconcileDuration    prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avialog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "avialog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avialog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avialog_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avialog_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		FlightsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "avialog_flights_created_total",
				Help: "Total flight records created",
			},
		),
		FlightsImportedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "avialog_flights_imported_total",
				Help: "Total flight records created through CSV import",
			},
		),
		LookupFallbackTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "avialog_lookup_fallback_total",
				Help: "Total flight lookups that degraded to generated placeholder data",
			},
		),
		ReconcileDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "avialog_user_totals_reconcile_duration_seconds",
				Help:    "Duration of the user totals reconcile job",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
	}
}
