package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regsight_core_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Valkey cache metrics
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_cache_requests_total",
			Help: "Total number of cache requests",
		},
		[]string{"operation", "result"}, // get/set/delete, hit/miss/error
	)

	// CAPA register metrics
	CAPAOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_capa_operations_total",
			Help: "Total number of CAPA register operations",
		},
		[]string{"operation", "status"}, // create/update/delete, success/invalid/not_found
	)

	OpenCAPAs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "regsight_core_open_capas",
			Help: "Current number of open corrective actions",
		},
	)

	// Scorecard metrics
	ScorecardComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regsight_core_scorecard_compute_duration_seconds",
			Help:    "Time spent computing scorecard aggregates",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"aggregate"},
	)

	CriticalIndicators = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "regsight_core_critical_indicators",
			Help: "Current number of indicators in a critical state",
		},
	)

	// AI advisory metrics
	AdvisoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_advisory_requests_total",
			Help: "Total number of AI advisory requests",
		},
		[]string{"operation", "status"}, // suggest/narrate, success/error/cached
	)

	AdvisoryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regsight_core_advisory_request_duration_seconds",
			Help:    "AI advisory request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "provider"},
	)

	// WebSocket metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "regsight_core_websocket_connections",
			Help: "Current number of scorecard stream connections",
		},
	)
)
