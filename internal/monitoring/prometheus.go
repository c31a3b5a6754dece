// Package monitoring provides Prometheus metrics for REGSIGHT-CORE.
//
// Usage:
//
//  1. Setup metrics in your main function:
//     router := gin.New()
//     monitoring.SetupPrometheusMetrics(router)
//
//  2. Record custom metrics in your handlers:
//
//	// Cache operations
//	monitoring.RecordCacheOperation("get", "hit")
//
//	// API operations
//	start := time.Now()
//	// ... handler body ...
//	monitoring.RecordAPIOperation("create_capa", "capas", time.Since(start), true)
//
//	// Advisory provider calls
//	monitoring.RecordAdvisoryCall("suggest", time.Since(start), true)
package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cacheOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	apiOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_api_operations_total",
			Help: "Total number of API operations",
		},
		[]string{"operation", "resource", "status"},
	)

	apiOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regsight_core_api_operation_duration_seconds",
			Help:    "API operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "resource"},
	)

	advisoryCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_advisory_provider_calls_total",
			Help: "Total number of calls to the AI advisory provider",
		},
		[]string{"operation", "status"},
	)

	advisoryCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regsight_core_advisory_provider_call_duration_seconds",
			Help:    "AI advisory provider call duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regsight_core_errors_total",
			Help: "Total number of errors by type and component",
		},
		[]string{"type", "component"},
	)
)

// SetupPrometheusMetrics registers the collectors on the default registry and
// exposes the /metrics endpoint.
func SetupPrometheusMetrics(router gin.IRoutes) {
	// Register build info (ignore if already registered)
	_ = prometheus.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "regsight_core_build_info",
		Help: "Build information for REGSIGHT-CORE",
		ConstLabels: prometheus.Labels{
			"version":   "v1.0.0",
			"component": "regsight-core",
		},
	}, func() float64 { return 1 }))

	// Ignore duplicate registration so tests can call this repeatedly
	_ = prometheus.Register(cacheOperationsTotal)
	_ = prometheus.Register(apiOperationsTotal)
	_ = prometheus.Register(apiOperationDuration)
	_ = prometheus.Register(advisoryCallsTotal)
	_ = prometheus.Register(advisoryCallDuration)
	_ = prometheus.Register(errorsTotal)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RecordCacheOperation records cache operation metrics
func RecordCacheOperation(operation, result string) {
	cacheOperationsTotal.WithLabelValues(operation, result).Inc()
	if result == "error" {
		errorsTotal.WithLabelValues("cache", operation).Inc()
	}
}

// RecordAPIOperation records API operation metrics
func RecordAPIOperation(operation, resource string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
		errorsTotal.WithLabelValues("api", resource).Inc()
	}

	apiOperationsTotal.WithLabelValues(operation, resource, status).Inc()
	apiOperationDuration.WithLabelValues(operation, resource).Observe(duration.Seconds())
}

// RecordAdvisoryCall records AI advisory provider call metrics
func RecordAdvisoryCall(operation string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
		errorsTotal.WithLabelValues("advisory", operation).Inc()
	}

	advisoryCallsTotal.WithLabelValues(operation, status).Inc()
	advisoryCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
