package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/metrics"
)

// MetricsMiddleware collects HTTP request metrics for REGSIGHT-CORE monitoring
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}
