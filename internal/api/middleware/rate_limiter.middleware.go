package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/pkg/cache"
)

// RateLimiter implements per-client rate limiting using the Valkey cache.
// Counters live in 1-minute windows keyed by client IP.
func RateLimiter(valkeyCache cache.Valkey) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if clientID == "" {
			clientID = "anonymous"
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("rate_limit:%s:%d", clientID, window)

		countBytes, err := valkeyCache.Get(c.Request.Context(), key)
		var currentCount int64 = 0

		if err == nil {
			if count, err := strconv.ParseInt(string(countBytes), 10, 64); err == nil {
				currentCount = count
			}
		}

		// Rate limit: 1000 requests per minute per client
		maxRequests := int64(1000)
		if currentCount >= maxRequests {
			c.Header("X-Rate-Limit-Limit", strconv.FormatInt(maxRequests, 10))
			c.Header("X-Rate-Limit-Remaining", "0")
			c.Header("X-Rate-Limit-Reset", strconv.FormatInt((window+1)*60, 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":      "error",
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		newCount := currentCount + 1
		valkeyCache.Set(c.Request.Context(), key, newCount, 2*time.Minute)

		c.Header("X-Rate-Limit-Limit", strconv.FormatInt(maxRequests, 10))
		c.Header("X-Rate-Limit-Remaining", strconv.FormatInt(maxRequests-newCount, 10))
		c.Header("X-Rate-Limit-Reset", strconv.FormatInt((window+1)*60, 10))

		c.Next()
	}
}
