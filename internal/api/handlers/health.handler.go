package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

type HealthHandler struct {
	cache  cache.Valkey
	logger logger.Logger
}

func NewHealthHandler(c cache.Valkey, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		cache:  c,
		logger: log,
	}
}

// GET /health - Quick health check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "regsight-core",
		"version":   "v1.0.0",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /ready - Readiness check. The indicator catalogue and CAPA register are
// in-process, so readiness reduces to the cache being writable.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	probeKey := fmt.Sprintf("ready:%d", time.Now().UnixNano())
	err := h.cache.Set(ctx, probeKey, "1", 1*time.Second)

	status := "healthy"
	httpStatus := http.StatusOK
	if err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	resp := gin.H{
		"status":    status,
		"service":   "regsight-core",
		"version":   "v1.0.0",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(httpStatus, resp)
}
