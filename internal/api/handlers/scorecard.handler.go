package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

// ScorecardHandler serves the derived dashboard aggregates.
type ScorecardHandler struct {
	scorecard *services.ScorecardService
	cache     cache.Valkey
	logger    logger.Logger
}

func NewScorecardHandler(scorecard *services.ScorecardService, c cache.Valkey, log logger.Logger) *ScorecardHandler {
	return &ScorecardHandler{
		scorecard: scorecard,
		cache:     c,
		logger:    log,
	}
}

// GetStatusDistribution returns indicator counts per performance status
// @Summary Status distribution
// @Produce json
// @Success 200 {object} models.StatusDistributionResponse
// @Router /api/v1/scorecard/status-distribution [get]
func (h *ScorecardHandler) GetStatusDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, h.scorecard.StatusDistribution())
}

// GetFunctionScores returns per-function achievement scores
// @Summary Function scores
// @Produce json
// @Success 200 {object} models.FunctionScoresResponse
// @Router /api/v1/scorecard/functions [get]
func (h *ScorecardHandler) GetFunctionScores(c *gin.Context) {
	c.JSON(http.StatusOK, h.scorecard.FunctionScores())
}

// GetCriticalIndicators returns the indicators demanding intervention
// @Summary Critical indicators
// @Produce json
// @Success 200 {object} models.RPIListResponse
// @Router /api/v1/scorecard/critical [get]
func (h *ScorecardHandler) GetCriticalIndicators(c *gin.Context) {
	critical := h.scorecard.CriticalIndicators()
	c.JSON(http.StatusOK, models.RPIListResponse{RPIs: critical, Total: len(critical)})
}

// summaryCacheTTL keeps headline figures hot across dashboard refreshes
// while staying close enough to live register writes.
const summaryCacheTTL = 15 * time.Second

const summaryCacheKey = "scorecard:summary"

// GetSummary returns the dashboard headline figures
// @Summary Scorecard summary
// @Produce json
// @Success 200 {object} models.ScorecardSummary
// @Router /api/v1/scorecard/summary [get]
func (h *ScorecardHandler) GetSummary(c *gin.Context) {
	if data, err := h.cache.GetCachedQueryResult(c.Request.Context(), summaryCacheKey); err == nil && len(data) > 0 {
		metrics.CacheRequestsTotal.WithLabelValues("get", "hit").Inc()
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json", data)
		return
	}
	metrics.CacheRequestsTotal.WithLabelValues("get", "miss").Inc()

	summary := h.scorecard.Summary()
	if payload, err := json.Marshal(summary); err == nil {
		if err := h.cache.CacheQueryResult(c.Request.Context(), summaryCacheKey, payload, summaryCacheTTL); err != nil {
			h.logger.Warn("Failed to cache scorecard summary", "error", err)
		} else {
			metrics.CacheRequestsTotal.WithLabelValues("set", "success").Inc()
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, summary)
}

// GetBenchmarkingEvidence returns WHO GBT / WLA audit-readiness evidence
// @Summary Benchmarking evidence
// @Produce json
// @Success 200 {object} models.BenchmarkingEvidenceResponse
// @Router /api/v1/benchmarking/evidence [get]
func (h *ScorecardHandler) GetBenchmarkingEvidence(c *gin.Context) {
	c.JSON(http.StatusOK, h.scorecard.BenchmarkingEvidence())
}
