package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/logger"
)

// AdvisoryHandler exposes the AI advisory gateway. The advisory feature is
// optional: when no provider is configured, every endpoint answers 503 with
// a retryable envelope rather than failing the dashboard.
type AdvisoryHandler struct {
	advisory services.AdvisoryService // nil when the feature is disabled
	catalog  *repo.RPICatalog
	logger   logger.Logger
}

func NewAdvisoryHandler(advisory services.AdvisoryService, catalog *repo.RPICatalog, log logger.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisory: advisory,
		catalog:  catalog,
		logger:   log,
	}
}

// Suggest drafts a root-cause analysis for an underperforming indicator
// @Summary AI root-cause suggestion
// @Accept json
// @Produce json
// @Param request body models.SuggestRequest true "Indicator to analyse"
// @Success 200 {object} models.SuggestResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]interface{} "advisory unavailable, retryable"
// @Router /api/v1/advisory/suggest [post]
func (h *AdvisoryHandler) Suggest(c *gin.Context) {
	var req models.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RPIID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "rpiId is required",
		})
		return
	}

	rpi := h.catalog.Get(req.RPIID)
	if rpi == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "indicator_not_found",
		})
		return
	}

	if h.advisory == nil {
		metrics.AdvisoryRequestsTotal.WithLabelValues("suggest", "error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"error":     "suggestion_unavailable",
			"retryable": true,
		})
		return
	}

	result, err := h.advisory.Suggest(c.Request.Context(), rpi.Snapshot())
	if err != nil {
		metrics.AdvisoryRequestsTotal.WithLabelValues("suggest", "error").Inc()
		h.logger.Error("Advisory suggestion failed", "rpiId", req.RPIID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"error":     "suggestion_unavailable",
			"retryable": true,
		})
		return
	}

	status := "success"
	if result.Cached {
		status = "cached"
	}
	metrics.AdvisoryRequestsTotal.WithLabelValues("suggest", status).Inc()

	c.JSON(http.StatusOK, models.SuggestResponse{
		Status:      "success",
		Data:        result.Suggestion,
		Provider:    result.Provider,
		Model:       result.Model,
		Cached:      result.Cached,
		GeneratedAt: result.GeneratedAt,
	})
}

// Narrate converts indicator text to speech
// @Summary Narrate indicator text
// @Accept json
// @Produce audio/mpeg
// @Param request body models.NarrateRequest true "Text or indicator to narrate"
// @Success 200 {string} binary "MP3 audio"
// @Failure 503 {object} map[string]interface{} "narration unavailable, retryable"
// @Router /api/v1/advisory/narrate [post]
func (h *AdvisoryHandler) Narrate(c *gin.Context) {
	var req models.NarrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid request body",
		})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		if strings.TrimSpace(req.RPIID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "text or rpiId is required",
			})
			return
		}
		rpi := h.catalog.Get(req.RPIID)
		if rpi == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"status": "error",
				"error":  "indicator_not_found",
			})
			return
		}
		text = indicatorReadout(rpi)
	}

	if h.advisory == nil {
		metrics.AdvisoryRequestsTotal.WithLabelValues("narrate", "error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"error":     "narration_unavailable",
			"retryable": true,
		})
		return
	}

	audio, err := h.advisory.Narrate(c.Request.Context(), text)
	if err != nil {
		metrics.AdvisoryRequestsTotal.WithLabelValues("narrate", "error").Inc()
		h.logger.Error("Advisory narration failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"error":     "narration_unavailable",
			"retryable": true,
		})
		return
	}

	metrics.AdvisoryRequestsTotal.WithLabelValues("narrate", "success").Inc()
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", int((time.Hour).Seconds())))
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// indicatorReadout is the standard spoken sentence for one indicator.
func indicatorReadout(r *models.RPI) string {
	return fmt.Sprintf("%s, %s. Current value %g%s against a target of %g%s. Status: %s.",
		r.Code, r.Description, r.CurrentValue, r.Unit, r.Target, r.Unit, r.Status)
}
