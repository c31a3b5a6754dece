package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

// RPIHandler serves the indicator catalogue: listings with filters, single
// records, trend series, and per-indicator CAPA views.
type RPIHandler struct {
	catalog *repo.RPICatalog
	capas   *services.CAPAService
	cache   cache.Valkey
	logger  logger.Logger
}

func NewRPIHandler(catalog *repo.RPICatalog, capas *services.CAPAService, c cache.Valkey, log logger.Logger) *RPIHandler {
	return &RPIHandler{
		catalog: catalog,
		capas:   capas,
		cache:   c,
		logger:  log,
	}
}

// ListRPIs returns catalogue entries matching the optional filters
// @Summary List regulatory performance indicators
// @Description Retrieve RPIs with optional function, status, critical, and free-text filters. Filters combine with AND.
// @Tags rpis
// @Produce json
// @Param function query string false "Regulatory function display name"
// @Param status query string false "Performance status"
// @Param critical query bool false "Only Red Alert and Behind indicators"
// @Param q query string false "Case-insensitive substring over code and description"
// @Success 200 {object} models.RPIListResponse
// @Router /api/v1/rpis [get]
func (h *RPIHandler) ListRPIs(c *gin.Context) {
	var req models.RPIListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid query parameters",
		})
		return
	}
	if req.Status != "" && !models.PerformanceStatus(req.Status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid status filter",
		})
		return
	}

	rpis := h.catalog.List(req)
	c.JSON(http.StatusOK, models.RPIListResponse{RPIs: rpis, Total: len(rpis)})
}

// GetRPI returns one indicator
// @Summary Get an indicator
// @Produce json
// @Param id path string true "RPI id"
// @Success 200 {object} models.RPI
// @Failure 404 {object} map[string]string
// @Router /api/v1/rpis/{id} [get]
func (h *RPIHandler) GetRPI(c *gin.Context) {
	rpi := h.catalog.Get(c.Param("id"))
	if rpi == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "indicator_not_found",
		})
		return
	}
	c.JSON(http.StatusOK, rpi)
}

// GetTrend returns an indicator's historical series
// @Summary Get an indicator's trend series
// @Produce json
// @Param id path string true "RPI id"
// @Success 200 {object} models.TrendResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/rpis/{id}/trend [get]
func (h *RPIHandler) GetTrend(c *gin.Context) {
	id := c.Param("id")
	if h.catalog.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "indicator_not_found",
		})
		return
	}
	c.JSON(http.StatusOK, models.TrendResponse{RPIID: id, Points: h.catalog.Trend(id)})
}

// GetCAPAs returns the corrective actions attached to an indicator
// @Summary List an indicator's CAPAs
// @Produce json
// @Param id path string true "RPI id"
// @Success 200 {object} models.CAPAListResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/rpis/{id}/capas [get]
func (h *RPIHandler) GetCAPAs(c *gin.Context) {
	id := c.Param("id")
	if h.catalog.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "indicator_not_found",
		})
		return
	}
	capas := h.capas.ListByRPI(id)
	c.JSON(http.StatusOK, models.CAPAListResponse{CAPAs: capas, Total: len(capas)})
}
