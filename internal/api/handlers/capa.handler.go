package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsight/regsight-core/internal/models"
	"github.com/regsight/regsight-core/internal/monitoring"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/logger"
)

// CAPAHandler serves the corrective-action register.
type CAPAHandler struct {
	capas  *services.CAPAService
	logger logger.Logger
}

func NewCAPAHandler(capas *services.CAPAService, log logger.Logger) *CAPAHandler {
	return &CAPAHandler{
		capas:  capas,
		logger: log,
	}
}

// ListCAPAs returns register entries matching the optional filters
// @Summary List corrective actions
// @Produce json
// @Param status query string false "Open, Resolved, Overdue, or All"
// @Param q query string false "Case-insensitive substring over root cause and action plan"
// @Success 200 {object} models.CAPAListResponse
// @Router /api/v1/capas [get]
func (h *CAPAHandler) ListCAPAs(c *gin.Context) {
	var req models.CAPAListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid query parameters",
		})
		return
	}

	capas := h.capas.List(req)
	c.JSON(http.StatusOK, models.CAPAListResponse{CAPAs: capas, Total: len(capas)})
}

// CreateCAPA registers a new corrective action
// @Summary Create a corrective action
// @Accept json
// @Produce json
// @Param capa body models.CAPADraft true "Draft CAPA"
// @Success 201 {object} models.CAPA
// @Failure 422 {object} map[string]interface{} "field errors"
// @Router /api/v1/capas [post]
func (h *CAPAHandler) CreateCAPA(c *gin.Context) {
	start := time.Now()

	var draft models.CAPADraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid request body",
		})
		return
	}

	record, errs := h.capas.Create(draft)
	if errs.HasErrors() {
		monitoring.RecordAPIOperation("create_capa", "capas", time.Since(start), false)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"error":  "validation_failed",
			"fields": errs,
		})
		return
	}

	monitoring.RecordAPIOperation("create_capa", "capas", time.Since(start), true)
	c.JSON(http.StatusCreated, record)
}

// UpdateCAPA fully replaces an existing corrective action
// @Summary Update a corrective action
// @Accept json
// @Produce json
// @Param id path string true "CAPA id"
// @Param capa body models.CAPAUpdate true "Replacement record"
// @Success 200 {object} models.CAPA
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{} "field errors"
// @Router /api/v1/capas/{id} [put]
func (h *CAPAHandler) UpdateCAPA(c *gin.Context) {
	start := time.Now()

	var upd models.CAPAUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "invalid request body",
		})
		return
	}

	record, errs, err := h.capas.Update(c.Param("id"), upd)
	if errs.HasErrors() {
		monitoring.RecordAPIOperation("update_capa", "capas", time.Since(start), false)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"error":  "validation_failed",
			"fields": errs,
		})
		return
	}
	if err != nil {
		monitoring.RecordAPIOperation("update_capa", "capas", time.Since(start), false)
		if errors.Is(err, repo.ErrCAPANotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": "error",
				"error":  "capa_not_found",
			})
			return
		}
		h.logger.Error("CAPA update failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "failed to update CAPA",
		})
		return
	}

	monitoring.RecordAPIOperation("update_capa", "capas", time.Since(start), true)
	c.JSON(http.StatusOK, record)
}

// DeleteCAPA removes a corrective action. Unknown ids still return 204.
// @Summary Delete a corrective action
// @Param id path string true "CAPA id"
// @Success 204
// @Router /api/v1/capas/{id} [delete]
func (h *CAPAHandler) DeleteCAPA(c *gin.Context) {
	h.capas.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
