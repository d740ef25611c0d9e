package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// costEntryHandler handles HTTP requests for the cost ledger.
type costEntryHandler struct {
	costService portssvc.CostEntrySvcFacade
}

func newCostEntryHandler(cs portssvc.CostEntrySvcFacade) *costEntryHandler {
	return &costEntryHandler{
		costService: cs,
	}
}

// registerCostEntryRoutes registers routes related to cost entries.
func registerCostEntryRoutes(rg *gin.RouterGroup, costService portssvc.CostEntrySvcFacade) {
	h := newCostEntryHandler(costService)

	costs := rg.Group("/costs")
	{
		costs.POST("", h.recordCostEntry)
	}

	rg.GET("/farms/:farmID/costs", h.getFarmCostTotal)
}

// recordCostEntry godoc
// @Summary Record a cost entry
// @Description Validates invoice lines and accumulates them into the farm-year's category totals. One bad line rejects the whole entry
// @Tags costs
// @Accept  json
// @Produce  json
// @Param   entry body dto.RecordCostEntryRequest true "Invoice lines"
// @Success 201 {object} domain.FarmDirectCost
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to record cost entry"
// @Security BearerAuth
// @Router /costs [post]
func (h *costEntryHandler) recordCostEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordCostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	ledger, err := h.costService.RecordCostEntry(c.Request.Context(), businessID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording cost entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record cost entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record cost entry"})
		}
		return
	}

	logger.Info("Cost entry recorded",
		slog.String("farm_id", req.FarmID),
		slog.Int("crop_year", req.CropYear),
		slog.Int("lines", len(req.Lines)))
	c.JSON(http.StatusCreated, ledger)
}

// getFarmCostTotal godoc
// @Summary Get aggregated costs for a farm-year
// @Description Returns direct cost category totals plus break-even-gated loan interest and principal for one farm and crop year
// @Tags costs
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Param   cropYear query int true "Crop year"
// @Success 200 {object} dto.CostTotalResponse
// @Failure 400 {object} map[string]string "Missing crop year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to aggregate costs"
// @Security BearerAuth
// @Router /farms/{farmID}/costs [get]
func (h *costEntryHandler) getFarmCostTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cropYear, err := strconv.Atoi(c.Query("cropYear"))
	if err != nil || cropYear <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cropYear query parameter is required"})
		return
	}

	total, err := h.costService.GetFarmCostTotal(c.Request.Context(), businessID, farmID, cropYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else {
			logger.Error("Failed to aggregate farm costs",
				slog.String("error", err.Error()),
				slog.String("farm_id", farmID),
				slog.Int("crop_year", cropYear))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate costs"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCostTotalResponse(*total))
}
