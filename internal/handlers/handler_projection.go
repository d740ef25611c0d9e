package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectionHandler handles HTTP requests for break-even projections.
type projectionHandler struct {
	projectionService portssvc.ProjectionSvcFacade
}

func newProjectionHandler(ps portssvc.ProjectionSvcFacade) *projectionHandler {
	return &projectionHandler{
		projectionService: ps,
	}
}

// registerProjectionRoutes registers routes related to projections.
func registerProjectionRoutes(rg *gin.RouterGroup, projectionService portssvc.ProjectionSvcFacade) {
	h := newProjectionHandler(projectionService)

	projections := rg.Group("/projections")
	{
		projections.GET("", h.project)
		projections.GET("/history", h.projectHistory)
	}
}

// project godoc
// @Summary Run a break-even projection
// @Description Computes per-commodity and per-entity break-even, blended price, and profit for one crop year. Optional scenario deltas (bounded +/-50%) adjust yield, price, and cost for this call only
// @Tags projections
// @Produce  json
// @Param   cropYear query int true "Crop year"
// @Param   commodity query string false "Commodity filter (CORN, SOYBEANS, WHEAT)"
// @Param   yieldPct query number false "Yield delta percent"
// @Param   pricePct query number false "Price delta percent"
// @Param   costPct query number false "Cost delta percent"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Invalid parameters or scenario out of bounds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Projection failed"
// @Security BearerAuth
// @Router /projections [get]
func (h *projectionHandler) project(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ProjectionQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for Project", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	commodity := domain.CommodityType(params.Commodity)
	if params.Commodity != "" && !commodity.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown commodity"})
		return
	}

	projection, err := h.projectionService.Project(c.Request.Context(), businessID, params.CropYear, commodity, params.Scenario())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error running projection", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Projection failed", slog.String("error", err.Error()), slog.Int("crop_year", params.CropYear))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Projection failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(*projection))
}

// projectHistory godoc
// @Summary Replay projections over a year range
// @Description Runs one independent projection per year in [fromYear, toYear], each against that year's own costs, allocations, and prices
// @Tags projections
// @Produce  json
// @Param   fromYear query int true "First crop year"
// @Param   toYear query int true "Last crop year"
// @Param   commodity query string false "Commodity filter (CORN, SOYBEANS, WHEAT)"
// @Success 200 {object} dto.ProjectionHistoryResponse
// @Failure 400 {object} map[string]string "Invalid year range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "History replay failed"
// @Security BearerAuth
// @Router /projections/history [get]
func (h *projectionHandler) projectHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ProjectionHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ProjectHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	commodity := domain.CommodityType(params.Commodity)
	if params.Commodity != "" && !commodity.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown commodity"})
		return
	}

	projections, err := h.projectionService.ProjectHistory(c.Request.Context(), businessID, params.FromYear, params.ToYear, commodity)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error replaying history", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("History replay failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "History replay failed"})
		}
		return
	}

	res := dto.ProjectionHistoryResponse{Years: make([]dto.ProjectionResponse, len(projections))}
	for i := range projections {
		res.Years[i] = dto.ToProjectionResponse(projections[i])
	}
	c.JSON(http.StatusOK, res)
}
