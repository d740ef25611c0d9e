package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// priceHandler handles HTTP requests related to price snapshots.
type priceHandler struct {
	priceService portssvc.PriceFeedSvcFacade
}

func newPriceHandler(ps portssvc.PriceFeedSvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// registerPriceRoutes registers routes related to price snapshots.
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceFeedSvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.PUT("", h.upsertSnapshot)
		prices.GET("/:commodity", h.getSnapshot)
	}
}

// upsertSnapshot godoc
// @Summary Store a price snapshot
// @Description Stores or refreshes the futures price and basis for one commodity and crop year
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   price body dto.UpsertPriceRequest true "Price snapshot"
// @Success 200 {object} dto.PriceSnapshotResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to store price snapshot"
// @Security BearerAuth
// @Router /prices [put]
func (h *priceHandler) upsertSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshot := domain.PriceSnapshot{
		Commodity: req.Commodity,
		CropYear:  req.CropYear,
		Futures:   req.Futures,
		Basis:     req.Basis,
	}
	if err := h.priceService.UpsertSnapshot(c.Request.Context(), snapshot, userID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error storing price snapshot", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to store price snapshot", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store price snapshot"})
		}
		return
	}

	logger.Info("Price snapshot stored",
		slog.String("commodity", string(req.Commodity)),
		slog.Int("crop_year", req.CropYear))
	c.JSON(http.StatusOK, dto.ToPriceSnapshotResponse(&snapshot))
}

// getSnapshot godoc
// @Summary Get a price snapshot
// @Description Retrieves the price snapshot for a commodity and crop year. A defaulted snapshot is flagged isEstimate
// @Tags prices
// @Produce  json
// @Param   commodity path string true "Commodity (CORN, SOYBEANS, WHEAT)"
// @Param   cropYear query int true "Crop year"
// @Success 200 {object} dto.PriceSnapshotResponse
// @Failure 400 {object} map[string]string "Unknown commodity or missing crop year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No price data"
// @Failure 500 {object} map[string]string "Failed to retrieve price snapshot"
// @Security BearerAuth
// @Router /prices/{commodity} [get]
func (h *priceHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	commodity := domain.CommodityType(c.Param("commodity"))
	if !commodity.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown commodity"})
		return
	}
	cropYear, err := strconv.Atoi(c.Query("cropYear"))
	if err != nil || cropYear <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cropYear query parameter is required"})
		return
	}

	snapshot, err := h.priceService.GetSnapshot(c.Request.Context(), commodity, cropYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingPriceData) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No price data for commodity"})
		} else {
			logger.Error("Failed to get price snapshot",
				slog.String("error", err.Error()),
				slog.String("commodity", string(commodity)))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price snapshot"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceSnapshotResponse(snapshot))
}
