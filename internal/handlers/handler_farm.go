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

// farmHandler handles HTTP requests related to farms.
type farmHandler struct {
	farmService portssvc.FarmSvcFacade
}

func newFarmHandler(fs portssvc.FarmSvcFacade) *farmHandler {
	return &farmHandler{
		farmService: fs,
	}
}

// registerFarmRoutes registers routes related to farms.
func registerFarmRoutes(rg *gin.RouterGroup, farmService portssvc.FarmSvcFacade) {
	h := newFarmHandler(farmService)

	farms := rg.Group("/farms")
	{
		farms.POST("", h.createFarm)
		farms.GET("", h.listFarms)
		farms.GET("/:farmID", h.getFarmByID)
		farms.PUT("/:farmID", h.updateFarm)
		farms.PUT("/:farmID/splits", h.setEntitySplits)
		farms.DELETE("/:farmID", h.deleteFarm)
	}
}

// requestScope pulls the authenticated user and business IDs out of the gin
// context, writing a 401 and returning ok=false when either is missing.
func requestScope(c *gin.Context, logger *slog.Logger) (userID, businessID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	businessID, ok = middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, businessID, true
}

// createFarm godoc
// @Summary Create a new farm
// @Description Adds a farm-year production unit with acres and projected yield
// @Tags farms
// @Accept  json
// @Produce  json
// @Param   farm body dto.CreateFarmRequest true "Farm details"
// @Success 201 {object} dto.FarmResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owning entity not found"
// @Failure 500 {object} map[string]string "Failed to create farm"
// @Security BearerAuth
// @Router /farms [post]
func (h *farmHandler) createFarm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFarm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	farm, err := h.farmService.CreateFarm(c.Request.Context(), businessID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Owning entity not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating farm", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create farm in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create farm"})
		}
		return
	}

	logger.Info("Farm created successfully", slog.String("farm_id", farm.FarmID))
	c.JSON(http.StatusCreated, dto.ToFarmResponse(farm))
}

// listFarms godoc
// @Summary List farms
// @Description Retrieves farms for the business, optionally filtered by crop year
// @Tags farms
// @Produce  json
// @Param   cropYear query int false "Crop year filter"
// @Success 200 {array} dto.FarmResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list farms"
// @Security BearerAuth
// @Router /farms [get]
func (h *farmHandler) listFarms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cropYear := 0
	if raw := c.Query("cropYear"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cropYear must be an integer"})
			return
		}
		cropYear = parsed
	}

	farms, err := h.farmService.ListFarms(c.Request.Context(), businessID, cropYear)
	if err != nil {
		logger.Error("Failed to list farms", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list farms"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFarmResponse(farms))
}

// getFarmByID godoc
// @Summary Get a farm by ID
// @Description Retrieves details for a specific farm including entity splits
// @Tags farms
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Success 200 {object} dto.FarmResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to retrieve farm"
// @Security BearerAuth
// @Router /farms/{farmID} [get]
func (h *farmHandler) getFarmByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	farm, err := h.farmService.GetFarmByID(c.Request.Context(), businessID, farmID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else {
			logger.Error("Failed to get farm", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve farm"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFarmResponse(farm))
}

// updateFarm godoc
// @Summary Update a farm
// @Description Updates a farm's name, acres, or projected yield
// @Tags farms
// @Accept  json
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Param   farm body dto.UpdateFarmRequest true "Fields to update"
// @Success 200 {object} dto.FarmResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to update farm"
// @Security BearerAuth
// @Router /farms/{farmID} [put]
func (h *farmHandler) updateFarm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

	var req dto.UpdateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFarm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	farm, err := h.farmService.UpdateFarm(c.Request.Context(), businessID, farmID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update farm", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update farm"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFarmResponse(farm))
}

// setEntitySplits godoc
// @Summary Replace a farm's entity splits
// @Description Replaces the farm's fractional ownership; percentages must sum to 100. An empty list restores whole ownership by the owning entity
// @Tags farms
// @Accept  json
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Param   splits body []dto.EntitySplitInput true "Entity splits"
// @Success 200 {object} dto.FarmResponse
// @Failure 400 {object} map[string]string "Percentages do not sum to 100"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm or entity not found"
// @Failure 500 {object} map[string]string "Failed to set splits"
// @Security BearerAuth
// @Router /farms/{farmID}/splits [put]
func (h *farmHandler) setEntitySplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

	var splits []dto.EntitySplitInput
	if err := c.ShouldBindJSON(&splits); err != nil {
		logger.Warn("Failed to bind JSON for SetEntitySplits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	farm, err := h.farmService.SetEntitySplits(c.Request.Context(), businessID, farmID, splits, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm or entity not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting splits", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set entity splits", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set splits"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFarmResponse(farm))
}

// deleteFarm godoc
// @Summary Delete a farm
// @Description Removes a farm and cascades to its cost, financing, and allocation records
// @Tags farms
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to delete farm"
// @Security BearerAuth
// @Router /farms/{farmID} [delete]
func (h *farmHandler) deleteFarm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.farmService.DeleteFarm(c.Request.Context(), businessID, farmID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else {
			logger.Error("Failed to delete farm", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete farm"})
		}
		return
	}

	logger.Info("Farm deleted", slog.String("farm_id", farmID))
	c.Status(http.StatusNoContent)
}
