package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entityHandler handles HTTP requests related to legal entities.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{
		entityService: es,
	}
}

// registerEntityRoutes registers routes related to legal entities.
func registerEntityRoutes(rg *gin.RouterGroup, entityService portssvc.EntitySvcFacade) {
	h := newEntityHandler(entityService)

	entities := rg.Group("/entities")
	{
		entities.POST("", h.createEntity)
		entities.GET("", h.listEntities)
		entities.GET("/:entityID", h.getEntityByID)
	}
}

// createEntity godoc
// @Summary Create a new legal entity
// @Description Adds a legal entity (LLC, partnership, individual) to the business
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Security BearerAuth
// @Router /entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entity, err := h.entityService.CreateEntity(c.Request.Context(), businessID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating entity", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create entity in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entity"})
		}
		return
	}

	logger.Info("Entity created successfully", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// listEntities godoc
// @Summary List legal entities
// @Description Retrieves all legal entities for the authenticated business
// @Tags entities
// @Produce  json
// @Success 200 {array} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entities"
// @Security BearerAuth
// @Router /entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entities, err := h.entityService.ListEntities(c.Request.Context(), businessID)
	if err != nil {
		logger.Error("Failed to list entities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entities"})
		return
	}

	res := make([]dto.EntityResponse, len(entities))
	for i := range entities {
		res[i] = dto.ToEntityResponse(&entities[i])
	}
	c.JSON(http.StatusOK, res)
}

// getEntityByID godoc
// @Summary Get a legal entity by ID
// @Description Retrieves details for a specific legal entity
// @Tags entities
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entity"
// @Security BearerAuth
// @Router /entities/{entityID} [get]
func (h *entityHandler) getEntityByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entity, err := h.entityService.GetEntityByID(c.Request.Context(), businessID, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		} else {
			logger.Error("Failed to get entity", slog.String("error", err.Error()), slog.String("entity_id", entityID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entity"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}
