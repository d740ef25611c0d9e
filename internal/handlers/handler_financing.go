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

// financingHandler handles HTTP requests related to financing records.
type financingHandler struct {
	financingService portssvc.FinancingSvcFacade
}

func newFinancingHandler(fs portssvc.FinancingSvcFacade) *financingHandler {
	return &financingHandler{
		financingService: fs,
	}
}

// registerFinancingRoutes registers routes related to financing records.
func registerFinancingRoutes(rg *gin.RouterGroup, financingService portssvc.FinancingSvcFacade) {
	h := newFinancingHandler(financingService)

	financing := rg.Group("/financing")
	{
		financing.POST("", h.createFinancing)
		financing.GET("/:financingID", h.getFinancingByID)
		financing.PUT("/:financingID", h.updateFinancing)
		financing.DELETE("/:financingID", h.deleteFinancing)
		financing.POST("/:financingID/payments", h.recordPayment)
	}

	// Listing is scoped per farm
	rg.GET("/farms/:farmID/financing", h.listFinancingByFarm)
}

// createFinancing godoc
// @Summary Create a financing record
// @Description Adds a loan or lease in SIMPLE or AMORTIZED mode. AMORTIZED requires principal, interest rate, and term
// @Tags financing
// @Accept  json
// @Produce  json
// @Param   financing body dto.CreateFinancingRequest true "Financing details"
// @Success 201 {object} dto.FinancingResponse
// @Failure 400 {object} map[string]string "Invalid or incomplete input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to create financing record"
// @Security BearerAuth
// @Router /financing [post]
func (h *financingHandler) createFinancing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFinancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFinancing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	record, err := h.financingService.CreateFinancing(c.Request.Context(), businessID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating financing record", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create financing record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create financing record"})
		}
		return
	}

	cost, err := h.financingService.AnnualCost(*record)
	if err != nil {
		logger.Error("Failed to compute annual cost for new record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create financing record"})
		return
	}

	logger.Info("Financing record created", slog.String("financing_id", record.FinancingID))
	c.JSON(http.StatusCreated, dto.ToFinancingResponse(record, cost))
}

// getFinancingByID godoc
// @Summary Get a financing record by ID
// @Description Retrieves one financing record with its computed annual interest/principal split
// @Tags financing
// @Produce  json
// @Param   financingID path string true "Financing ID"
// @Success 200 {object} dto.FinancingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financing record not found"
// @Failure 500 {object} map[string]string "Failed to retrieve financing record"
// @Security BearerAuth
// @Router /financing/{financingID} [get]
func (h *financingHandler) getFinancingByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	financingID := c.Param("financingID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.financingService.GetFinancingByID(c.Request.Context(), businessID, financingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financing record not found"})
		} else {
			logger.Error("Failed to get financing record", slog.String("error", err.Error()), slog.String("financing_id", financingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve financing record"})
		}
		return
	}

	cost, err := h.financingService.AnnualCost(*record)
	if err != nil {
		logger.Error("Failed to compute annual cost", slog.String("error", err.Error()), slog.String("financing_id", financingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve financing record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancingResponse(record, cost))
}

// listFinancingByFarm godoc
// @Summary List financing records for a farm
// @Description Retrieves all financing records attached to a farm, optionally filtered by crop year
// @Tags financing
// @Produce  json
// @Param   farmID path string true "Farm ID"
// @Param   cropYear query int false "Crop year filter"
// @Success 200 {array} dto.FinancingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Farm not found"
// @Failure 500 {object} map[string]string "Failed to list financing records"
// @Security BearerAuth
// @Router /farms/{farmID}/financing [get]
func (h *financingHandler) listFinancingByFarm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	farmID := c.Param("farmID")

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

	records, err := h.financingService.ListFinancingByFarm(c.Request.Context(), businessID, farmID, cropYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farm not found"})
		} else {
			logger.Error("Failed to list financing records", slog.String("error", err.Error()), slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list financing records"})
		}
		return
	}

	res := make([]dto.FinancingResponse, 0, len(records))
	for i := range records {
		cost, err := h.financingService.AnnualCost(records[i])
		if err != nil {
			logger.Error("Failed to compute annual cost", slog.String("error", err.Error()), slog.String("financing_id", records[i].FinancingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list financing records"})
			return
		}
		res = append(res, dto.ToFinancingResponse(&records[i], cost))
	}
	c.JSON(http.StatusOK, res)
}

// updateFinancing godoc
// @Summary Update a financing record
// @Description Updates mutable fields of a financing record. The remaining balance only changes through payment recording
// @Tags financing
// @Accept  json
// @Produce  json
// @Param   financingID path string true "Financing ID"
// @Param   financing body dto.UpdateFinancingRequest true "Fields to update"
// @Success 200 {object} dto.FinancingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financing record not found"
// @Failure 500 {object} map[string]string "Failed to update financing record"
// @Security BearerAuth
// @Router /financing/{financingID} [put]
func (h *financingHandler) updateFinancing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	financingID := c.Param("financingID")

	var req dto.UpdateFinancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFinancing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	record, err := h.financingService.UpdateFinancing(c.Request.Context(), businessID, financingID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financing record not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update financing record", slog.String("error", err.Error()), slog.String("financing_id", financingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update financing record"})
		}
		return
	}

	cost, err := h.financingService.AnnualCost(*record)
	if err != nil {
		logger.Error("Failed to compute annual cost", slog.String("error", err.Error()), slog.String("financing_id", financingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update financing record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancingResponse(record, cost))
}

// deleteFinancing godoc
// @Summary Delete a financing record
// @Tags financing
// @Produce  json
// @Param   financingID path string true "Financing ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financing record not found"
// @Failure 500 {object} map[string]string "Failed to delete financing record"
// @Security BearerAuth
// @Router /financing/{financingID} [delete]
func (h *financingHandler) deleteFinancing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	financingID := c.Param("financingID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.financingService.DeleteFinancing(c.Request.Context(), businessID, financingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financing record not found"})
		} else {
			logger.Error("Failed to delete financing record", slog.String("error", err.Error()), slog.String("financing_id", financingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete financing record"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a loan payment
// @Description Reduces an AMORTIZED loan's remaining balance by the principal portion paid. The balance clamps at zero
// @Tags financing
// @Accept  json
// @Produce  json
// @Param   financingID path string true "Financing ID"
// @Param   payment body dto.RecordPaymentRequest true "Principal portion paid"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid payment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financing record not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /financing/{financingID}/payments [post]
func (h *financingHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	financingID := c.Param("financingID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	record, paidOff, err := h.financingService.RecordPayment(c.Request.Context(), businessID, financingID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financing record not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()), slog.String("financing_id", financingID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record payment", slog.String("error", err.Error()), slog.String("financing_id", financingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	if paidOff {
		logger.Info("Loan paid off", slog.String("financing_id", financingID))
	}
	c.JSON(http.StatusOK, dto.PaymentResponse{
		FinancingID:      record.FinancingID,
		RemainingBalance: record.RemainingBalance,
		LoanPaidOff:      paidOff,
	})
}
