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

// contractHandler handles HTTP requests related to grain contracts and their
// farm allocations.
type contractHandler struct {
	contractService portssvc.GrainContractSvcFacade
}

func newContractHandler(cs portssvc.GrainContractSvcFacade) *contractHandler {
	return &contractHandler{
		contractService: cs,
	}
}

// registerContractRoutes registers routes related to grain contracts.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.GrainContractSvcFacade) {
	h := newContractHandler(contractService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:contractID", h.getContractByID)
		contracts.PUT("/:contractID", h.updateContract)
		contracts.DELETE("/:contractID", h.deleteContract)

		contracts.GET("/:contractID/allocations", h.listAllocations)
		contracts.GET("/:contractID/allocations/preview", h.previewProportional)
		contracts.POST("/:contractID/allocations/auto", h.autoAllocate)
		contracts.PUT("/:contractID/allocations", h.setManualAllocations)
		contracts.POST("/:contractID/allocations/reset", h.resetToProportional)
		contracts.DELETE("/:contractID/allocations/:farmID", h.deleteAllocation)
	}
}

func sumAllocatedBushels(allocations []domain.FarmContractAllocation) int64 {
	var total int64
	for _, alloc := range allocations {
		total += alloc.AllocatedBushels
	}
	return total
}

// contractWithAllocated fetches the contract's current allocation sum so the
// response can surface under-allocation.
func (h *contractHandler) contractWithAllocated(c *gin.Context, businessID string, contract *domain.GrainContract) (dto.ContractResponse, error) {
	allocations, err := h.contractService.ListAllocations(c.Request.Context(), businessID, contract.ContractID)
	if err != nil {
		return dto.ContractResponse{}, err
	}
	return dto.ToContractResponse(contract, sumAllocatedBushels(allocations)), nil
}

// createContract godoc
// @Summary Create a grain contract
// @Description Adds a grain contract obligating whole bushels of one commodity for one crop year
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create contract"
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), businessID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating contract", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		}
		return
	}

	logger.Info("Contract created", slog.String("contract_id", contract.ContractID))
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract, 0))
}

// listContracts godoc
// @Summary List grain contracts
// @Description Retrieves contracts for the business, optionally filtered by crop year
// @Tags contracts
// @Produce  json
// @Param   cropYear query int false "Crop year filter"
// @Success 200 {array} dto.ContractResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list contracts"
// @Security BearerAuth
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
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

	contracts, err := h.contractService.ListContracts(c.Request.Context(), businessID, cropYear)
	if err != nil {
		logger.Error("Failed to list contracts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	res := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		resp, err := h.contractWithAllocated(c, businessID, &contracts[i])
		if err != nil {
			logger.Error("Failed to load allocations for contract",
				slog.String("error", err.Error()),
				slog.String("contract_id", contracts[i].ContractID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
			return
		}
		res = append(res, resp)
	}
	c.JSON(http.StatusOK, res)
}

// getContractByID godoc
// @Summary Get a grain contract by ID
// @Description Retrieves one contract with its current allocated bushel sum
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to retrieve contract"
// @Security BearerAuth
// @Router /contracts/{contractID} [get]
func (h *contractHandler) getContractByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contract, err := h.contractService.GetContractByID(c.Request.Context(), businessID, contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to get contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contract"})
		}
		return
	}

	resp, err := h.contractWithAllocated(c, businessID, contract)
	if err != nil {
		logger.Error("Failed to load allocations for contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contract"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateContract godoc
// @Summary Update a grain contract
// @Description Updates a contract's name or cash price. Commodity, crop year, and total bushels are immutable
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   contract body dto.UpdateContractRequest true "Fields to update"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to update contract"
// @Security BearerAuth
// @Router /contracts/{contractID} [put]
func (h *contractHandler) updateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	contract, err := h.contractService.UpdateContract(c.Request.Context(), businessID, contractID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		}
		return
	}

	resp, err := h.contractWithAllocated(c, businessID, contract)
	if err != nil {
		logger.Error("Failed to load allocations for contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteContract godoc
// @Summary Delete a grain contract
// @Description Removes a contract and its allocations
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to delete contract"
// @Security BearerAuth
// @Router /contracts/{contractID} [delete]
func (h *contractHandler) deleteContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.contractService.DeleteContract(c.Request.Context(), businessID, contractID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to delete contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listAllocations godoc
// @Summary List a contract's allocations
// @Tags allocations
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to list allocations"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations [get]
func (h *contractHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocations, err := h.contractService.ListAllocations(c.Request.Context(), businessID, contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to list allocations", slog.String("error", err.Error()), slog.String("contract_id", contractID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// previewProportional godoc
// @Summary Preview the proportional allocation
// @Description Computes the proportional bushel split across eligible farms without persisting anything
// @Tags allocations
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.AllocationPreviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 422 {object} map[string]string "No eligible production"
// @Failure 500 {object} map[string]string "Failed to compute preview"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations/preview [get]
func (h *contractHandler) previewProportional(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	previews, err := h.contractService.PreviewProportional(c.Request.Context(), businessID, contractID)
	if err != nil {
		h.allocationError(c, logger, err, contractID, "Failed to compute preview")
		return
	}

	c.JSON(http.StatusOK, dto.AllocationPreviewResponse{
		ContractID: contractID,
		Previews:   previews,
	})
}

// allocationError maps allocation-operation failures onto HTTP statuses.
func (h *contractHandler) allocationError(c *gin.Context, logger *slog.Logger, err error, contractID, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
	case errors.Is(err, apperrors.ErrNoEligibleProduction):
		logger.Warn("No eligible production for contract", slog.String("contract_id", contractID))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on allocation operation",
			slog.String("error", err.Error()),
			slog.String("contract_id", contractID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()), slog.String("contract_id", contractID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// autoAllocate godoc
// @Summary Apply the proportional allocation
// @Description Persists the proportional split, replacing any prior allocations for the contract
// @Tags allocations
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 422 {object} map[string]string "No eligible production"
// @Failure 500 {object} map[string]string "Failed to allocate"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations/auto [post]
func (h *contractHandler) autoAllocate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	allocations, err := h.contractService.AutoAllocate(c.Request.Context(), businessID, contractID, userID)
	if err != nil {
		h.allocationError(c, logger, err, contractID, "Failed to allocate")
		return
	}

	logger.Info("Proportional allocation applied", slog.String("contract_id", contractID), slog.Int("farms", len(allocations)))
	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// setManualAllocations godoc
// @Summary Set manual allocations
// @Description Replaces the contract's allocations with an explicit split. Bushels must sum exactly to the contract total and every farm must be eligible
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   allocations body dto.SetManualAllocationRequest true "Explicit split"
// @Success 200 {array} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Sum mismatch or ineligible farm"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to set allocations"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations [put]
func (h *contractHandler) setManualAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	var req dto.SetManualAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetManualAllocations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	allocations, err := h.contractService.SetManual(c.Request.Context(), businessID, contractID, req, userID)
	if err != nil {
		h.allocationError(c, logger, err, contractID, "Failed to set allocations")
		return
	}

	logger.Info("Manual allocations set", slog.String("contract_id", contractID), slog.Int("farms", len(allocations)))
	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// resetToProportional godoc
// @Summary Reset allocations to proportional
// @Description Discards manual overrides and re-applies the proportional split against the currently eligible farm set
// @Tags allocations
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 422 {object} map[string]string "No eligible production"
// @Failure 500 {object} map[string]string "Failed to reset allocations"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations/reset [post]
func (h *contractHandler) resetToProportional(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	userID, businessID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	allocations, err := h.contractService.ResetToProportional(c.Request.Context(), businessID, contractID, userID)
	if err != nil {
		h.allocationError(c, logger, err, contractID, "Failed to reset allocations")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// deleteAllocation godoc
// @Summary Delete one farm's allocation
// @Description Removes one farm's allocation row. Remaining allocations are not rescaled; the contract stays under-allocated until reset or edited
// @Tags allocations
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   farmID path string true "Farm ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to delete allocation"
// @Security BearerAuth
// @Router /contracts/{contractID}/allocations/{farmID} [delete]
func (h *contractHandler) deleteAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")
	farmID := c.Param("farmID")

	businessID, ok := middleware.GetBusinessIDFromContext(c)
	if !ok {
		logger.Error("Business ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.contractService.DeleteAllocation(c.Request.Context(), businessID, contractID, farmID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to delete allocation",
				slog.String("error", err.Error()),
				slog.String("contract_id", contractID),
				slog.String("farm_id", farmID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete allocation"})
		}
		return
	}

	logger.Info("Allocation deleted", slog.String("contract_id", contractID), slog.String("farm_id", farmID))
	c.Status(http.StatusNoContent)
}
