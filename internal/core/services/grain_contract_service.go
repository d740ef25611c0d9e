package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/utils/finmath"
	"github.com/google/uuid"
)

// grainContractService implements the GrainContractSvcFacade interface.
// Allocation writes go through the repository's ReplaceAllocations, which is
// transactional per contract, so concurrent edits never leave a
// partially-written allocation set.
type grainContractService struct {
	BaseService
	contractRepo portsrepo.GrainContractRepositoryFacade
	farmRepo     portsrepo.FarmReader
}

// NewGrainContractService creates a new grain-contract service.
func NewGrainContractService(contractRepo portsrepo.GrainContractRepositoryFacade, farmRepo portsrepo.FarmReader) portssvc.GrainContractSvcFacade {
	return &grainContractService{contractRepo: contractRepo, farmRepo: farmRepo}
}

var _ portssvc.GrainContractSvcFacade = (*grainContractService)(nil)

func (s *grainContractService) CreateContract(ctx context.Context, businessID string, req dto.CreateContractRequest, userID string) (*domain.GrainContract, error) {
	now := time.Now()
	contract := domain.GrainContract{
		ContractID:   uuid.NewString(),
		BusinessID:   businessID,
		Name:         req.Name,
		Commodity:    req.Commodity,
		CropYear:     req.CropYear,
		TotalBushels: req.TotalBushels,
		Pricing:      req.Pricing,
		CashPrice:    req.CashPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.contractRepo.SaveContract(ctx, contract); err != nil {
		s.LogError(ctx, err, "Failed to save grain contract", slog.String("contract_id", contract.ContractID))
		return nil, err
	}
	s.LogInfo(ctx, "Grain contract created",
		slog.String("contract_id", contract.ContractID),
		slog.String("commodity", string(contract.Commodity)),
		slog.Int64("total_bushels", contract.TotalBushels))
	return &contract, nil
}

func (s *grainContractService) GetContractByID(ctx context.Context, businessID string, contractID string) (*domain.GrainContract, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(contract.BusinessID, businessID); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *grainContractService) ListContracts(ctx context.Context, businessID string, cropYear int) ([]domain.GrainContract, error) {
	return s.contractRepo.ListContractsByBusiness(ctx, businessID, cropYear)
}

func (s *grainContractService) UpdateContract(ctx context.Context, businessID string, contractID string, req dto.UpdateContractRequest, userID string) (*domain.GrainContract, error) {
	contract, err := s.GetContractByID(ctx, businessID, contractID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		contract.Name = *req.Name
	}
	if req.CashPrice != nil {
		contract.CashPrice = *req.CashPrice
	}
	contract.LastUpdatedAt = time.Now()
	contract.LastUpdatedBy = userID

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		s.LogError(ctx, err, "Failed to update grain contract", slog.String("contract_id", contractID))
		return nil, err
	}
	return contract, nil
}

func (s *grainContractService) DeleteContract(ctx context.Context, businessID string, contractID string) error {
	if _, err := s.GetContractByID(ctx, businessID, contractID); err != nil {
		return err
	}
	if err := s.contractRepo.DeleteContract(ctx, contractID); err != nil {
		s.LogError(ctx, err, "Failed to delete grain contract", slog.String("contract_id", contractID))
		return err
	}
	s.LogInfo(ctx, "Grain contract deleted", slog.String("contract_id", contractID))
	return nil
}

// eligible loads the contract and the business's farms for its crop year.
func (s *grainContractService) eligible(ctx context.Context, businessID string, contractID string) (*domain.GrainContract, []domain.Farm, error) {
	contract, err := s.GetContractByID(ctx, businessID, contractID)
	if err != nil {
		return nil, nil, err
	}
	farms, err := s.farmRepo.ListFarmsByBusiness(ctx, businessID, contract.CropYear)
	if err != nil {
		return nil, nil, err
	}
	return contract, farms, nil
}

func (s *grainContractService) PreviewProportional(ctx context.Context, businessID string, contractID string) ([]domain.AllocationPreview, error) {
	contract, farms, err := s.eligible(ctx, businessID, contractID)
	if err != nil {
		return nil, err
	}
	previews, err := finmath.ProportionalAllocation(*contract, farms)
	if err != nil {
		s.LogError(ctx, err, "Proportional preview failed", slog.String("contract_id", contractID))
		return nil, err
	}
	return previews, nil
}

// persistProportional runs the proportional computation and atomically
// replaces the contract's allocation set with the result.
func (s *grainContractService) persistProportional(ctx context.Context, contract *domain.GrainContract, farms []domain.Farm, userID string) ([]domain.FarmContractAllocation, error) {
	previews, err := finmath.ProportionalAllocation(*contract, farms)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	allocations := make([]domain.FarmContractAllocation, len(previews))
	for i, preview := range previews {
		allocations[i] = domain.FarmContractAllocation{
			ContractID:       contract.ContractID,
			FarmID:           preview.FarmID,
			AllocatedBushels: preview.AllocatedBushels,
			Share:            finmath.Share(preview.AllocatedBushels, contract.TotalBushels),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.contractRepo.ReplaceAllocations(ctx, contract.ContractID, allocations); err != nil {
		return nil, err
	}
	return allocations, nil
}

func (s *grainContractService) AutoAllocate(ctx context.Context, businessID string, contractID string, userID string) ([]domain.FarmContractAllocation, error) {
	contract, farms, err := s.eligible(ctx, businessID, contractID)
	if err != nil {
		return nil, err
	}
	allocations, err := s.persistProportional(ctx, contract, farms, userID)
	if err != nil {
		s.LogError(ctx, err, "Auto-allocation failed", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract auto-allocated",
		slog.String("contract_id", contractID),
		slog.Int("farm_count", len(allocations)))
	return allocations, nil
}

func (s *grainContractService) SetManual(ctx context.Context, businessID string, contractID string, req dto.SetManualAllocationRequest, userID string) ([]domain.FarmContractAllocation, error) {
	contract, farms, err := s.eligible(ctx, businessID, contractID)
	if err != nil {
		return nil, err
	}

	bushelsByFarm := make(map[string]int64, len(req.Allocations))
	for _, line := range req.Allocations {
		if _, dup := bushelsByFarm[line.FarmID]; dup {
			return nil, fmt.Errorf("%w: duplicate farm %s in manual allocation", apperrors.ErrValidation, line.FarmID)
		}
		bushelsByFarm[line.FarmID] = line.Bushels
	}

	// Reject before any write: a failed manual set leaves the prior
	// allocations untouched.
	if err := finmath.ValidateManualAllocation(*contract, farms, bushelsByFarm); err != nil {
		s.LogError(ctx, err, "Manual allocation rejected", slog.String("contract_id", contractID))
		return nil, err
	}

	now := time.Now()
	allocations := make([]domain.FarmContractAllocation, 0, len(req.Allocations))
	for _, line := range req.Allocations {
		allocations = append(allocations, domain.FarmContractAllocation{
			ContractID:       contractID,
			FarmID:           line.FarmID,
			AllocatedBushels: line.Bushels,
			Share:            finmath.Share(line.Bushels, contract.TotalBushels),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := s.contractRepo.ReplaceAllocations(ctx, contractID, allocations); err != nil {
		s.LogError(ctx, err, "Failed to persist manual allocation", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Manual allocation set",
		slog.String("contract_id", contractID),
		slog.Int("farm_count", len(allocations)))
	return allocations, nil
}

func (s *grainContractService) ResetToProportional(ctx context.Context, businessID string, contractID string, userID string) ([]domain.FarmContractAllocation, error) {
	contract, farms, err := s.eligible(ctx, businessID, contractID)
	if err != nil {
		return nil, err
	}
	allocations, err := s.persistProportional(ctx, contract, farms, userID)
	if err != nil {
		s.LogError(ctx, err, "Reset to proportional failed", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract allocations reset to proportional", slog.String("contract_id", contractID))
	return allocations, nil
}

func (s *grainContractService) DeleteAllocation(ctx context.Context, businessID string, contractID string, farmID string) error {
	if _, err := s.GetContractByID(ctx, businessID, contractID); err != nil {
		return err
	}
	if err := s.contractRepo.DeleteAllocation(ctx, contractID, farmID); err != nil {
		s.LogError(ctx, err, "Failed to delete allocation",
			slog.String("contract_id", contractID), slog.String("farm_id", farmID))
		return err
	}
	// The remaining rows are deliberately left alone; the contract stays
	// under-allocated until the caller resets or edits manually.
	s.LogInfo(ctx, "Allocation deleted; contract left under-allocated",
		slog.String("contract_id", contractID), slog.String("farm_id", farmID))
	return nil
}

func (s *grainContractService) ListAllocations(ctx context.Context, businessID string, contractID string) ([]domain.FarmContractAllocation, error) {
	if _, err := s.GetContractByID(ctx, businessID, contractID); err != nil {
		return nil, err
	}
	return s.contractRepo.ListAllocations(ctx, contractID)
}
