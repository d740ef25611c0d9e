package services

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
)

// GrainContractSvcFacade defines the grain-contract service surface, including
// the five allocation operations. All allocation writes are atomic per
// contract: a failed operation leaves the prior allocation set untouched.
type GrainContractSvcFacade interface {
	CreateContract(ctx context.Context, businessID string, req dto.CreateContractRequest, userID string) (*domain.GrainContract, error)
	GetContractByID(ctx context.Context, businessID string, contractID string) (*domain.GrainContract, error)
	ListContracts(ctx context.Context, businessID string, cropYear int) ([]domain.GrainContract, error)
	UpdateContract(ctx context.Context, businessID string, contractID string, req dto.UpdateContractRequest, userID string) (*domain.GrainContract, error)
	DeleteContract(ctx context.Context, businessID string, contractID string) error

	// PreviewProportional computes the proportional split without persisting.
	PreviewProportional(ctx context.Context, businessID string, contractID string) ([]domain.AllocationPreview, error)
	// AutoAllocate persists the proportional split, replacing any prior
	// allocations for the contract.
	AutoAllocate(ctx context.Context, businessID string, contractID string, userID string) ([]domain.FarmContractAllocation, error)
	// SetManual persists an explicit split; rejected without partial writes
	// when bushels do not sum to the contract total or a farm is ineligible.
	SetManual(ctx context.Context, businessID string, contractID string, req dto.SetManualAllocationRequest, userID string) ([]domain.FarmContractAllocation, error)
	// ResetToProportional discards manual overrides by re-running AutoAllocate
	// against the currently eligible farm set.
	ResetToProportional(ctx context.Context, businessID string, contractID string, userID string) ([]domain.FarmContractAllocation, error)
	// DeleteAllocation removes one farm's row. The remaining allocations are
	// not rescaled; the contract stays under-allocated until the caller
	// resets or edits manually.
	DeleteAllocation(ctx context.Context, businessID string, contractID string, farmID string) error

	ListAllocations(ctx context.Context, businessID string, contractID string) ([]domain.FarmContractAllocation, error)
}
