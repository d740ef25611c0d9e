package repositories

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
)

// GrainContractRepositoryFacade defines persistence operations for grain
// contracts and their farm allocations.
type GrainContractRepositoryFacade interface {
	SaveContract(ctx context.Context, contract domain.GrainContract) error
	FindContractByID(ctx context.Context, contractID string) (*domain.GrainContract, error)
	ListContractsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.GrainContract, error)
	UpdateContract(ctx context.Context, contract domain.GrainContract) error
	DeleteContract(ctx context.Context, contractID string) error

	ListAllocations(ctx context.Context, contractID string) ([]domain.FarmContractAllocation, error)
	// ListAllocationsForContracts returns the allocations of several contracts
	// keyed by contract ID; used by the projection fan-in.
	ListAllocationsForContracts(ctx context.Context, contractIDs []string) (map[string][]domain.FarmContractAllocation, error)
	// ReplaceAllocations swaps the full allocation set of one contract inside
	// a single database transaction: concurrent edits on the same contract
	// never interleave into a partially-written state.
	ReplaceAllocations(ctx context.Context, contractID string, allocations []domain.FarmContractAllocation) error
	// DeleteAllocation removes one farm's row without touching the others.
	DeleteAllocation(ctx context.Context, contractID string, farmID string) error
}

// PriceRepositoryFacade defines persistence for per-commodity price snapshots.
type PriceRepositoryFacade interface {
	FindSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error
}
