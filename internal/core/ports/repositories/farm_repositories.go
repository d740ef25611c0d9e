package repositories

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
)

// FarmReader defines read operations for farms.
type FarmReader interface {
	FindFarmByID(ctx context.Context, farmID string) (*domain.Farm, error)
	ListFarmsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.Farm, error)
}

// FarmWriter defines write operations for farms.
type FarmWriter interface {
	SaveFarm(ctx context.Context, farm domain.Farm) error
	UpdateFarm(ctx context.Context, farm domain.Farm) error
	// ReplaceEntitySplits swaps a farm's split list atomically. An empty list
	// returns the farm to whole ownership by its owning entity.
	ReplaceEntitySplits(ctx context.Context, farmID string, splits []domain.EntitySplit, userID string) error
	// DeleteFarm removes the farm and cascades to its direct-cost and
	// allocation rows.
	DeleteFarm(ctx context.Context, farmID string) error
}

// FarmRepositoryFacade combines read and write operations for farms.
type FarmRepositoryFacade interface {
	FarmReader
	FarmWriter
}

// EntityRepositoryFacade defines persistence operations for legal entities.
type EntityRepositoryFacade interface {
	SaveEntity(ctx context.Context, entity domain.LegalEntity) error
	FindEntityByID(ctx context.Context, entityID string) (*domain.LegalEntity, error)
	ListEntitiesByBusiness(ctx context.Context, businessID string) ([]domain.LegalEntity, error)
	UpdateEntity(ctx context.Context, entity domain.LegalEntity) error
}
