package services

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
)

// FarmSvcFacade defines the farm management service surface.
type FarmSvcFacade interface {
	CreateFarm(ctx context.Context, businessID string, req dto.CreateFarmRequest, userID string) (*domain.Farm, error)
	GetFarmByID(ctx context.Context, businessID string, farmID string) (*domain.Farm, error)
	ListFarms(ctx context.Context, businessID string, cropYear int) ([]domain.Farm, error)
	UpdateFarm(ctx context.Context, businessID string, farmID string, req dto.UpdateFarmRequest, userID string) (*domain.Farm, error)
	// SetEntitySplits replaces the farm's fractional ownership; percentages
	// must sum to exactly 100.
	SetEntitySplits(ctx context.Context, businessID string, farmID string, splits []dto.EntitySplitInput, userID string) (*domain.Farm, error)
	// DeleteFarm explicitly removes a farm, cascading to its usage records.
	DeleteFarm(ctx context.Context, businessID string, farmID string) error
}

// EntitySvcFacade defines the legal-entity service surface.
type EntitySvcFacade interface {
	CreateEntity(ctx context.Context, businessID string, req dto.CreateEntityRequest, userID string) (*domain.LegalEntity, error)
	GetEntityByID(ctx context.Context, businessID string, entityID string) (*domain.LegalEntity, error)
	ListEntities(ctx context.Context, businessID string) ([]domain.LegalEntity, error)
}
