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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// farmService implements the FarmSvcFacade interface.
type farmService struct {
	BaseService
	farmRepo   portsrepo.FarmRepositoryFacade
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewFarmService creates a new farm service.
func NewFarmService(farmRepo portsrepo.FarmRepositoryFacade, entityRepo portsrepo.EntityRepositoryFacade) portssvc.FarmSvcFacade {
	return &farmService{farmRepo: farmRepo, entityRepo: entityRepo}
}

var _ portssvc.FarmSvcFacade = (*farmService)(nil)

var hundredPct = decimal.NewFromInt(100)

// validateSplits enforces the entity-split invariant: percentages sum to
// exactly 100 and every entity belongs to the business.
func (s *farmService) validateSplits(ctx context.Context, businessID string, splits []dto.EntitySplitInput) ([]domain.EntitySplit, error) {
	if len(splits) == 0 {
		return nil, nil
	}
	sum := decimal.Zero
	out := make([]domain.EntitySplit, len(splits))
	for i, split := range splits {
		entity, err := s.entityRepo.FindEntityByID(ctx, split.EntityID)
		if err != nil {
			return nil, fmt.Errorf("invalid entity %s: %w", split.EntityID, err)
		}
		if err := s.CheckOwnership(entity.BusinessID, businessID); err != nil {
			return nil, fmt.Errorf("invalid entity %s: %w", split.EntityID, err)
		}
		if split.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: split percentage must not be negative", apperrors.ErrValidation)
		}
		sum = sum.Add(split.Percentage)
		out[i] = domain.EntitySplit{EntityID: split.EntityID, Percentage: split.Percentage}
	}
	if !sum.Equal(hundredPct) {
		return nil, fmt.Errorf("%w: entity split percentages must sum to 100, got %s", apperrors.ErrValidation, sum)
	}
	return out, nil
}

func (s *farmService) CreateFarm(ctx context.Context, businessID string, req dto.CreateFarmRequest, userID string) (*domain.Farm, error) {
	if req.Acres.IsNegative() || req.ProjectedYield.IsNegative() {
		return nil, fmt.Errorf("%w: acres and projected yield must not be negative", apperrors.ErrValidation)
	}

	entity, err := s.entityRepo.FindEntityByID(ctx, req.EntityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find owning entity", slog.String("entity_id", req.EntityID))
		return nil, fmt.Errorf("invalid owning entity: %w", err)
	}
	if err := s.CheckOwnership(entity.BusinessID, businessID); err != nil {
		return nil, fmt.Errorf("invalid owning entity: %w", err)
	}

	splits, err := s.validateSplits(ctx, businessID, req.Splits)
	if err != nil {
		s.LogError(ctx, err, "Invalid entity splits")
		return nil, err
	}

	now := time.Now()
	farm := domain.Farm{
		FarmID:         uuid.NewString(),
		BusinessID:     businessID,
		EntityID:       req.EntityID,
		Name:           req.Name,
		Commodity:      req.Commodity,
		CropYear:       req.CropYear,
		Acres:          req.Acres,
		ProjectedYield: req.ProjectedYield,
		Splits:         splits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.farmRepo.SaveFarm(ctx, farm); err != nil {
		s.LogError(ctx, err, "Failed to save farm", slog.String("farm_id", farm.FarmID))
		return nil, err
	}

	s.LogInfo(ctx, "Farm created successfully", slog.String("farm_id", farm.FarmID))
	return &farm, nil
}

func (s *farmService) GetFarmByID(ctx context.Context, businessID string, farmID string) (*domain.Farm, error) {
	farm, err := s.farmRepo.FindFarmByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(farm.BusinessID, businessID); err != nil {
		return nil, err
	}
	return farm, nil
}

func (s *farmService) ListFarms(ctx context.Context, businessID string, cropYear int) ([]domain.Farm, error) {
	return s.farmRepo.ListFarmsByBusiness(ctx, businessID, cropYear)
}

func (s *farmService) UpdateFarm(ctx context.Context, businessID string, farmID string, req dto.UpdateFarmRequest, userID string) (*domain.Farm, error) {
	farm, err := s.GetFarmByID(ctx, businessID, farmID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		farm.Name = *req.Name
	}
	if req.Acres != nil {
		if req.Acres.IsNegative() {
			return nil, fmt.Errorf("%w: acres must not be negative", apperrors.ErrValidation)
		}
		farm.Acres = *req.Acres
	}
	if req.ProjectedYield != nil {
		if req.ProjectedYield.IsNegative() {
			return nil, fmt.Errorf("%w: projected yield must not be negative", apperrors.ErrValidation)
		}
		farm.ProjectedYield = *req.ProjectedYield
	}
	farm.LastUpdatedAt = time.Now()
	farm.LastUpdatedBy = userID

	if err := s.farmRepo.UpdateFarm(ctx, *farm); err != nil {
		s.LogError(ctx, err, "Failed to update farm", slog.String("farm_id", farmID))
		return nil, err
	}
	return farm, nil
}

func (s *farmService) SetEntitySplits(ctx context.Context, businessID string, farmID string, splits []dto.EntitySplitInput, userID string) (*domain.Farm, error) {
	farm, err := s.GetFarmByID(ctx, businessID, farmID)
	if err != nil {
		return nil, err
	}

	validated, err := s.validateSplits(ctx, businessID, splits)
	if err != nil {
		s.LogError(ctx, err, "Invalid entity splits", slog.String("farm_id", farmID))
		return nil, err
	}

	if err := s.farmRepo.ReplaceEntitySplits(ctx, farmID, validated, userID); err != nil {
		s.LogError(ctx, err, "Failed to replace entity splits", slog.String("farm_id", farmID))
		return nil, err
	}

	farm.Splits = validated
	s.LogInfo(ctx, "Entity splits replaced", slog.String("farm_id", farmID), slog.Int("split_count", len(validated)))
	return farm, nil
}

func (s *farmService) DeleteFarm(ctx context.Context, businessID string, farmID string) error {
	if _, err := s.GetFarmByID(ctx, businessID, farmID); err != nil {
		return err
	}
	if err := s.farmRepo.DeleteFarm(ctx, farmID); err != nil {
		s.LogError(ctx, err, "Failed to delete farm", slog.String("farm_id", farmID))
		return err
	}
	s.LogInfo(ctx, "Farm deleted", slog.String("farm_id", farmID))
	return nil
}

// entityService implements the EntitySvcFacade interface.
type entityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new legal-entity service.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) CreateEntity(ctx context.Context, businessID string, req dto.CreateEntityRequest, userID string) (*domain.LegalEntity, error) {
	now := time.Now()
	entity := domain.LegalEntity{
		EntityID:   uuid.NewString(),
		BusinessID: businessID,
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to save legal entity", slog.String("entity_id", entity.EntityID))
		return nil, err
	}
	s.LogInfo(ctx, "Legal entity created", slog.String("entity_id", entity.EntityID))
	return &entity, nil
}

func (s *entityService) GetEntityByID(ctx context.Context, businessID string, entityID string) (*domain.LegalEntity, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(entity.BusinessID, businessID); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) ListEntities(ctx context.Context, businessID string) ([]domain.LegalEntity, error) {
	return s.entityRepo.ListEntitiesByBusiness(ctx, businessID)
}
