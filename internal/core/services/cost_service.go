package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/utils/finmath"
	"github.com/shopspring/decimal"
)

// costEntryService implements the CostEntrySvcFacade interface: the validated
// boundary between invoice lines and the per-farm-year cost ledger.
type costEntryService struct {
	BaseService
	costRepo      portsrepo.CostRepositoryFacade
	farmRepo      portsrepo.FarmReader
	financingRepo portsrepo.FinancingRepositoryFacade
}

// NewCostEntryService creates a new cost-entry service.
func NewCostEntryService(costRepo portsrepo.CostRepositoryFacade, farmRepo portsrepo.FarmReader, financingRepo portsrepo.FinancingRepositoryFacade) portssvc.CostEntrySvcFacade {
	return &costEntryService{costRepo: costRepo, farmRepo: farmRepo, financingRepo: financingRepo}
}

var _ portssvc.CostEntrySvcFacade = (*costEntryService)(nil)

func (s *costEntryService) RecordCostEntry(ctx context.Context, businessID string, req dto.RecordCostEntryRequest, userID string) (*domain.FarmDirectCost, error) {
	farm, err := s.farmRepo.FindFarmByID(ctx, req.FarmID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(farm.BusinessID, businessID); err != nil {
		return nil, err
	}

	// Validate every line before writing anything so a malformed line rejects
	// the whole entry.
	type validated struct {
		category domain.CostCategory
		amount   decimal.Decimal
	}
	lines := make([]validated, 0, len(req.Lines))
	for i, line := range req.Lines {
		amount, err := line.Validate()
		if err != nil {
			s.LogError(ctx, err, "Invoice line failed validation",
				slog.Int("line", i), slog.String("category", string(line.Category)))
			return nil, err
		}
		lines = append(lines, validated{category: line.Category, amount: amount})
	}

	now := time.Now()
	for _, line := range lines {
		if err := s.costRepo.AccumulateDirectCost(ctx, req.FarmID, req.CropYear, line.category, line.amount, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to accumulate direct cost",
				slog.String("farm_id", req.FarmID), slog.String("category", string(line.category)))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Cost entry recorded",
		slog.String("farm_id", req.FarmID),
		slog.Int("crop_year", req.CropYear),
		slog.Int("line_count", len(lines)))

	return s.costRepo.FindDirectCost(ctx, req.FarmID, req.CropYear)
}

func (s *costEntryService) GetFarmCostTotal(ctx context.Context, businessID string, farmID string, cropYear int) (*domain.FarmCostTotal, error) {
	farm, err := s.farmRepo.FindFarmByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(farm.BusinessID, businessID); err != nil {
		return nil, err
	}

	direct, err := s.costRepo.FindDirectCost(ctx, farmID, cropYear)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		// No costs entered yet: an empty ledger row, not an error.
		direct = &domain.FarmDirectCost{FarmID: farmID, CropYear: cropYear}
	}

	records, err := s.financingRepo.ListFinancingByFarm(ctx, farmID, cropYear)
	if err != nil {
		return nil, err
	}

	total, err := finmath.AggregateFarmCosts(*farm, *direct, records)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate farm costs", slog.String("farm_id", farmID))
		return nil, err
	}
	total.CropYear = cropYear
	return &total, nil
}
