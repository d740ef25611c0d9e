package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/utils/finmath"
)

// maxHistoryYears caps a historical replay request.
const maxHistoryYears = 15

// projectionService implements the ProjectionSvcFacade interface. It gathers
// farms, costs, allocations, and prices, then hands each commodity group to
// the pure projector in finmath. The service holds no state between calls.
type projectionService struct {
	BaseService
	farmRepo      portsrepo.FarmReader
	costRepo      portsrepo.CostRepositoryFacade
	financingRepo portsrepo.FinancingRepositoryFacade
	contractRepo  portsrepo.GrainContractRepositoryFacade
	priceFeed     portssvc.PriceFeedSvcFacade
}

// NewProjectionService creates a new break-even projection service.
func NewProjectionService(
	farmRepo portsrepo.FarmReader,
	costRepo portsrepo.CostRepositoryFacade,
	financingRepo portsrepo.FinancingRepositoryFacade,
	contractRepo portsrepo.GrainContractRepositoryFacade,
	priceFeed portssvc.PriceFeedSvcFacade,
) portssvc.ProjectionSvcFacade {
	return &projectionService{
		farmRepo:      farmRepo,
		costRepo:      costRepo,
		financingRepo: financingRepo,
		contractRepo:  contractRepo,
		priceFeed:     priceFeed,
	}
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

// gathered holds the fan-in of the concurrent input fetches for one year.
type gathered struct {
	directCosts []domain.FarmDirectCost
	financing   []domain.FinancingRecord
	costErr     error

	contracts   []domain.GrainContract
	allocations map[string][]domain.FarmContractAllocation
	grainErr    error

	prices   map[domain.CommodityType]*domain.PriceSnapshot
	priceErr map[domain.CommodityType]error
}

// gather fetches cost, grain-marketing, and price inputs concurrently.
// Commodities is the set present in the farm list.
func (s *projectionService) gather(ctx context.Context, businessID string, cropYear int, commodities []domain.CommodityType) *gathered {
	out := &gathered{
		prices:   make(map[domain.CommodityType]*domain.PriceSnapshot, len(commodities)),
		priceErr: make(map[domain.CommodityType]error, len(commodities)),
	}

	var wg sync.WaitGroup
	var priceMu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		direct, err := s.costRepo.ListDirectCostsByBusiness(ctx, businessID, cropYear)
		if err != nil {
			out.costErr = err
			return
		}
		records, err := s.financingRepo.ListFinancingByBusiness(ctx, businessID, cropYear)
		if err != nil {
			out.costErr = err
			return
		}
		out.directCosts = direct
		out.financing = records
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		contracts, err := s.contractRepo.ListContractsByBusiness(ctx, businessID, cropYear)
		if err != nil {
			out.grainErr = err
			return
		}
		contractIDs := make([]string, len(contracts))
		for i, contract := range contracts {
			contractIDs[i] = contract.ContractID
		}
		allocations, err := s.contractRepo.ListAllocationsForContracts(ctx, contractIDs)
		if err != nil {
			out.grainErr = err
			return
		}
		out.contracts = contracts
		out.allocations = allocations
	}()

	for _, commodity := range commodities {
		wg.Add(1)
		go func(commodity domain.CommodityType) {
			defer wg.Done()
			snapshot, err := s.priceFeed.GetSnapshot(ctx, commodity, cropYear)
			priceMu.Lock()
			defer priceMu.Unlock()
			if err != nil {
				out.priceErr[commodity] = err
				return
			}
			out.prices[commodity] = snapshot
		}(commodity)
	}

	wg.Wait()
	return out
}

func (s *projectionService) Project(ctx context.Context, businessID string, cropYear int, commodity domain.CommodityType, scenario *domain.ScenarioDelta) (*domain.Projection, error) {
	if scenario != nil {
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if commodity != "" && !commodity.IsValid() {
		return nil, fmt.Errorf("%w: unknown commodity %q", apperrors.ErrValidation, commodity)
	}

	farms, err := s.farmRepo.ListFarmsByBusiness(ctx, businessID, cropYear)
	if err != nil {
		return nil, err
	}

	// Group farms by commodity, honoring the optional filter.
	groups := map[domain.CommodityType][]domain.Farm{}
	for _, farm := range farms {
		if commodity != "" && farm.Commodity != commodity {
			continue
		}
		groups[farm.Commodity] = append(groups[farm.Commodity], farm)
	}

	projection := &domain.Projection{CropYear: cropYear}
	if len(groups) == 0 {
		return projection, nil
	}

	commodities := make([]domain.CommodityType, 0, len(groups))
	for c := range groups {
		commodities = append(commodities, c)
	}
	sort.Slice(commodities, func(i, j int) bool { return commodities[i] < commodities[j] })

	in := s.gather(ctx, businessID, cropYear, commodities)

	// Cost data is the backbone of a break-even figure; without it the whole
	// projection is meaningless.
	if in.costErr != nil {
		s.LogError(ctx, in.costErr, "Failed to fetch cost inputs", slog.Int("crop_year", cropYear))
		return nil, in.costErr
	}

	// A failed grain-marketing fetch degrades to "no marketed grain" rather
	// than failing the projection.
	if in.grainErr != nil {
		s.LogError(ctx, in.grainErr, "Failed to fetch contract allocations; projecting 100% unmarketed",
			slog.Int("crop_year", cropYear))
		in.contracts = nil
		in.allocations = nil
	}

	directByFarm := make(map[string]domain.FarmDirectCost, len(in.directCosts))
	for _, direct := range in.directCosts {
		directByFarm[direct.FarmID] = direct
	}
	financingByFarm := make(map[string][]domain.FinancingRecord)
	for _, record := range in.financing {
		financingByFarm[record.FarmID] = append(financingByFarm[record.FarmID], record)
	}

	for _, c := range commodities {
		groupFarms := groups[c]

		snapshot, ok := in.prices[c]
		if !ok {
			reason := "missing price data"
			if err := in.priceErr[c]; err != nil {
				reason = err.Error()
			}
			s.LogInfo(ctx, "Omitting commodity from projection",
				slog.String("commodity", string(c)), slog.String("reason", reason))
			projection.Warnings = append(projection.Warnings, domain.ProjectionWarning{Commodity: c, Reason: reason})
			continue
		}

		costByFarm := make(map[string]domain.FarmCostTotal, len(groupFarms))
		groupOK := true
		for _, farm := range groupFarms {
			total, err := finmath.AggregateFarmCosts(farm, directByFarm[farm.FarmID], financingByFarm[farm.FarmID])
			if err != nil {
				// Scoped to the smallest affected unit: this commodity's rows
				// are omitted, the rest of the projection stays usable.
				s.LogError(ctx, err, "Cost aggregation failed; omitting commodity",
					slog.String("commodity", string(c)), slog.String("farm_id", farm.FarmID))
				projection.Warnings = append(projection.Warnings, domain.ProjectionWarning{
					Commodity: c,
					Reason:    fmt.Sprintf("cost aggregation failed for farm %s: %v", farm.FarmID, err),
				})
				groupOK = false
				break
			}
			costByFarm[farm.FarmID] = total
		}
		if !groupOK {
			continue
		}

		farmIDs := make(map[string]bool, len(groupFarms))
		for _, farm := range groupFarms {
			farmIDs[farm.FarmID] = true
		}
		var marketed []finmath.MarketedLot
		for _, contract := range in.contracts {
			if contract.Commodity != c || contract.CropYear != cropYear {
				continue
			}
			for _, alloc := range in.allocations[contract.ContractID] {
				if !farmIDs[alloc.FarmID] {
					continue
				}
				marketed = append(marketed, finmath.MarketedLot{
					FarmID:  alloc.FarmID,
					Bushels: alloc.AllocatedBushels,
					Price:   contract.CashPrice,
				})
			}
		}

		group := finmath.GroupInput{
			Commodity:  c,
			CropYear:   cropYear,
			Farms:      groupFarms,
			CostByFarm: costByFarm,
			Marketed:   marketed,
			Price:      *snapshot,
			Scenario:   scenario,
		}

		projection.Results = append(projection.Results, finmath.ProjectGroup(group))
		projection.Results = append(projection.Results, finmath.ProjectEntities(group)...)
	}

	return projection, nil
}

func (s *projectionService) ProjectHistory(ctx context.Context, businessID string, fromYear, toYear int, commodity domain.CommodityType) ([]domain.Projection, error) {
	if fromYear > toYear {
		return nil, fmt.Errorf("%w: fromYear must not exceed toYear", apperrors.ErrValidation)
	}
	if toYear-fromYear+1 > maxHistoryYears {
		return nil, fmt.Errorf("%w: history range limited to %d years", apperrors.ErrValidation, maxHistoryYears)
	}

	// Each year is an independent projection against that year's own inputs;
	// nothing carries forward.
	projections := make([]domain.Projection, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		projection, err := s.Project(ctx, businessID, year, commodity, nil)
		if err != nil {
			return nil, fmt.Errorf("projection for %d failed: %w", year, err)
		}
		projections = append(projections, *projection)
	}
	return projections, nil
}
