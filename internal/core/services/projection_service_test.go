package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ProjectionServiceTestSuite struct {
	suite.Suite
	mockFarmRepo      *MockFarmRepository
	mockCostRepo      *MockCostRepository
	mockFinancingRepo *MockFinancingRepository
	mockContractRepo  *MockContractRepository
	mockPriceFeed     *MockPriceFeed
	service           portssvc.ProjectionSvcFacade
	businessID        string
}

func (suite *ProjectionServiceTestSuite) SetupTest() {
	suite.mockFarmRepo = new(MockFarmRepository)
	suite.mockCostRepo = new(MockCostRepository)
	suite.mockFinancingRepo = new(MockFinancingRepository)
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockPriceFeed = new(MockPriceFeed)
	suite.service = services.NewProjectionService(
		suite.mockFarmRepo,
		suite.mockCostRepo,
		suite.mockFinancingRepo,
		suite.mockContractRepo,
		suite.mockPriceFeed,
	)
	suite.businessID = uuid.NewString()
}

// cornSetup wires mocks for a single corn farm: 100 acres at 200 bu/ac,
// $45,000 direct cost, one 15,000 bu contract at $4.80, snapshot futures
// 4.85 with basis -0.35.
func (suite *ProjectionServiceTestSuite) cornSetup(ctx context.Context) {
	farm := domain.Farm{
		FarmID:         "farm-1",
		BusinessID:     suite.businessID,
		EntityID:       "entity-1",
		Name:           "North 80",
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(100),
		ProjectedYield: decimal.NewFromInt(200),
	}
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.Farm{farm}, nil).Once()

	suite.mockCostRepo.On("ListDirectCostsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FarmDirectCost{{
			FarmID:     "farm-1",
			CropYear:   2026,
			Fertilizer: decimal.NewFromInt(45000),
		}}, nil).Once()
	suite.mockFinancingRepo.On("ListFinancingByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FinancingRecord{}, nil).Once()

	contract := domain.GrainContract{
		ContractID:   "contract-1",
		BusinessID:   suite.businessID,
		Commodity:    domain.Corn,
		CropYear:     2026,
		TotalBushels: 15000,
		Pricing:      domain.CashContract,
		CashPrice:    decimal.RequireFromString("4.80"),
	}
	suite.mockContractRepo.On("ListContractsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.GrainContract{contract}, nil).Once()
	suite.mockContractRepo.On("ListAllocationsForContracts", ctx, []string{"contract-1"}).
		Return(map[string][]domain.FarmContractAllocation{
			"contract-1": {{ContractID: "contract-1", FarmID: "farm-1", AllocatedBushels: 15000}},
		}, nil).Once()

	suite.mockPriceFeed.On("GetSnapshot", mock.Anything, domain.Corn, 2026).
		Return(&domain.PriceSnapshot{
			Commodity: domain.Corn,
			CropYear:  2026,
			Futures:   decimal.RequireFromString("4.85"),
			Basis:     decimal.RequireFromString("-0.35"),
			AsOf:      time.Now(),
		}, nil).Once()
}

// --- Test Cases ---

func (suite *ProjectionServiceTestSuite) TestProject_WorkedExample() {
	ctx := context.Background()
	suite.cornSetup(ctx)

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().NoError(err)
	suite.Empty(projection.Warnings)
	suite.Require().Len(projection.Results, 2) // one operation row, one entity row

	op := projection.Results[0]
	suite.Equal(domain.OperationScope, op.Scope)
	suite.Equal(domain.Corn, op.Commodity)
	suite.True(op.ExpectedBushels.Equal(decimal.NewFromInt(20000)))
	suite.True(op.MarketedBushels.Equal(decimal.NewFromInt(15000)))
	suite.True(op.UnmarketedBushels.Equal(decimal.NewFromInt(5000)))
	suite.True(op.MarketedRevenue.Equal(decimal.NewFromInt(72000)))
	suite.True(op.UnmarketedRevenue.Equal(decimal.NewFromInt(22500)))
	suite.True(op.TotalRevenue.Equal(decimal.NewFromInt(94500)))
	suite.True(op.TotalCost.Equal(decimal.NewFromInt(45000)))
	suite.True(op.BlendedPrice.Equal(decimal.RequireFromString("4.725")))
	suite.True(op.BreakEvenPrice.Equal(decimal.RequireFromString("2.25")))
	suite.True(op.Profit.Equal(decimal.NewFromInt(49500)))
	suite.False(op.PriceIsEstimate)

	// Whole ownership: the single entity row mirrors the operation row.
	entity := projection.Results[1]
	suite.Equal(domain.EntityScope, entity.Scope)
	suite.Equal("entity-1", entity.EntityID)
	suite.True(entity.TotalRevenue.Equal(op.TotalRevenue))
	suite.True(entity.Profit.Equal(op.Profit))
}

func (suite *ProjectionServiceTestSuite) TestProject_MissingPriceOmitsCommodity() {
	ctx := context.Background()
	farm := domain.Farm{
		FarmID:         "farm-1",
		BusinessID:     suite.businessID,
		EntityID:       "entity-1",
		Commodity:      domain.Wheat,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(100),
		ProjectedYield: decimal.NewFromInt(60),
	}
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.Farm{farm}, nil).Once()
	suite.mockCostRepo.On("ListDirectCostsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FarmDirectCost{}, nil).Once()
	suite.mockFinancingRepo.On("ListFinancingByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FinancingRecord{}, nil).Once()
	suite.mockContractRepo.On("ListContractsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.GrainContract{}, nil).Once()
	suite.mockContractRepo.On("ListAllocationsForContracts", ctx, []string{}).
		Return(map[string][]domain.FarmContractAllocation{}, nil).Once()
	suite.mockPriceFeed.On("GetSnapshot", mock.Anything, domain.Wheat, 2026).
		Return(nil, apperrors.ErrMissingPriceData).Once()

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().NoError(err)
	suite.Empty(projection.Results)
	suite.Require().Len(projection.Warnings, 1)
	suite.Equal(domain.Wheat, projection.Warnings[0].Commodity)
}

func (suite *ProjectionServiceTestSuite) TestProject_AllocationFetchFailureDegradesToUnmarketed() {
	ctx := context.Background()
	farm := domain.Farm{
		FarmID:         "farm-1",
		BusinessID:     suite.businessID,
		EntityID:       "entity-1",
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(100),
		ProjectedYield: decimal.NewFromInt(200),
	}
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.Farm{farm}, nil).Once()
	suite.mockCostRepo.On("ListDirectCostsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FarmDirectCost{{FarmID: "farm-1", CropYear: 2026, Fertilizer: decimal.NewFromInt(45000)}}, nil).Once()
	suite.mockFinancingRepo.On("ListFinancingByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.FinancingRecord{}, nil).Once()
	suite.mockContractRepo.On("ListContractsByBusiness", ctx, suite.businessID, 2026).
		Return(nil, errors.New("db down")).Once()
	suite.mockPriceFeed.On("GetSnapshot", mock.Anything, domain.Corn, 2026).
		Return(&domain.PriceSnapshot{
			Commodity: domain.Corn,
			CropYear:  2026,
			Futures:   decimal.RequireFromString("4.85"),
			Basis:     decimal.RequireFromString("-0.35"),
		}, nil).Once()

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(projection.Results)
	op := projection.Results[0]
	// Everything falls to the unmarketed bucket at the snapshot cash price.
	suite.True(op.MarketedBushels.IsZero())
	suite.True(op.UnmarketedBushels.Equal(decimal.NewFromInt(20000)))
	suite.True(op.TotalRevenue.Equal(decimal.NewFromInt(90000)))
}

func (suite *ProjectionServiceTestSuite) TestProject_CostFetchFailureFails() {
	ctx := context.Background()
	farm := domain.Farm{
		FarmID:         "farm-1",
		BusinessID:     suite.businessID,
		EntityID:       "entity-1",
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(100),
		ProjectedYield: decimal.NewFromInt(200),
	}
	dbErr := errors.New("db down")
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.Farm{farm}, nil).Once()
	suite.mockCostRepo.On("ListDirectCostsByBusiness", ctx, suite.businessID, 2026).
		Return(nil, dbErr).Once()
	suite.mockContractRepo.On("ListContractsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.GrainContract{}, nil).Maybe()
	suite.mockContractRepo.On("ListAllocationsForContracts", ctx, []string{}).
		Return(map[string][]domain.FarmContractAllocation{}, nil).Maybe()
	suite.mockPriceFeed.On("GetSnapshot", mock.Anything, domain.Corn, 2026).
		Return(&domain.PriceSnapshot{Commodity: domain.Corn, CropYear: 2026}, nil).Maybe()

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().ErrorIs(err, dbErr)
	suite.Nil(projection)
}

func (suite *ProjectionServiceTestSuite) TestProject_ScenarioAdjustsRow() {
	ctx := context.Background()
	suite.cornSetup(ctx)
	scenario := &domain.ScenarioDelta{
		YieldPct: decimal.NewFromInt(10),
		PricePct: decimal.NewFromInt(-10),
		CostPct:  decimal.NewFromInt(20),
	}

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", scenario)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(projection.Results)
	op := projection.Results[0]
	suite.True(op.ExpectedBushels.Equal(decimal.NewFromInt(22000)))
	suite.True(op.CashPrice.Equal(decimal.RequireFromString("4.05")))
	suite.True(op.TotalCost.Equal(decimal.NewFromInt(54000)))
	// Marketed bushels stay contracted at the locked price; only the
	// unmarketed remainder moves with the scenario.
	suite.True(op.MarketedRevenue.Equal(decimal.NewFromInt(72000)))
	suite.True(op.TotalRevenue.Equal(decimal.RequireFromString("100350")))
}

func (suite *ProjectionServiceTestSuite) TestProject_ScenarioOutOfBoundsRejected() {
	ctx := context.Background()
	scenario := &domain.ScenarioDelta{YieldPct: decimal.NewFromInt(75)}

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", scenario)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(projection)
	suite.mockFarmRepo.AssertNotCalled(suite.T(), "ListFarmsByBusiness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectionServiceTestSuite) TestProject_EstimatedSnapshotFlagsRow() {
	ctx := context.Background()
	suite.cornSetup(ctx)
	// Replace the price expectation with an estimated snapshot.
	suite.mockPriceFeed.ExpectedCalls = nil
	suite.mockPriceFeed.On("GetSnapshot", mock.Anything, domain.Corn, 2026).
		Return(&domain.PriceSnapshot{
			Commodity:  domain.Corn,
			CropYear:   2026,
			Futures:    decimal.RequireFromString("4.50"),
			Basis:      decimal.RequireFromString("-0.30"),
			IsEstimate: true,
		}, nil).Once()

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(projection.Results)
	suite.True(projection.Results[0].PriceIsEstimate)
	suite.Empty(projection.Warnings)
}

func (suite *ProjectionServiceTestSuite) TestProject_NoFarmsEmptyProjection() {
	ctx := context.Background()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).
		Return([]domain.Farm{}, nil).Once()

	projection, err := suite.service.Project(ctx, suite.businessID, 2026, "", nil)

	suite.Require().NoError(err)
	suite.Empty(projection.Results)
	suite.Empty(projection.Warnings)
	suite.mockCostRepo.AssertNotCalled(suite.T(), "ListDirectCostsByBusiness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectionServiceTestSuite) TestProjectHistory_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.ProjectHistory(ctx, suite.businessID, 2026, 2024, "")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ProjectHistory(ctx, suite.businessID, 2000, 2026, "")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectionServiceTestSuite) TestProjectHistory_OneProjectionPerYear() {
	ctx := context.Background()
	for _, year := range []int{2024, 2025, 2026} {
		suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, year).
			Return([]domain.Farm{}, nil).Once()
	}

	projections, err := suite.service.ProjectHistory(ctx, suite.businessID, 2024, 2026, "")

	suite.Require().NoError(err)
	suite.Require().Len(projections, 3)
	suite.Equal(2024, projections[0].CropYear)
	suite.Equal(2026, projections[2].CropYear)
	suite.mockFarmRepo.AssertExpectations(suite.T())
}

func TestProjectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}
