package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/core/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type GrainContractServiceTestSuite struct {
	suite.Suite
	mockContractRepo *MockContractRepository
	mockFarmRepo     *MockFarmRepository
	service          portssvc.GrainContractSvcFacade
	businessID       string
	userID           string
}

func (suite *GrainContractServiceTestSuite) SetupTest() {
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockFarmRepo = new(MockFarmRepository)
	suite.service = services.NewGrainContractService(suite.mockContractRepo, suite.mockFarmRepo)
	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *GrainContractServiceTestSuite) newFarm(farmID string, acres, yield int64) domain.Farm {
	return domain.Farm{
		FarmID:         farmID,
		BusinessID:     suite.businessID,
		EntityID:       uuid.NewString(),
		Name:           "Farm " + farmID,
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(acres),
		ProjectedYield: decimal.NewFromInt(yield),
	}
}

func (suite *GrainContractServiceTestSuite) newContract(totalBushels int64) *domain.GrainContract {
	return &domain.GrainContract{
		ContractID:   uuid.NewString(),
		BusinessID:   suite.businessID,
		Name:         "Fall corn",
		Commodity:    domain.Corn,
		CropYear:     2026,
		TotalBushels: totalBushels,
		Pricing:      domain.CashContract,
		CashPrice:    decimal.RequireFromString("4.80"),
	}
}

// --- Test Cases ---

func (suite *GrainContractServiceTestSuite) TestCreateContract_Success() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		Name:         "Fall corn",
		Commodity:    domain.Corn,
		CropYear:     2026,
		TotalBushels: 10000,
		Pricing:      domain.CashContract,
		CashPrice:    decimal.RequireFromString("4.80"),
	}

	suite.mockContractRepo.On("SaveContract", ctx, mock.MatchedBy(func(c domain.GrainContract) bool {
		return c.BusinessID == suite.businessID && c.TotalBushels == 10000 && c.CreatedBy == suite.userID
	})).Return(nil).Once()

	contract, err := suite.service.CreateContract(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(contract)
	suite.Equal(req.Name, contract.Name)
	suite.Equal(int64(10000), contract.TotalBushels)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *GrainContractServiceTestSuite) TestGetContract_OtherBusinessReportsNotFound() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	contract.BusinessID = uuid.NewString()

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()

	found, err := suite.service.GetContractByID(ctx, suite.businessID, contract.ContractID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *GrainContractServiceTestSuite) TestAutoAllocate_PersistsProportionalSplit() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{
		suite.newFarm("farm-a", 100, 200), // 20000 bu expected
		suite.newFarm("farm-b", 50, 200),  // 10000 bu expected
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()

	var persisted []domain.FarmContractAllocation
	suite.mockContractRepo.On("ReplaceAllocations", ctx, contract.ContractID, mock.MatchedBy(func(allocations []domain.FarmContractAllocation) bool {
		persisted = allocations
		return len(allocations) == 2
	})).Return(nil).Once()

	allocations, err := suite.service.AutoAllocate(ctx, suite.businessID, contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 2)
	suite.Equal(persisted, allocations)

	byFarm := map[string]int64{}
	var sum int64
	for _, alloc := range allocations {
		byFarm[alloc.FarmID] = alloc.AllocatedBushels
		sum += alloc.AllocatedBushels
	}
	suite.Equal(contract.TotalBushels, sum)
	// farm-a carries two thirds of expected production.
	suite.Equal(int64(6667), byFarm["farm-a"])
	suite.Equal(int64(3333), byFarm["farm-b"])
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *GrainContractServiceTestSuite) TestAutoAllocate_NoEligibleFarms() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	beans := suite.newFarm("farm-a", 100, 55)
	beans.Commodity = domain.Soybeans

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return([]domain.Farm{beans}, nil).Once()

	allocations, err := suite.service.AutoAllocate(ctx, suite.businessID, contract.ContractID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNoEligibleProduction)
	suite.Nil(allocations)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GrainContractServiceTestSuite) TestSetManual_Success() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{
		suite.newFarm("farm-a", 100, 200),
		suite.newFarm("farm-b", 50, 200),
	}
	req := dto.SetManualAllocationRequest{
		Allocations: []dto.ManualAllocationLine{
			{FarmID: "farm-a", Bushels: 9000},
			{FarmID: "farm-b", Bushels: 1000},
		},
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()
	suite.mockContractRepo.On("ReplaceAllocations", ctx, contract.ContractID, mock.Anything).Return(nil).Once()

	allocations, err := suite.service.SetManual(ctx, suite.businessID, contract.ContractID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 2)
	suite.Equal(int64(9000), allocations[0].AllocatedBushels)
	suite.Equal(decimal.RequireFromString("0.9").String(), allocations[0].Share.String())
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *GrainContractServiceTestSuite) TestSetManual_SumMismatchLeavesPriorAllocations() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{suite.newFarm("farm-a", 100, 200)}
	req := dto.SetManualAllocationRequest{
		Allocations: []dto.ManualAllocationLine{{FarmID: "farm-a", Bushels: 9500}},
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()

	allocations, err := suite.service.SetManual(ctx, suite.businessID, contract.ContractID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(allocations)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GrainContractServiceTestSuite) TestSetManual_IneligibleFarmRejected() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{suite.newFarm("farm-a", 100, 200)}
	req := dto.SetManualAllocationRequest{
		Allocations: []dto.ManualAllocationLine{
			{FarmID: "farm-a", Bushels: 4000},
			{FarmID: "farm-z", Bushels: 6000},
		},
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()

	_, err := suite.service.SetManual(ctx, suite.businessID, contract.ContractID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GrainContractServiceTestSuite) TestSetManual_DuplicateFarmRejected() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{suite.newFarm("farm-a", 100, 200)}
	req := dto.SetManualAllocationRequest{
		Allocations: []dto.ManualAllocationLine{
			{FarmID: "farm-a", Bushels: 4000},
			{FarmID: "farm-a", Bushels: 6000},
		},
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()

	_, err := suite.service.SetManual(ctx, suite.businessID, contract.ContractID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GrainContractServiceTestSuite) TestResetToProportional_OverwritesManualSplit() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{
		suite.newFarm("farm-a", 100, 200),
		suite.newFarm("farm-b", 100, 200),
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()
	suite.mockContractRepo.On("ReplaceAllocations", ctx, contract.ContractID, mock.Anything).Return(nil).Once()

	allocations, err := suite.service.ResetToProportional(ctx, suite.businessID, contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 2)
	// Equal expected production, even total: a clean 50/50 split.
	suite.Equal(int64(5000), allocations[0].AllocatedBushels)
	suite.Equal(int64(5000), allocations[1].AllocatedBushels)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *GrainContractServiceTestSuite) TestDeleteAllocation_LeavesRestUntouched() {
	ctx := context.Background()
	contract := suite.newContract(10000)

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("DeleteAllocation", ctx, contract.ContractID, "farm-b").Return(nil).Once()

	err := suite.service.DeleteAllocation(ctx, suite.businessID, contract.ContractID, "farm-b")

	suite.Require().NoError(err)
	// No rebalancing write accompanies the delete: the contract is left
	// under-allocated until the caller resets or edits manually.
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *GrainContractServiceTestSuite) TestPreviewProportional_DoesNotPersist() {
	ctx := context.Background()
	contract := suite.newContract(7)
	farms := []domain.Farm{
		suite.newFarm("farm-a", 1, 100),
		suite.newFarm("farm-b", 1, 100),
		suite.newFarm("farm-c", 1, 100),
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()

	previews, err := suite.service.PreviewProportional(ctx, suite.businessID, contract.ContractID)

	suite.Require().NoError(err)
	var sum int64
	for _, preview := range previews {
		sum += preview.AllocatedBushels
	}
	suite.Equal(int64(7), sum)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "ReplaceAllocations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GrainContractServiceTestSuite) TestAutoAllocate_ReplaceFailurePropagates() {
	ctx := context.Background()
	contract := suite.newContract(10000)
	farms := []domain.Farm{suite.newFarm("farm-a", 100, 200)}
	dbErr := errors.New("db down")

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockFarmRepo.On("ListFarmsByBusiness", ctx, suite.businessID, 2026).Return(farms, nil).Once()
	suite.mockContractRepo.On("ReplaceAllocations", ctx, contract.ContractID, mock.Anything).Return(dbErr).Once()

	allocations, err := suite.service.AutoAllocate(ctx, suite.businessID, contract.ContractID, suite.userID)

	suite.Require().ErrorIs(err, dbErr)
	suite.Nil(allocations)
}

func TestGrainContractServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GrainContractServiceTestSuite))
}
