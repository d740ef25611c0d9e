package services_test

import (
	"context"
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
type FarmServiceTestSuite struct {
	suite.Suite
	mockFarmRepo   *MockFarmRepository
	mockEntityRepo *MockEntityRepository
	service        portssvc.FarmSvcFacade
	businessID     string
	userID         string
}

func (suite *FarmServiceTestSuite) SetupTest() {
	suite.mockFarmRepo = new(MockFarmRepository)
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.service = services.NewFarmService(suite.mockFarmRepo, suite.mockEntityRepo)
	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FarmServiceTestSuite) ownedEntity(entityID string) *domain.LegalEntity {
	return &domain.LegalEntity{
		EntityID:   entityID,
		BusinessID: suite.businessID,
		Name:       "Rittgers Farms LLC",
	}
}

func (suite *FarmServiceTestSuite) ownedFarm(farmID string) *domain.Farm {
	return &domain.Farm{
		FarmID:         farmID,
		BusinessID:     suite.businessID,
		EntityID:       "entity-1",
		Name:           "North 80",
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(80),
		ProjectedYield: decimal.NewFromInt(210),
	}
}

// --- Test Cases ---

func (suite *FarmServiceTestSuite) TestCreateFarm_Success() {
	ctx := context.Background()
	req := dto.CreateFarmRequest{
		Name:           "North 80",
		EntityID:       "entity-1",
		Commodity:      domain.Corn,
		CropYear:       2026,
		Acres:          decimal.NewFromInt(80),
		ProjectedYield: decimal.NewFromInt(210),
	}

	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-1").Return(suite.ownedEntity("entity-1"), nil).Once()
	suite.mockFarmRepo.On("SaveFarm", ctx, mock.MatchedBy(func(f domain.Farm) bool {
		return f.BusinessID == suite.businessID && f.Name == req.Name && f.CreatedBy == suite.userID
	})).Return(nil).Once()

	farm, err := suite.service.CreateFarm(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(farm)
	suite.True(farm.ExpectedBushels().Equal(decimal.NewFromInt(16800)))
	suite.mockFarmRepo.AssertExpectations(suite.T())
}

func (suite *FarmServiceTestSuite) TestCreateFarm_NegativeAcresRejected() {
	ctx := context.Background()
	req := dto.CreateFarmRequest{
		Name:      "Bad farm",
		EntityID:  "entity-1",
		Commodity: domain.Corn,
		CropYear:  2026,
		Acres:     decimal.NewFromInt(-10),
	}

	farm, err := suite.service.CreateFarm(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(farm)
	suite.mockFarmRepo.AssertNotCalled(suite.T(), "SaveFarm", mock.Anything, mock.Anything)
}

func (suite *FarmServiceTestSuite) TestCreateFarm_ForeignEntityRejected() {
	ctx := context.Background()
	foreign := suite.ownedEntity("entity-1")
	foreign.BusinessID = uuid.NewString()
	req := dto.CreateFarmRequest{
		Name:      "North 80",
		EntityID:  "entity-1",
		Commodity: domain.Corn,
		CropYear:  2026,
		Acres:     decimal.NewFromInt(80),
	}

	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-1").Return(foreign, nil).Once()

	farm, err := suite.service.CreateFarm(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(farm)
}

func (suite *FarmServiceTestSuite) TestSetEntitySplits_SumMustBeHundred() {
	ctx := context.Background()
	farm := suite.ownedFarm("farm-1")
	splits := []dto.EntitySplitInput{
		{EntityID: "entity-1", Percentage: decimal.NewFromInt(60)},
		{EntityID: "entity-2", Percentage: decimal.NewFromInt(30)},
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(farm, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-1").Return(suite.ownedEntity("entity-1"), nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-2").Return(suite.ownedEntity("entity-2"), nil).Once()

	updated, err := suite.service.SetEntitySplits(ctx, suite.businessID, "farm-1", splits, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	suite.mockFarmRepo.AssertNotCalled(suite.T(), "ReplaceEntitySplits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FarmServiceTestSuite) TestSetEntitySplits_FractionalSplitAccepted() {
	ctx := context.Background()
	farm := suite.ownedFarm("farm-1")
	splits := []dto.EntitySplitInput{
		{EntityID: "entity-1", Percentage: decimal.RequireFromString("66.67")},
		{EntityID: "entity-2", Percentage: decimal.RequireFromString("33.33")},
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(farm, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-1").Return(suite.ownedEntity("entity-1"), nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, "entity-2").Return(suite.ownedEntity("entity-2"), nil).Once()
	suite.mockFarmRepo.On("ReplaceEntitySplits", ctx, "farm-1", mock.Anything, suite.userID).Return(nil).Once()

	updated, err := suite.service.SetEntitySplits(ctx, suite.businessID, "farm-1", splits, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Splits, 2)
	suite.mockFarmRepo.AssertExpectations(suite.T())
}

func (suite *FarmServiceTestSuite) TestSetEntitySplits_EmptyListRestoresWholeOwnership() {
	ctx := context.Background()
	farm := suite.ownedFarm("farm-1")
	farm.Splits = []domain.EntitySplit{{EntityID: "entity-2", Percentage: decimal.NewFromInt(100)}}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(farm, nil).Once()
	suite.mockFarmRepo.On("ReplaceEntitySplits", ctx, "farm-1", mock.Anything, suite.userID).Return(nil).Once()

	updated, err := suite.service.SetEntitySplits(ctx, suite.businessID, "farm-1", nil, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(updated.Splits)
	suite.mockFarmRepo.AssertExpectations(suite.T())
}

func (suite *FarmServiceTestSuite) TestDeleteFarm_OtherBusinessNotFound() {
	ctx := context.Background()
	farm := suite.ownedFarm("farm-1")
	farm.BusinessID = uuid.NewString()

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(farm, nil).Once()

	err := suite.service.DeleteFarm(ctx, suite.businessID, "farm-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockFarmRepo.AssertNotCalled(suite.T(), "DeleteFarm", mock.Anything, mock.Anything)
}

func TestFarmServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FarmServiceTestSuite))
}
