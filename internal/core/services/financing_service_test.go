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
type FinancingServiceTestSuite struct {
	suite.Suite
	mockFinancingRepo *MockFinancingRepository
	mockFarmRepo      *MockFarmRepository
	service           portssvc.FinancingSvcFacade
	businessID        string
	userID            string
}

func (suite *FinancingServiceTestSuite) SetupTest() {
	suite.mockFinancingRepo = new(MockFinancingRepository)
	suite.mockFarmRepo = new(MockFarmRepository)
	suite.service = services.NewFinancingService(suite.mockFinancingRepo, suite.mockFarmRepo)
	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FinancingServiceTestSuite) ownedFarm(farmID string) *domain.Farm {
	return &domain.Farm{
		FarmID:     farmID,
		BusinessID: suite.businessID,
		Name:       "North 80",
		Commodity:  domain.Corn,
		CropYear:   2026,
	}
}

func (suite *FinancingServiceTestSuite) simpleRecord(financingID string) *domain.FinancingRecord {
	return &domain.FinancingRecord{
		FinancingID:        financingID,
		BusinessID:         suite.businessID,
		FarmID:             "farm-1",
		Name:               "Combine lease",
		Type:               domain.Lease,
		Mode:               domain.Simple,
		CropYear:           2026,
		AnnualPayment:      decimal.NewFromInt(24000),
		IncludeInBreakeven: true,
	}
}

// --- Test Cases ---

func (suite *FinancingServiceTestSuite) TestCreateFinancing_SimpleSuccess() {
	ctx := context.Background()
	req := dto.CreateFinancingRequest{
		FarmID:             "farm-1",
		Name:               "Combine lease",
		Type:               domain.Lease,
		Mode:               domain.Simple,
		CropYear:           2026,
		AnnualPayment:      decimal.NewFromInt(24000),
		IncludeInBreakeven: true,
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(suite.ownedFarm("farm-1"), nil).Once()
	suite.mockFinancingRepo.On("SaveFinancingRecord", ctx, mock.MatchedBy(func(r domain.FinancingRecord) bool {
		return r.BusinessID == suite.businessID && r.Mode == domain.Simple && r.CreatedBy == suite.userID
	})).Return(nil).Once()

	record, err := suite.service.CreateFinancing(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(domain.Simple, record.Mode)
	suite.mockFinancingRepo.AssertExpectations(suite.T())
}

func (suite *FinancingServiceTestSuite) TestCreateFinancing_AmortizedInitializesBalance() {
	ctx := context.Background()
	req := dto.CreateFinancingRequest{
		FarmID:             "farm-1",
		Name:               "Tractor loan",
		Type:               domain.Loan,
		Mode:               domain.Amortized,
		CropYear:           2026,
		Principal:          decimal.NewFromInt(120000),
		InterestRate:       decimal.RequireFromString("0.06"),
		TermMonths:         60,
		IncludeInBreakeven: true,
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(suite.ownedFarm("farm-1"), nil).Once()
	suite.mockFinancingRepo.On("SaveFinancingRecord", ctx, mock.MatchedBy(func(r domain.FinancingRecord) bool {
		return r.RemainingBalance.Equal(r.Principal)
	})).Return(nil).Once()

	record, err := suite.service.CreateFinancing(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(record.RemainingBalance.Equal(decimal.NewFromInt(120000)))
	suite.mockFinancingRepo.AssertExpectations(suite.T())
}

func (suite *FinancingServiceTestSuite) TestCreateFinancing_AmortizedMissingTermsRejected() {
	ctx := context.Background()
	req := dto.CreateFinancingRequest{
		FarmID:       "farm-1",
		Name:         "Tractor loan",
		Type:         domain.Loan,
		Mode:         domain.Amortized,
		CropYear:     2026,
		Principal:    decimal.NewFromInt(120000),
		InterestRate: decimal.RequireFromString("0.06"),
		// TermMonths deliberately absent.
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(suite.ownedFarm("farm-1"), nil).Once()

	record, err := suite.service.CreateFinancing(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrMissingAmortizationInput)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(record)
	suite.mockFinancingRepo.AssertNotCalled(suite.T(), "SaveFinancingRecord", mock.Anything, mock.Anything)
}

func (suite *FinancingServiceTestSuite) TestCreateFinancing_ForeignFarmRejected() {
	ctx := context.Background()
	foreign := suite.ownedFarm("farm-1")
	foreign.BusinessID = uuid.NewString()
	req := dto.CreateFinancingRequest{
		FarmID:        "farm-1",
		Name:          "Combine lease",
		Type:          domain.Lease,
		Mode:          domain.Simple,
		CropYear:      2026,
		AnnualPayment: decimal.NewFromInt(24000),
	}

	suite.mockFarmRepo.On("FindFarmByID", ctx, "farm-1").Return(foreign, nil).Once()

	record, err := suite.service.CreateFinancing(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(record)
	suite.mockFinancingRepo.AssertNotCalled(suite.T(), "SaveFinancingRecord", mock.Anything, mock.Anything)
}

func (suite *FinancingServiceTestSuite) TestRecordPayment_ReducesBalance() {
	ctx := context.Background()
	record := suite.simpleRecord(uuid.NewString())
	record.Mode = domain.Amortized
	record.Principal = decimal.NewFromInt(120000)
	record.InterestRate = decimal.RequireFromString("0.06")
	record.TermMonths = 60
	record.RemainingBalance = decimal.NewFromInt(100000)

	suite.mockFinancingRepo.On("FindFinancingByID", ctx, record.FinancingID).Return(record, nil).Once()
	suite.mockFinancingRepo.On("UpdateRemainingBalance", ctx, record.FinancingID,
		decimal.NewFromInt(78000), suite.userID, mock.Anything).Return(nil).Once()

	updated, paidOff, err := suite.service.RecordPayment(ctx, suite.businessID, record.FinancingID,
		dto.RecordPaymentRequest{PrincipalPaid: decimal.NewFromInt(22000)}, suite.userID)

	suite.Require().NoError(err)
	suite.False(paidOff)
	suite.True(updated.RemainingBalance.Equal(decimal.NewFromInt(78000)))
	suite.mockFinancingRepo.AssertExpectations(suite.T())
}

func (suite *FinancingServiceTestSuite) TestRecordPayment_OverpaymentClampsToZero() {
	ctx := context.Background()
	record := suite.simpleRecord(uuid.NewString())
	record.RemainingBalance = decimal.NewFromInt(5000)

	suite.mockFinancingRepo.On("FindFinancingByID", ctx, record.FinancingID).Return(record, nil).Once()
	suite.mockFinancingRepo.On("UpdateRemainingBalance", ctx, record.FinancingID,
		decimal.Zero, suite.userID, mock.Anything).Return(nil).Once()

	updated, paidOff, err := suite.service.RecordPayment(ctx, suite.businessID, record.FinancingID,
		dto.RecordPaymentRequest{PrincipalPaid: decimal.NewFromInt(8000)}, suite.userID)

	suite.Require().NoError(err)
	suite.True(paidOff)
	suite.True(updated.RemainingBalance.IsZero())
	suite.mockFinancingRepo.AssertExpectations(suite.T())
}

func (suite *FinancingServiceTestSuite) TestRecordPayment_NonPositiveAmountRejected() {
	ctx := context.Background()

	_, _, err := suite.service.RecordPayment(ctx, suite.businessID, uuid.NewString(),
		dto.RecordPaymentRequest{PrincipalPaid: decimal.Zero}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockFinancingRepo.AssertNotCalled(suite.T(), "FindFinancingByID", mock.Anything, mock.Anything)
}

func (suite *FinancingServiceTestSuite) TestUpdateFinancing_BalanceNotEditable() {
	ctx := context.Background()
	record := suite.simpleRecord(uuid.NewString())
	record.RemainingBalance = decimal.NewFromInt(5000)
	newName := "Renamed lease"

	suite.mockFinancingRepo.On("FindFinancingByID", ctx, record.FinancingID).Return(record, nil).Once()
	suite.mockFinancingRepo.On("UpdateFinancingRecord", ctx, mock.MatchedBy(func(r domain.FinancingRecord) bool {
		// The general update path must not touch the balance.
		return r.Name == newName && r.RemainingBalance.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateFinancing(ctx, suite.businessID, record.FinancingID,
		dto.UpdateFinancingRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockFinancingRepo.AssertExpectations(suite.T())
}

func TestFinancingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinancingServiceTestSuite))
}
