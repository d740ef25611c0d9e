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
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PriceFeedServiceTestSuite struct {
	suite.Suite
	mockPriceRepo *MockPriceRepository
	service       portssvc.PriceFeedSvcFacade
}

func (suite *PriceFeedServiceTestSuite) SetupTest() {
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.service = services.NewPriceFeedService(suite.mockPriceRepo)
}

// --- Test Cases ---

func (suite *PriceFeedServiceTestSuite) TestGetSnapshot_StoredRow() {
	ctx := context.Background()
	stored := &domain.PriceSnapshot{
		Commodity: domain.Corn,
		CropYear:  2026,
		Futures:   decimal.RequireFromString("4.85"),
		Basis:     decimal.RequireFromString("-0.35"),
		AsOf:      time.Now(),
	}
	suite.mockPriceRepo.On("FindSnapshot", ctx, domain.Corn, 2026).Return(stored, nil).Once()

	snapshot, err := suite.service.GetSnapshot(ctx, domain.Corn, 2026)

	suite.Require().NoError(err)
	suite.False(snapshot.IsEstimate)
	suite.True(snapshot.CashPrice().Equal(decimal.RequireFromString("4.50")))
}

func (suite *PriceFeedServiceTestSuite) TestGetSnapshot_MissingRowIsMissingPriceData() {
	ctx := context.Background()
	suite.mockPriceRepo.On("FindSnapshot", ctx, domain.Wheat, 2026).Return(nil, apperrors.ErrNotFound).Once()

	snapshot, err := suite.service.GetSnapshot(ctx, domain.Wheat, 2026)

	suite.Require().ErrorIs(err, apperrors.ErrMissingPriceData)
	suite.Nil(snapshot)
}

func (suite *PriceFeedServiceTestSuite) TestGetSnapshot_StoreFailureDegradesToEstimate() {
	ctx := context.Background()
	suite.mockPriceRepo.On("FindSnapshot", ctx, domain.Soybeans, 2026).
		Return(nil, errors.New("connection refused")).Once()

	snapshot, err := suite.service.GetSnapshot(ctx, domain.Soybeans, 2026)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.True(snapshot.IsEstimate)
	suite.Equal(domain.Soybeans, snapshot.Commodity)
	suite.True(snapshot.Futures.IsPositive())
}

func (suite *PriceFeedServiceTestSuite) TestUpsertSnapshot_UnknownCommodityRejected() {
	ctx := context.Background()

	err := suite.service.UpsertSnapshot(ctx, domain.PriceSnapshot{
		Commodity: "BARLEY",
		CropYear:  2026,
		Futures:   decimal.RequireFromString("6.00"),
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPriceRepo.AssertNotCalled(suite.T(), "UpsertSnapshot", ctx, nil)
}

func TestPriceFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceFeedServiceTestSuite))
}
