package services_test

import (
	"context"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock FarmRepository ---
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) FindFarmByID(ctx context.Context, farmID string) (*domain.Farm, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farm), args.Error(1)
}

func (m *MockFarmRepository) ListFarmsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.Farm, error) {
	args := m.Called(ctx, businessID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Farm), args.Error(1)
}

func (m *MockFarmRepository) SaveFarm(ctx context.Context, farm domain.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) UpdateFarm(ctx context.Context, farm domain.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) ReplaceEntitySplits(ctx context.Context, farmID string, splits []domain.EntitySplit, userID string) error {
	args := m.Called(ctx, farmID, splits, userID)
	return args.Error(0)
}

func (m *MockFarmRepository) DeleteFarm(ctx context.Context, farmID string) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.LegalEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.LegalEntity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalEntity), args.Error(1)
}

func (m *MockEntityRepository) ListEntitiesByBusiness(ctx context.Context, businessID string) ([]domain.LegalEntity, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegalEntity), args.Error(1)
}

func (m *MockEntityRepository) UpdateEntity(ctx context.Context, entity domain.LegalEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

// --- Mock FinancingRepository ---
type MockFinancingRepository struct {
	mock.Mock
}

func (m *MockFinancingRepository) SaveFinancingRecord(ctx context.Context, record domain.FinancingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinancingRepository) FindFinancingByID(ctx context.Context, financingID string) (*domain.FinancingRecord, error) {
	args := m.Called(ctx, financingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancingRecord), args.Error(1)
}

func (m *MockFinancingRepository) ListFinancingByFarm(ctx context.Context, farmID string, cropYear int) ([]domain.FinancingRecord, error) {
	args := m.Called(ctx, farmID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancingRecord), args.Error(1)
}

func (m *MockFinancingRepository) ListFinancingByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FinancingRecord, error) {
	args := m.Called(ctx, businessID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancingRecord), args.Error(1)
}

func (m *MockFinancingRepository) UpdateFinancingRecord(ctx context.Context, record domain.FinancingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinancingRepository) DeleteFinancingRecord(ctx context.Context, financingID string) error {
	args := m.Called(ctx, financingID)
	return args.Error(0)
}

func (m *MockFinancingRepository) UpdateRemainingBalance(ctx context.Context, financingID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, financingID, balance, userID, now)
	return args.Error(0)
}

// --- Mock CostRepository ---
type MockCostRepository struct {
	mock.Mock
}

func (m *MockCostRepository) FindDirectCost(ctx context.Context, farmID string, cropYear int) (*domain.FarmDirectCost, error) {
	args := m.Called(ctx, farmID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmDirectCost), args.Error(1)
}

func (m *MockCostRepository) ListDirectCostsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FarmDirectCost, error) {
	args := m.Called(ctx, businessID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FarmDirectCost), args.Error(1)
}

func (m *MockCostRepository) AccumulateDirectCost(ctx context.Context, farmID string, cropYear int, category domain.CostCategory, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, farmID, cropYear, category, amount, userID, now)
	return args.Error(0)
}

// --- Mock GrainContractRepository ---
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.GrainContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.GrainContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GrainContract), args.Error(1)
}

func (m *MockContractRepository) ListContractsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.GrainContract, error) {
	args := m.Called(ctx, businessID, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GrainContract), args.Error(1)
}

func (m *MockContractRepository) UpdateContract(ctx context.Context, contract domain.GrainContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteContract(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}

func (m *MockContractRepository) ListAllocations(ctx context.Context, contractID string) ([]domain.FarmContractAllocation, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FarmContractAllocation), args.Error(1)
}

func (m *MockContractRepository) ListAllocationsForContracts(ctx context.Context, contractIDs []string) (map[string][]domain.FarmContractAllocation, error) {
	args := m.Called(ctx, contractIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.FarmContractAllocation), args.Error(1)
}

func (m *MockContractRepository) ReplaceAllocations(ctx context.Context, contractID string, allocations []domain.FarmContractAllocation) error {
	args := m.Called(ctx, contractID, allocations)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteAllocation(ctx context.Context, contractID string, farmID string) error {
	args := m.Called(ctx, contractID, farmID)
	return args.Error(0)
}

// --- Mock PriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error) {
	args := m.Called(ctx, commodity, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSnapshot), args.Error(1)
}

func (m *MockPriceRepository) UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Mock PriceFeed service ---
type MockPriceFeed struct {
	mock.Mock
}

func (m *MockPriceFeed) GetSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error) {
	args := m.Called(ctx, commodity, cropYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSnapshot), args.Error(1)
}

func (m *MockPriceFeed) UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot, userID string) error {
	args := m.Called(ctx, snapshot, userID)
	return args.Error(0)
}
