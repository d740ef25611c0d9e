package repositories

import (
	"context"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancingRepositoryFacade defines persistence operations for financing
// records (loans and leases).
type FinancingRepositoryFacade interface {
	SaveFinancingRecord(ctx context.Context, record domain.FinancingRecord) error
	FindFinancingByID(ctx context.Context, financingID string) (*domain.FinancingRecord, error)
	ListFinancingByFarm(ctx context.Context, farmID string, cropYear int) ([]domain.FinancingRecord, error)
	ListFinancingByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FinancingRecord, error)
	UpdateFinancingRecord(ctx context.Context, record domain.FinancingRecord) error
	DeleteFinancingRecord(ctx context.Context, financingID string) error
	// UpdateRemainingBalance persists the post-payment balance. Payment
	// recording is the only path that changes a record's remaining balance.
	UpdateRemainingBalance(ctx context.Context, financingID string, balance decimal.Decimal, userID string, now time.Time) error
}

// CostRepositoryFacade defines persistence operations for accumulated per
// farm-year direct costs.
type CostRepositoryFacade interface {
	FindDirectCost(ctx context.Context, farmID string, cropYear int) (*domain.FarmDirectCost, error)
	ListDirectCostsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FarmDirectCost, error)
	// AccumulateDirectCost adds amount to one category of a farm-year row,
	// creating the row when absent.
	AccumulateDirectCost(ctx context.Context, farmID string, cropYear int, category domain.CostCategory, amount decimal.Decimal, userID string, now time.Time) error
}
