package services

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
)

// FinancingSvcFacade defines the financing-record service surface.
type FinancingSvcFacade interface {
	CreateFinancing(ctx context.Context, businessID string, req dto.CreateFinancingRequest, userID string) (*domain.FinancingRecord, error)
	GetFinancingByID(ctx context.Context, businessID string, financingID string) (*domain.FinancingRecord, error)
	ListFinancingByFarm(ctx context.Context, businessID string, farmID string, cropYear int) ([]domain.FinancingRecord, error)
	UpdateFinancing(ctx context.Context, businessID string, financingID string, req dto.UpdateFinancingRequest, userID string) (*domain.FinancingRecord, error)
	DeleteFinancing(ctx context.Context, businessID string, financingID string) error

	// AnnualCost computes the record's annual interest/principal split.
	AnnualCost(record domain.FinancingRecord) (domain.AnnualLoanCost, error)

	// RecordPayment reduces the remaining balance by the principal portion
	// paid. The balance clamps at zero; paidOff reports that the loan is done.
	RecordPayment(ctx context.Context, businessID string, financingID string, req dto.RecordPaymentRequest, userID string) (record *domain.FinancingRecord, paidOff bool, err error)
}

// CostEntrySvcFacade defines the cost-ledger boundary: validated invoice
// lines in, aggregated farm cost totals out.
type CostEntrySvcFacade interface {
	RecordCostEntry(ctx context.Context, businessID string, req dto.RecordCostEntryRequest, userID string) (*domain.FarmDirectCost, error)
	// GetFarmCostTotal aggregates direct costs plus break-even-gated loan
	// costs for one farm-year.
	GetFarmCostTotal(ctx context.Context, businessID string, farmID string, cropYear int) (*domain.FarmCostTotal, error)
}
