package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/jdrittgers/business-app-sub002/internal/dto"
	"github.com/jdrittgers/business-app-sub002/internal/utils/finmath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// financingService implements the FinancingSvcFacade interface.
type financingService struct {
	BaseService
	financingRepo portsrepo.FinancingRepositoryFacade
	farmRepo      portsrepo.FarmReader
}

// NewFinancingService creates a new financing-record service.
func NewFinancingService(financingRepo portsrepo.FinancingRepositoryFacade, farmRepo portsrepo.FarmReader) portssvc.FinancingSvcFacade {
	return &financingService{financingRepo: financingRepo, farmRepo: farmRepo}
}

var _ portssvc.FinancingSvcFacade = (*financingService)(nil)

func (s *financingService) CreateFinancing(ctx context.Context, businessID string, req dto.CreateFinancingRequest, userID string) (*domain.FinancingRecord, error) {
	farm, err := s.farmRepo.FindFarmByID(ctx, req.FarmID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find farm for financing record", slog.String("farm_id", req.FarmID))
		return nil, fmt.Errorf("invalid farm: %w", err)
	}
	if err := s.CheckOwnership(farm.BusinessID, businessID); err != nil {
		return nil, fmt.Errorf("invalid farm: %w", err)
	}

	now := time.Now()
	record := domain.FinancingRecord{
		FinancingID:             uuid.NewString(),
		BusinessID:              businessID,
		FarmID:                  req.FarmID,
		EquipmentID:             req.EquipmentID,
		Name:                    req.Name,
		Type:                    req.Type,
		Mode:                    req.Mode,
		CropYear:                req.CropYear,
		AnnualPayment:           req.AnnualPayment,
		Principal:               req.Principal,
		InterestRate:            req.InterestRate,
		TermMonths:              req.TermMonths,
		StartDate:               req.StartDate,
		RemainingBalance:        req.Principal,
		AnnualInterestOverride:  req.AnnualInterestOverride,
		AnnualPrincipalOverride: req.AnnualPrincipalOverride,
		IncludeInBreakeven:      req.IncludeInBreakeven,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Per-mode input validation happens up front so malformed records are
	// rejected at entry rather than at projection time.
	if _, err := finmath.ComputeAnnualCost(record); err != nil {
		s.LogError(ctx, err, "Financing record failed annual-cost validation",
			slog.String("mode", string(record.Mode)))
		return nil, err
	}

	if err := s.financingRepo.SaveFinancingRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save financing record", slog.String("financing_id", record.FinancingID))
		return nil, err
	}

	s.LogInfo(ctx, "Financing record created",
		slog.String("financing_id", record.FinancingID),
		slog.String("mode", string(record.Mode)))
	return &record, nil
}

func (s *financingService) GetFinancingByID(ctx context.Context, businessID string, financingID string) (*domain.FinancingRecord, error) {
	record, err := s.financingRepo.FindFinancingByID(ctx, financingID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(record.BusinessID, businessID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *financingService) ListFinancingByFarm(ctx context.Context, businessID string, farmID string, cropYear int) ([]domain.FinancingRecord, error) {
	farm, err := s.farmRepo.FindFarmByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckOwnership(farm.BusinessID, businessID); err != nil {
		return nil, err
	}
	return s.financingRepo.ListFinancingByFarm(ctx, farmID, cropYear)
}

func (s *financingService) UpdateFinancing(ctx context.Context, businessID string, financingID string, req dto.UpdateFinancingRequest, userID string) (*domain.FinancingRecord, error) {
	record, err := s.GetFinancingByID(ctx, businessID, financingID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.AnnualPayment != nil {
		record.AnnualPayment = *req.AnnualPayment
	}
	if req.AnnualInterestOverride != nil {
		record.AnnualInterestOverride = req.AnnualInterestOverride
	}
	if req.AnnualPrincipalOverride != nil {
		record.AnnualPrincipalOverride = req.AnnualPrincipalOverride
	}
	if req.IncludeInBreakeven != nil {
		record.IncludeInBreakeven = *req.IncludeInBreakeven
	}
	record.LastUpdatedAt = time.Now()
	record.LastUpdatedBy = userID

	if err := s.financingRepo.UpdateFinancingRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update financing record", slog.String("financing_id", financingID))
		return nil, err
	}
	return record, nil
}

func (s *financingService) DeleteFinancing(ctx context.Context, businessID string, financingID string) error {
	if _, err := s.GetFinancingByID(ctx, businessID, financingID); err != nil {
		return err
	}
	if err := s.financingRepo.DeleteFinancingRecord(ctx, financingID); err != nil {
		s.LogError(ctx, err, "Failed to delete financing record", slog.String("financing_id", financingID))
		return err
	}
	s.LogInfo(ctx, "Financing record deleted", slog.String("financing_id", financingID))
	return nil
}

func (s *financingService) AnnualCost(record domain.FinancingRecord) (domain.AnnualLoanCost, error) {
	return finmath.ComputeAnnualCost(record)
}

func (s *financingService) RecordPayment(ctx context.Context, businessID string, financingID string, req dto.RecordPaymentRequest, userID string) (*domain.FinancingRecord, bool, error) {
	if !req.PrincipalPaid.IsPositive() {
		return nil, false, fmt.Errorf("%w: principal paid must be positive", apperrors.ErrValidation)
	}

	record, err := s.GetFinancingByID(ctx, businessID, financingID)
	if err != nil {
		return nil, false, err
	}

	// Payment recording is the only path that changes the remaining balance.
	// It never goes negative: overpayment clamps to zero and the loan is
	// reported paid off.
	balance := record.RemainingBalance.Sub(req.PrincipalPaid)
	paidOff := false
	if balance.LessThanOrEqual(decimal.Zero) {
		balance = decimal.Zero
		paidOff = true
	}

	now := time.Now()
	if err := s.financingRepo.UpdateRemainingBalance(ctx, financingID, balance, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update remaining balance", slog.String("financing_id", financingID))
		return nil, false, err
	}

	record.RemainingBalance = balance
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID

	if paidOff {
		s.LogInfo(ctx, "Loan paid off", slog.String("financing_id", financingID))
	} else {
		s.LogInfo(ctx, "Payment recorded",
			slog.String("financing_id", financingID),
			slog.String("remaining_balance", balance.String()))
	}
	return record, paidOff, nil
}
