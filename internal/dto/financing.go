package dto

import (
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFinancingRequest defines the data needed to create a financing record.
// Mode-specific fields: SIMPLE requires annualPayment; AMORTIZED requires
// principal, interestRate, and termMonths.
type CreateFinancingRequest struct {
	FarmID      string               `json:"farmID" binding:"required"`
	EquipmentID string               `json:"equipmentID"`
	Name        string               `json:"name" binding:"required"`
	Type        domain.FinancingType `json:"type" binding:"required,oneof=LOAN LEASE"`
	Mode        domain.FinancingMode `json:"mode" binding:"required,oneof=SIMPLE AMORTIZED"`
	CropYear    int                  `json:"cropYear" binding:"required,cropyear"`

	AnnualPayment decimal.Decimal `json:"annualPayment"`

	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	StartDate    time.Time       `json:"startDate"`

	AnnualInterestOverride  *decimal.Decimal `json:"annualInterestOverride"`
	AnnualPrincipalOverride *decimal.Decimal `json:"annualPrincipalOverride"`

	IncludeInBreakeven bool `json:"includeInBreakeven"`
}

// UpdateFinancingRequest defines the fields allowed for updating a financing
// record. RemainingBalance is deliberately absent: it only changes through
// payment recording.
type UpdateFinancingRequest struct {
	Name                    *string          `json:"name"`
	AnnualPayment           *decimal.Decimal `json:"annualPayment"`
	AnnualInterestOverride  *decimal.Decimal `json:"annualInterestOverride"`
	AnnualPrincipalOverride *decimal.Decimal `json:"annualPrincipalOverride"`
	IncludeInBreakeven      *bool            `json:"includeInBreakeven"`
}

// RecordPaymentRequest carries the principal portion of one payment.
type RecordPaymentRequest struct {
	PrincipalPaid decimal.Decimal `json:"principalPaid" binding:"required"`
}

// FinancingResponse defines the data returned for a financing record, with
// the computed annual interest/principal split attached.
type FinancingResponse struct {
	FinancingID        string               `json:"financingID"`
	FarmID             string               `json:"farmID"`
	EquipmentID        string               `json:"equipmentID,omitempty"`
	Name               string               `json:"name"`
	Type               domain.FinancingType `json:"type"`
	Mode               domain.FinancingMode `json:"mode"`
	CropYear           int                  `json:"cropYear"`
	AnnualPayment      decimal.Decimal      `json:"annualPayment"`
	Principal          decimal.Decimal      `json:"principal"`
	InterestRate       decimal.Decimal      `json:"interestRate"`
	TermMonths         int                  `json:"termMonths"`
	RemainingBalance   decimal.Decimal      `json:"remainingBalance"`
	IncludeInBreakeven bool                 `json:"includeInBreakeven"`
	AnnualInterest     decimal.Decimal      `json:"annualInterest"`
	AnnualPrincipal    decimal.Decimal      `json:"annualPrincipal"`
	CreatedAt          time.Time            `json:"createdAt"`
	LastUpdatedAt      time.Time            `json:"lastUpdatedAt"`
}

// ToFinancingResponse converts a domain record plus its computed annual cost.
func ToFinancingResponse(record *domain.FinancingRecord, cost domain.AnnualLoanCost) FinancingResponse {
	return FinancingResponse{
		FinancingID:        record.FinancingID,
		FarmID:             record.FarmID,
		EquipmentID:        record.EquipmentID,
		Name:               record.Name,
		Type:               record.Type,
		Mode:               record.Mode,
		CropYear:           record.CropYear,
		AnnualPayment:      record.AnnualPayment,
		Principal:          record.Principal,
		InterestRate:       record.InterestRate,
		TermMonths:         record.TermMonths,
		RemainingBalance:   record.RemainingBalance,
		IncludeInBreakeven: record.IncludeInBreakeven,
		AnnualInterest:     cost.Interest,
		AnnualPrincipal:    cost.Principal,
		CreatedAt:          record.CreatedAt,
		LastUpdatedAt:      record.LastUpdatedAt,
	}
}

// PaymentResponse is returned after recording a payment. LoanPaidOff is
// informational: the balance reached zero and the loan's cost should stop
// being counted.
type PaymentResponse struct {
	FinancingID      string          `json:"financingID"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	LoanPaidOff      bool            `json:"loanPaidOff"`
}
