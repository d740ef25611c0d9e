package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancingType distinguishes loans from leases.
type FinancingType string

const (
	Loan  FinancingType = "LOAN"
	Lease FinancingType = "LEASE"
)

// FinancingMode selects how the annual cost of a financing record is derived.
type FinancingMode string

const (
	// Simple mode carries only a flat annual payment, split into interest and
	// principal by a fixed heuristic.
	Simple FinancingMode = "SIMPLE"
	// Amortized mode carries full loan terms and derives the annual cost from
	// the standard amortization formula.
	Amortized FinancingMode = "AMORTIZED"
)

// FinancingRecord represents a loan or lease attached to one equipment asset.
// Mode determines which fields are meaningful: SIMPLE uses AnnualPayment,
// AMORTIZED uses Principal/InterestRate/TermMonths/RemainingBalance.
type FinancingRecord struct {
	FinancingID string          `json:"financingID"` // Primary Key (e.g., UUID)
	BusinessID  string          `json:"businessID"`
	FarmID      string          `json:"farmID"`      // Farm the annual cost is routed to
	EquipmentID string          `json:"equipmentID"` // Asset reference (opaque here)
	Name        string          `json:"name"`
	Type        FinancingType   `json:"type"`
	Mode        FinancingMode   `json:"mode"`
	CropYear    int             `json:"cropYear"`

	// SIMPLE mode
	AnnualPayment decimal.Decimal `json:"annualPayment"`

	// AMORTIZED mode
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interestRate"` // annualized fraction, e.g. 0.065
	TermMonths       int             `json:"termMonths"`
	StartDate        time.Time       `json:"startDate"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`

	// Manual overrides; when set, the override wins outright for that field.
	AnnualInterestOverride  *decimal.Decimal `json:"annualInterestOverride,omitempty"`
	AnnualPrincipalOverride *decimal.Decimal `json:"annualPrincipalOverride,omitempty"`

	// IncludeInBreakeven gates whether this record's annual cost contributes to
	// the farm cost aggregate.
	IncludeInBreakeven bool `json:"includeInBreakeven"`
	AuditFields
}

// AnnualLoanCost is the annual interest/principal split of one financing record.
type AnnualLoanCost struct {
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
}

// Total returns interest plus principal.
func (c AnnualLoanCost) Total() decimal.Decimal {
	return c.Interest.Add(c.Principal)
}
