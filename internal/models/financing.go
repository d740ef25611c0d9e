package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancingRecord represents a row of the financing_records table.
// Override columns are nullable; NULL means no override.
type FinancingRecord struct {
	FinancingID string `db:"financing_id"`
	BusinessID  string `db:"business_id"`
	FarmID      string `db:"farm_id"`
	EquipmentID string `db:"equipment_id"`
	Name        string `db:"name"`
	Type        string `db:"type"`
	Mode        string `db:"mode"`
	CropYear    int    `db:"crop_year"`

	AnnualPayment decimal.Decimal `db:"annual_payment"`

	Principal        decimal.Decimal `db:"principal"`
	InterestRate     decimal.Decimal `db:"interest_rate"`
	TermMonths       int             `db:"term_months"`
	StartDate        time.Time       `db:"start_date"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`

	AnnualInterestOverride  *decimal.Decimal `db:"annual_interest_override"`
	AnnualPrincipalOverride *decimal.Decimal `db:"annual_principal_override"`

	IncludeInBreakeven bool `db:"include_in_breakeven"`
	AuditFields
}
