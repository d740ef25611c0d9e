// Package finmath holds the pure calculation core of the farm financial
// engine: loan annual-cost derivation, cost aggregation, contract bushel
// allocation, and break-even/blended-revenue projection. Functions here do no
// I/O and are deterministic for identical inputs.
package finmath

import (
	"math"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SIMPLE-mode heuristic split of an annual payment. Not derived from
// amortization math; it exists so sparse data entry still yields a usable
// break-even estimate.
var (
	SimpleInterestShare  = decimal.RequireFromString("0.4")
	SimplePrincipalShare = decimal.RequireFromString("0.6")
)

const monthsPerYear = 12

// ComputeAnnualCost converts one financing record into its annual
// interest/principal split.
//
// SIMPLE mode splits the flat annual payment by the fixed 40/60 heuristic; a
// zero or unset payment yields zeros, not an error. AMORTIZED mode
// approximates one year of simple interest on the current balance and derives
// the principal portion from the standard amortization payment, floored at
// zero. A set override wins outright for its field while the other field is
// still computed normally.
func ComputeAnnualCost(record domain.FinancingRecord) (domain.AnnualLoanCost, error) {
	var cost domain.AnnualLoanCost

	switch record.Mode {
	case domain.Simple:
		cost.Interest = record.AnnualPayment.Mul(SimpleInterestShare)
		cost.Principal = record.AnnualPayment.Mul(SimplePrincipalShare)
	case domain.Amortized:
		if record.Principal.IsZero() || record.InterestRate.IsZero() || record.TermMonths == 0 {
			return domain.AnnualLoanCost{}, apperrors.ErrMissingAmortizationInput
		}
		cost.Interest = record.RemainingBalance.Mul(record.InterestRate)
		annualPayment := AnnualAmortizedPayment(record.Principal, record.InterestRate, record.TermMonths)
		principal := annualPayment.Sub(cost.Interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		cost.Principal = principal
	default:
		return domain.AnnualLoanCost{}, apperrors.ErrValidation
	}

	if record.AnnualInterestOverride != nil {
		cost.Interest = *record.AnnualInterestOverride
	}
	if record.AnnualPrincipalOverride != nil {
		cost.Principal = *record.AnnualPrincipalOverride
	}
	return cost, nil
}

// AnnualAmortizedPayment returns twelve times the standard monthly
// amortization payment for the given principal, annualized rate (fraction),
// and term in months. A zero rate degenerates to principal divided by term.
func AnnualAmortizedPayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Mul(decimal.NewFromInt(monthsPerYear))
	}

	// The discount-factor exponentiation is done in float64; sub-cent noise is
	// acceptable for a projection figure.
	p, _ := principal.Float64()
	r, _ := annualRate.Float64()
	periodic := r / monthsPerYear
	power := math.Pow(1.0+periodic, float64(termMonths))
	monthly := p * periodic * power / (power - 1.0)
	return decimal.NewFromFloat(monthly * monthsPerYear)
}
