package dto

import (
	"fmt"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a tagged cost-entry variant. Category selects which fields
// are required: product-category lines (FERTILIZER, CHEMICAL, SEED) carry a
// product name with quantity and unit price; flat-amount lines (LAND_RENT,
// INSURANCE, OTHER) carry an amount directly. Untyped blobs never reach the
// cost ledger.
type InvoiceLine struct {
	Category domain.CostCategory `json:"category" binding:"required,oneof=FERTILIZER CHEMICAL SEED LAND_RENT INSURANCE OTHER"`

	// Product lines
	Product   string          `json:"product,omitempty"`
	Quantity  decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice,omitempty"`

	// Flat-amount lines
	Amount decimal.Decimal `json:"amount,omitempty"`
}

// Validate enforces the per-category required fields and returns the line's
// ledger amount.
func (l InvoiceLine) Validate() (decimal.Decimal, error) {
	switch l.Category {
	case domain.CostFertilizer, domain.CostChemical, domain.CostSeed:
		if l.Product == "" {
			return decimal.Zero, fmt.Errorf("%w: %s line requires a product name", apperrors.ErrValidation, l.Category)
		}
		if !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: %s line requires positive quantity and non-negative unit price", apperrors.ErrValidation, l.Category)
		}
		return l.Quantity.Mul(l.UnitPrice), nil
	case domain.CostLandRent, domain.CostInsurance, domain.CostOther:
		if l.Amount.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: %s line amount must not be negative", apperrors.ErrValidation, l.Category)
		}
		return l.Amount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown cost category %q", apperrors.ErrValidation, l.Category)
	}
}

// RecordCostEntryRequest appends validated invoice lines to a farm-year's
// direct cost totals.
type RecordCostEntryRequest struct {
	FarmID   string        `json:"farmID" binding:"required"`
	CropYear int           `json:"cropYear" binding:"required,cropyear"`
	Lines    []InvoiceLine `json:"lines" binding:"required,min=1,dive"`
}

// CostTotalResponse defines the aggregated cost data returned for a farm-year.
type CostTotalResponse struct {
	FarmID        string          `json:"farmID"`
	CropYear      int             `json:"cropYear"`
	Fertilizer    decimal.Decimal `json:"fertilizer"`
	Chemical      decimal.Decimal `json:"chemical"`
	Seed          decimal.Decimal `json:"seed"`
	LandRent      decimal.Decimal `json:"landRent"`
	Insurance     decimal.Decimal `json:"insurance"`
	Other         decimal.Decimal `json:"other"`
	LoanInterest  decimal.Decimal `json:"loanInterest"`
	LoanPrincipal decimal.Decimal `json:"loanPrincipal"`
	Total         decimal.Decimal `json:"total"`
}

// ToCostTotalResponse converts a domain.FarmCostTotal to its DTO.
func ToCostTotalResponse(total domain.FarmCostTotal) CostTotalResponse {
	return CostTotalResponse{
		FarmID:        total.FarmID,
		CropYear:      total.CropYear,
		Fertilizer:    total.Fertilizer,
		Chemical:      total.Chemical,
		Seed:          total.Seed,
		LandRent:      total.LandRent,
		Insurance:     total.Insurance,
		Other:         total.Other,
		LoanInterest:  total.LoanInterest,
		LoanPrincipal: total.LoanPrincipal,
		Total:         total.Total,
	}
}
