package domain

import (
	"github.com/shopspring/decimal"
)

// FarmDirectCost holds the accumulated per-farm-year direct cost totals.
// Amounts are accumulated from validated cost-entry lines and are non-negative.
type FarmDirectCost struct {
	FarmID     string          `json:"farmID"`
	CropYear   int             `json:"cropYear"`
	Fertilizer decimal.Decimal `json:"fertilizer"`
	Chemical   decimal.Decimal `json:"chemical"`
	Seed       decimal.Decimal `json:"seed"`
	LandRent   decimal.Decimal `json:"landRent"`
	Insurance  decimal.Decimal `json:"insurance"`
	Other      decimal.Decimal `json:"other"`
	AuditFields
}

// FarmCostTotal is the aggregated cost picture for one farm-year: direct costs
// plus the annual loan interest/principal routed from financing records.
type FarmCostTotal struct {
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

// CostCategory tags a typed invoice line entering the cost ledger.
type CostCategory string

const (
	CostFertilizer CostCategory = "FERTILIZER"
	CostChemical   CostCategory = "CHEMICAL"
	CostSeed       CostCategory = "SEED"
	CostLandRent   CostCategory = "LAND_RENT"
	CostInsurance  CostCategory = "INSURANCE"
	CostOther      CostCategory = "OTHER"
)

// IsValid reports whether c is one of the known cost categories.
func (c CostCategory) IsValid() bool {
	switch c {
	case CostFertilizer, CostChemical, CostSeed, CostLandRent, CostInsurance, CostOther:
		return true
	}
	return false
}
