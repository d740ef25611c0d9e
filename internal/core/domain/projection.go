package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionScope distinguishes operation-wide rows from per-entity rows.
type ProjectionScope string

const (
	OperationScope ProjectionScope = "OPERATION"
	EntityScope    ProjectionScope = "ENTITY"
)

// BreakEvenResult is one derived projection row for a commodity group, either
// for the whole operation or for one legal entity's fractional share. Never
// persisted.
type BreakEvenResult struct {
	Scope     ProjectionScope `json:"scope"`
	EntityID  string          `json:"entityID,omitempty"` // set when Scope == ENTITY
	Commodity CommodityType   `json:"commodity"`
	CropYear  int             `json:"cropYear"`

	Acres           decimal.Decimal `json:"acres"`
	ExpectedBushels decimal.Decimal `json:"expectedBushels"` // scenario-adjusted

	MarketedBushels   decimal.Decimal `json:"marketedBushels"`
	UnmarketedBushels decimal.Decimal `json:"unmarketedBushels"`

	CashPrice         decimal.Decimal `json:"cashPrice"` // scenario-adjusted futures+basis
	MarketedRevenue   decimal.Decimal `json:"marketedRevenue"`
	UnmarketedRevenue decimal.Decimal `json:"unmarketedRevenue"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`

	TotalCost      decimal.Decimal `json:"totalCost"` // scenario-adjusted
	BlendedPrice   decimal.Decimal `json:"blendedPrice"`
	BreakEvenPrice decimal.Decimal `json:"breakEvenPrice"`

	Profit        decimal.Decimal `json:"profit"`
	ProfitPerAcre decimal.Decimal `json:"profitPerAcre"`
	MarginPct     decimal.Decimal `json:"marginPct"`

	// PriceIsEstimate flags that the cash price came from a defaulted snapshot
	// rather than live data.
	PriceIsEstimate bool `json:"priceIsEstimate"`
}

// ProjectionWarning records a per-commodity degradation (e.g. missing price
// data) that caused a row to be omitted or estimated.
type ProjectionWarning struct {
	Commodity CommodityType `json:"commodity"`
	Reason    string        `json:"reason"`
}

// Projection is the full result of one projection run for one crop year.
type Projection struct {
	CropYear int                 `json:"cropYear"`
	Results  []BreakEvenResult   `json:"results"`
	Warnings []ProjectionWarning `json:"warnings,omitempty"`
}
