package domain

import (
	"github.com/shopspring/decimal"
)

// CommodityType identifies the crop a farm produces and a contract covers.
type CommodityType string

const (
	Corn     CommodityType = "CORN"
	Soybeans CommodityType = "SOYBEANS"
	Wheat    CommodityType = "WHEAT"
)

// IsValid reports whether c is one of the known commodity types.
func (c CommodityType) IsValid() bool {
	switch c {
	case Corn, Soybeans, Wheat:
		return true
	}
	return false
}

// EntitySplit assigns a fractional share of a farm's cost and revenue to a
// legal entity. Percentages for one farm must sum to exactly 100.
type EntitySplit struct {
	EntityID   string          `json:"entityID"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Farm represents one farm-year production unit within the core domain.
// A farm belongs wholly to EntityID unless Splits is non-empty, in which case
// cost and revenue are divided across the listed entities.
type Farm struct {
	FarmID         string          `json:"farmID"`     // Primary Key (e.g., UUID)
	BusinessID     string          `json:"businessID"` // FK -> businesses.business_id (NON-NULL)
	EntityID       string          `json:"entityID"`   // Owning legal entity when Splits is empty
	Name           string          `json:"name"`
	Commodity      CommodityType   `json:"commodity"`
	CropYear       int             `json:"cropYear"`
	Acres          decimal.Decimal `json:"acres"`          // >= 0
	ProjectedYield decimal.Decimal `json:"projectedYield"` // APH, bushels per acre, >= 0
	Splits         []EntitySplit   `json:"splits,omitempty"`
	AuditFields
}

// ExpectedBushels is the farm's expected production: acres * projected yield.
func (f Farm) ExpectedBushels() decimal.Decimal {
	return f.Acres.Mul(f.ProjectedYield)
}

// LegalEntity is a legal operating entity that owns farms.
type LegalEntity struct {
	EntityID   string `json:"entityID"` // Primary Key (e.g., UUID)
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	AuditFields
}
