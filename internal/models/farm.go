package models

import (
	"github.com/shopspring/decimal"
)

// Farm represents a row of the farms table. Splits live in the separate
// farm_entity_splits table.
type Farm struct {
	FarmID         string          `db:"farm_id"`
	BusinessID     string          `db:"business_id"`
	EntityID       string          `db:"entity_id"`
	Name           string          `db:"name"`
	Commodity      string          `db:"commodity"`
	CropYear       int             `db:"crop_year"`
	Acres          decimal.Decimal `db:"acres"`
	ProjectedYield decimal.Decimal `db:"projected_yield"`
	AuditFields
}

// EntitySplit represents a row of the farm_entity_splits table.
type EntitySplit struct {
	FarmID     string          `db:"farm_id"`
	EntityID   string          `db:"entity_id"`
	Percentage decimal.Decimal `db:"percentage"`
}

// LegalEntity represents a row of the legal_entities table.
type LegalEntity struct {
	EntityID   string `db:"entity_id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	AuditFields
}
