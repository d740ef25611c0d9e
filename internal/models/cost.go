package models

import (
	"github.com/shopspring/decimal"
)

// FarmDirectCost represents a row of the farm_direct_costs table: one
// accumulated cost ledger row per farm and crop year.
type FarmDirectCost struct {
	FarmID     string          `db:"farm_id"`
	CropYear   int             `db:"crop_year"`
	Fertilizer decimal.Decimal `db:"fertilizer"`
	Chemical   decimal.Decimal `db:"chemical"`
	Seed       decimal.Decimal `db:"seed"`
	LandRent   decimal.Decimal `db:"land_rent"`
	Insurance  decimal.Decimal `db:"insurance"`
	Other      decimal.Decimal `db:"other"`
	AuditFields
}
