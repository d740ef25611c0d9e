package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot represents a row of the price_snapshots table. Estimated
// snapshots are never persisted, so the table carries no is_estimate column.
type PriceSnapshot struct {
	Commodity string          `db:"commodity"`
	CropYear  int             `db:"crop_year"`
	Futures   decimal.Decimal `db:"futures"`
	Basis     decimal.Decimal `db:"basis"`
	AsOf      time.Time       `db:"as_of"`
}
