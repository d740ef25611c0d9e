package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot is a per-commodity futures price and local basis for one crop
// year. Cash price = futures + basis. Treated as immutable input for one
// projection run.
type PriceSnapshot struct {
	Commodity CommodityType   `json:"commodity"`
	CropYear  int             `json:"cropYear"`
	Futures   decimal.Decimal `json:"futures"`
	Basis     decimal.Decimal `json:"basis"` // commonly negative
	// IsEstimate marks a defaulted/estimated snapshot used when live data was
	// unavailable; surfaced so callers can show provenance.
	IsEstimate bool      `json:"isEstimate"`
	AsOf       time.Time `json:"asOf"`
}

// CashPrice returns futures plus basis.
func (p PriceSnapshot) CashPrice() decimal.Decimal {
	return p.Futures.Add(p.Basis)
}

// ScenarioDeltaBound is the largest magnitude, in percent, any scenario delta
// may take.
var ScenarioDeltaBound = decimal.NewFromInt(50)

// ScenarioDelta holds temporary what-if percentage adjustments. Deltas are
// applied multiplicatively for the duration of one projection call and are
// never persisted into base data.
type ScenarioDelta struct {
	YieldPct decimal.Decimal `json:"yieldPct"`
	PricePct decimal.Decimal `json:"pricePct"`
	CostPct  decimal.Decimal `json:"costPct"`
}

// Validate ensures each delta is within +/- ScenarioDeltaBound percent.
func (s ScenarioDelta) Validate() error {
	for _, d := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"yieldPct", s.YieldPct},
		{"pricePct", s.PricePct},
		{"costPct", s.CostPct},
	} {
		if d.v.Abs().GreaterThan(ScenarioDeltaBound) {
			return fmt.Errorf("scenario %s %s outside +/-%s%% bound", d.name, d.v, ScenarioDeltaBound)
		}
	}
	return nil
}

// multiplier converts a percentage delta into a multiplicative factor (1 + pct/100).
func multiplier(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
}

// YieldFactor is the multiplicative factor applied to projected yields.
func (s ScenarioDelta) YieldFactor() decimal.Decimal { return multiplier(s.YieldPct) }

// PriceFactor is the multiplicative factor applied to the cash price.
func (s ScenarioDelta) PriceFactor() decimal.Decimal { return multiplier(s.PricePct) }

// CostFactor is the multiplicative factor applied to aggregate cost.
func (s ScenarioDelta) CostFactor() decimal.Decimal { return multiplier(s.CostPct) }
