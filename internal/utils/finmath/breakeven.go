package finmath

import (
	"sort"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MarketedLot is one contract allocation flattened for projection: bushels
// already committed by a farm at the contract's realized price.
type MarketedLot struct {
	FarmID  string
	Bushels int64
	Price   decimal.Decimal
}

// GroupInput is everything the projector needs for one commodity group: the
// group's farms, their aggregated costs, the marketed lots referencing them,
// and the commodity's price snapshot. Scenario may be nil.
type GroupInput struct {
	Commodity  domain.CommodityType
	CropYear   int
	Farms      []domain.Farm
	CostByFarm map[string]domain.FarmCostTotal
	Marketed   []MarketedLot
	Price      domain.PriceSnapshot
	Scenario   *domain.ScenarioDelta
}

func (in GroupInput) factors() (yield, price, cost decimal.Decimal) {
	one := decimal.NewFromInt(1)
	if in.Scenario == nil {
		return one, one, one
	}
	return in.Scenario.YieldFactor(), in.Scenario.PriceFactor(), in.Scenario.CostFactor()
}

// ProjectGroup computes the operation-wide break-even row for one commodity
// group. Pure: the inputs are never mutated and scenario deltas only affect
// this call's output.
func ProjectGroup(in GroupInput) domain.BreakEvenResult {
	yieldFactor, priceFactor, costFactor := in.factors()

	acres := decimal.Zero
	adjustedExpected := decimal.Zero
	baseCost := decimal.Zero
	for _, farm := range in.Farms {
		acres = acres.Add(farm.Acres)
		adjustedExpected = adjustedExpected.Add(farm.Acres.Mul(farm.ProjectedYield.Mul(yieldFactor)))
		if cost, ok := in.CostByFarm[farm.FarmID]; ok {
			baseCost = baseCost.Add(cost.Total)
		}
	}

	marketedBushels := decimal.Zero
	marketedRevenue := decimal.Zero
	for _, lot := range in.Marketed {
		bushels := decimal.NewFromInt(lot.Bushels)
		marketedBushels = marketedBushels.Add(bushels)
		marketedRevenue = marketedRevenue.Add(bushels.Mul(lot.Price))
	}

	return computeRow(rowInput{
		scope:            domain.OperationScope,
		commodity:        in.Commodity,
		cropYear:         in.CropYear,
		acres:            acres,
		adjustedExpected: adjustedExpected,
		marketedBushels:  marketedBushels,
		marketedRevenue:  marketedRevenue,
		adjustedCost:     baseCost.Mul(costFactor),
		cashPrice:        in.Price.CashPrice().Mul(priceFactor),
		priceIsEstimate:  in.Price.IsEstimate,
	})
}

// ProjectEntities re-runs the same computation grouped by legal entity,
// honoring fractional EntitySplit ownership where present. Entities are
// returned in ascending entity-ID order.
func ProjectEntities(in GroupInput) []domain.BreakEvenResult {
	yieldFactor, priceFactor, costFactor := in.factors()

	type entityAgg struct {
		acres            decimal.Decimal
		adjustedExpected decimal.Decimal
		baseCost         decimal.Decimal
		marketedBushels  decimal.Decimal
		marketedRevenue  decimal.Decimal
	}
	byEntity := map[string]*entityAgg{}
	get := func(entityID string) *entityAgg {
		agg, ok := byEntity[entityID]
		if !ok {
			agg = &entityAgg{
				acres:            decimal.Zero,
				adjustedExpected: decimal.Zero,
				baseCost:         decimal.Zero,
				marketedBushels:  decimal.Zero,
				marketedRevenue:  decimal.Zero,
			}
			byEntity[entityID] = agg
		}
		return agg
	}

	// Per-farm entity fractions: the whole farm to its owning entity, or the
	// split percentages when present.
	fractions := func(farm domain.Farm) map[string]decimal.Decimal {
		if len(farm.Splits) == 0 {
			return map[string]decimal.Decimal{farm.EntityID: decimal.NewFromInt(1)}
		}
		out := make(map[string]decimal.Decimal, len(farm.Splits))
		for _, split := range farm.Splits {
			out[split.EntityID] = split.Percentage.Div(hundred)
		}
		return out
	}

	farmFractions := make(map[string]map[string]decimal.Decimal, len(in.Farms))
	for _, farm := range in.Farms {
		fracs := fractions(farm)
		farmFractions[farm.FarmID] = fracs
		for entityID, frac := range fracs {
			agg := get(entityID)
			agg.acres = agg.acres.Add(farm.Acres.Mul(frac))
			agg.adjustedExpected = agg.adjustedExpected.Add(farm.Acres.Mul(farm.ProjectedYield.Mul(yieldFactor)).Mul(frac))
			if cost, ok := in.CostByFarm[farm.FarmID]; ok {
				agg.baseCost = agg.baseCost.Add(cost.Total.Mul(frac))
			}
		}
	}

	for _, lot := range in.Marketed {
		fracs, ok := farmFractions[lot.FarmID]
		if !ok {
			continue
		}
		bushels := decimal.NewFromInt(lot.Bushels)
		for entityID, frac := range fracs {
			agg := get(entityID)
			agg.marketedBushels = agg.marketedBushels.Add(bushels.Mul(frac))
			agg.marketedRevenue = agg.marketedRevenue.Add(bushels.Mul(lot.Price).Mul(frac))
		}
	}

	entityIDs := make([]string, 0, len(byEntity))
	for entityID := range byEntity {
		entityIDs = append(entityIDs, entityID)
	}
	sort.Strings(entityIDs)

	results := make([]domain.BreakEvenResult, 0, len(entityIDs))
	for _, entityID := range entityIDs {
		agg := byEntity[entityID]
		row := computeRow(rowInput{
			scope:            domain.EntityScope,
			entityID:         entityID,
			commodity:        in.Commodity,
			cropYear:         in.CropYear,
			acres:            agg.acres,
			adjustedExpected: agg.adjustedExpected,
			marketedBushels:  agg.marketedBushels,
			marketedRevenue:  agg.marketedRevenue,
			adjustedCost:     agg.baseCost.Mul(costFactor),
			cashPrice:        in.Price.CashPrice().Mul(priceFactor),
			priceIsEstimate:  in.Price.IsEstimate,
		})
		results = append(results, row)
	}
	return results
}

type rowInput struct {
	scope            domain.ProjectionScope
	entityID         string
	commodity        domain.CommodityType
	cropYear         int
	acres            decimal.Decimal
	adjustedExpected decimal.Decimal
	marketedBushels  decimal.Decimal
	marketedRevenue  decimal.Decimal
	adjustedCost     decimal.Decimal
	cashPrice        decimal.Decimal
	priceIsEstimate  bool
}

// computeRow applies the blended-revenue model to one aggregate. Marketed
// bushels exceeding the adjusted expectation clamp the unmarketed side to
// zero; realized contract revenue still counts in full. Every ratio guards its
// denominator and reports zero instead of dividing by zero.
func computeRow(in rowInput) domain.BreakEvenResult {
	unmarketed := in.adjustedExpected.Sub(in.marketedBushels)
	if unmarketed.IsNegative() {
		unmarketed = decimal.Zero
	}

	unmarketedRevenue := unmarketed.Mul(in.cashPrice)
	totalRevenue := in.marketedRevenue.Add(unmarketedRevenue)

	blended := decimal.Zero
	breakEven := decimal.Zero
	if in.adjustedExpected.IsPositive() {
		blended = totalRevenue.Div(in.adjustedExpected)
		breakEven = in.adjustedCost.Div(in.adjustedExpected)
	}

	profit := totalRevenue.Sub(in.adjustedCost)

	profitPerAcre := decimal.Zero
	if in.acres.IsPositive() {
		profitPerAcre = profit.Div(in.acres)
	}
	margin := decimal.Zero
	if !totalRevenue.IsZero() {
		margin = profit.Div(totalRevenue).Mul(hundred)
	}

	return domain.BreakEvenResult{
		Scope:             in.scope,
		EntityID:          in.entityID,
		Commodity:         in.commodity,
		CropYear:          in.cropYear,
		Acres:             in.acres,
		ExpectedBushels:   in.adjustedExpected,
		MarketedBushels:   in.marketedBushels,
		UnmarketedBushels: unmarketed,
		CashPrice:         in.cashPrice,
		MarketedRevenue:   in.marketedRevenue,
		UnmarketedRevenue: unmarketedRevenue,
		TotalRevenue:      totalRevenue,
		TotalCost:         in.adjustedCost,
		BlendedPrice:      blended,
		BreakEvenPrice:    breakEven,
		Profit:            profit,
		ProfitPerAcre:     profitPerAcre,
		MarginPct:         margin,
		PriceIsEstimate:   in.priceIsEstimate,
	}
}
