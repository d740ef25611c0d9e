package finmath_test

import (
	"testing"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/utils/finmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workedExample builds the reference scenario: one corn farm, 100 acres at
// 200 bu/acre (20,000 bu expected), $45,000 total cost, 15,000 bu marketed at
// $4.80, futures $4.85 with -$0.35 basis.
func workedExample() finmath.GroupInput {
	farm := cornFarm("farm-1", "100", "200")
	farm.EntityID = "entity-1"
	return finmath.GroupInput{
		Commodity: domain.Corn,
		CropYear:  2025,
		Farms:     []domain.Farm{farm},
		CostByFarm: map[string]domain.FarmCostTotal{
			"farm-1": {FarmID: "farm-1", CropYear: 2025, Total: dec("45000")},
		},
		Marketed: []finmath.MarketedLot{
			{FarmID: "farm-1", Bushels: 15000, Price: dec("4.80")},
		},
		Price: domain.PriceSnapshot{
			Commodity: domain.Corn,
			CropYear:  2025,
			Futures:   dec("4.85"),
			Basis:     dec("-0.35"),
		},
	}
}

func TestProjectGroup_WorkedExample(t *testing.T) {
	row := finmath.ProjectGroup(workedExample())

	assert.True(t, dec("20000").Equal(row.ExpectedBushels), "expected bushels got %s", row.ExpectedBushels)
	assert.True(t, dec("15000").Equal(row.MarketedBushels))
	assert.True(t, dec("5000").Equal(row.UnmarketedBushels))
	assert.True(t, dec("4.50").Equal(row.CashPrice), "cash price got %s", row.CashPrice)
	assert.True(t, dec("72000").Equal(row.MarketedRevenue))
	assert.True(t, dec("22500").Equal(row.UnmarketedRevenue))
	assert.True(t, dec("94500").Equal(row.TotalRevenue))
	assert.True(t, dec("4.725").Equal(row.BlendedPrice), "blended price got %s", row.BlendedPrice)
	assert.True(t, dec("2.25").Equal(row.BreakEvenPrice), "break-even got %s", row.BreakEvenPrice)
	assert.True(t, dec("49500").Equal(row.Profit))
	assert.True(t, dec("495").Equal(row.ProfitPerAcre))

	margin, _ := row.MarginPct.Float64()
	assert.InDelta(t, 52.38, margin, 0.01)
	assert.False(t, row.PriceIsEstimate)
}

func TestProjectGroup_ZeroExpectedBushels(t *testing.T) {
	in := workedExample()
	in.Farms[0].ProjectedYield = decimal.Zero
	in.Marketed = nil

	row := finmath.ProjectGroup(in)
	assert.True(t, row.BlendedPrice.IsZero(), "blended must not divide by zero")
	assert.True(t, row.BreakEvenPrice.IsZero(), "break-even must not divide by zero")
	assert.True(t, row.TotalRevenue.IsZero())
}

func TestProjectGroup_OversoldClampsUnmarketed(t *testing.T) {
	in := workedExample()
	// 25,000 bu marketed against 20,000 expected: unmarketed clamps to zero
	// and the realized revenue still counts in full.
	in.Marketed = []finmath.MarketedLot{{FarmID: "farm-1", Bushels: 25000, Price: dec("4.80")}}

	row := finmath.ProjectGroup(in)
	assert.True(t, row.UnmarketedBushels.IsZero())
	assert.True(t, dec("120000").Equal(row.MarketedRevenue))
	assert.True(t, dec("120000").Equal(row.TotalRevenue))
}

func TestProjectGroup_ScenarioDeltas(t *testing.T) {
	in := workedExample()
	in.Scenario = &domain.ScenarioDelta{
		YieldPct: dec("10"),  // 200 -> 220 bu/acre
		PricePct: dec("-10"), // cash 4.50 -> 4.05
		CostPct:  dec("20"),  // 45,000 -> 54,000
	}

	row := finmath.ProjectGroup(in)
	assert.True(t, dec("22000").Equal(row.ExpectedBushels), "expected got %s", row.ExpectedBushels)
	assert.True(t, dec("4.05").Equal(row.CashPrice), "cash got %s", row.CashPrice)
	assert.True(t, dec("54000").Equal(row.TotalCost), "cost got %s", row.TotalCost)
	// 7,000 unmarketed * 4.05 + 72,000 marketed
	assert.True(t, dec("100350").Equal(row.TotalRevenue), "revenue got %s", row.TotalRevenue)

	// The marketed side is never repriced by the scenario.
	assert.True(t, dec("72000").Equal(row.MarketedRevenue))
}

func TestProjectGroup_ScenarioDoesNotMutateInputs(t *testing.T) {
	in := workedExample()
	in.Scenario = &domain.ScenarioDelta{YieldPct: dec("25"), PricePct: dec("25"), CostPct: dec("25")}
	perturbed := finmath.ProjectGroup(in)

	in.Scenario = nil
	base := finmath.ProjectGroup(in)

	assert.True(t, dec("20000").Equal(base.ExpectedBushels), "base inputs must be unperturbed")
	assert.True(t, dec("94500").Equal(base.TotalRevenue))
	assert.False(t, perturbed.TotalRevenue.Equal(base.TotalRevenue))
}

func TestProjectEntities_WholeOwnership(t *testing.T) {
	in := workedExample()
	rows := finmath.ProjectEntities(in)
	require.Len(t, rows, 1)

	assert.Equal(t, domain.EntityScope, rows[0].Scope)
	assert.Equal(t, "entity-1", rows[0].EntityID)
	// Single wholly-owned farm: the entity row equals the operation row.
	op := finmath.ProjectGroup(in)
	assert.True(t, op.TotalRevenue.Equal(rows[0].TotalRevenue))
	assert.True(t, op.BreakEvenPrice.Equal(rows[0].BreakEvenPrice))
}

func TestProjectEntities_FractionalSplits(t *testing.T) {
	in := workedExample()
	in.Farms[0].Splits = []domain.EntitySplit{
		{EntityID: "entity-a", Percentage: dec("60")},
		{EntityID: "entity-b", Percentage: dec("40")},
	}

	rows := finmath.ProjectEntities(in)
	require.Len(t, rows, 2)
	assert.Equal(t, "entity-a", rows[0].EntityID)
	assert.Equal(t, "entity-b", rows[1].EntityID)

	assert.True(t, dec("60").Equal(rows[0].Acres))
	assert.True(t, dec("12000").Equal(rows[0].ExpectedBushels))
	assert.True(t, dec("9000").Equal(rows[0].MarketedBushels))
	assert.True(t, dec("27000").Equal(rows[0].TotalCost))
	// 60% of the operation's $94,500 revenue.
	assert.True(t, dec("56700").Equal(rows[0].TotalRevenue), "got %s", rows[0].TotalRevenue)

	// Per-bushel figures are scale invariant: each entity sees the same
	// blended and break-even price as the whole operation.
	op := finmath.ProjectGroup(in)
	for _, row := range rows {
		assert.True(t, op.BlendedPrice.Equal(row.BlendedPrice))
		assert.True(t, op.BreakEvenPrice.Equal(row.BreakEvenPrice))
	}

	// Entity totals reassemble the operation totals.
	assert.True(t, op.TotalRevenue.Equal(rows[0].TotalRevenue.Add(rows[1].TotalRevenue)))
	assert.True(t, op.TotalCost.Equal(rows[0].TotalCost.Add(rows[1].TotalCost)))
}

func TestProjectGroup_EstimatedPriceFlagged(t *testing.T) {
	in := workedExample()
	in.Price.IsEstimate = true
	row := finmath.ProjectGroup(in)
	assert.True(t, row.PriceIsEstimate)
}
