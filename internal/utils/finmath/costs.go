package finmath

import (
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregateFarmCosts produces the full cost picture for one farm-year: the six
// direct-cost fields plus the annual interest/principal of every financing
// record gated in by IncludeInBreakeven. Inputs are treated as
// already-validated non-negative amounts; no clamping happens here.
//
// Records that fail annual-cost computation (missing amortization inputs) are
// returned in the error; the caller decides whether to surface or skip them.
func AggregateFarmCosts(farm domain.Farm, direct domain.FarmDirectCost, records []domain.FinancingRecord) (domain.FarmCostTotal, error) {
	total := domain.FarmCostTotal{
		FarmID:        farm.FarmID,
		CropYear:      farm.CropYear,
		Fertilizer:    direct.Fertilizer,
		Chemical:      direct.Chemical,
		Seed:          direct.Seed,
		LandRent:      direct.LandRent,
		Insurance:     direct.Insurance,
		Other:         direct.Other,
		LoanInterest:  decimal.Zero,
		LoanPrincipal: decimal.Zero,
	}

	for _, record := range records {
		if !record.IncludeInBreakeven {
			continue
		}
		cost, err := ComputeAnnualCost(record)
		if err != nil {
			return domain.FarmCostTotal{}, err
		}
		total.LoanInterest = total.LoanInterest.Add(cost.Interest)
		total.LoanPrincipal = total.LoanPrincipal.Add(cost.Principal)
	}

	total.Total = total.Fertilizer.
		Add(total.Chemical).
		Add(total.Seed).
		Add(total.LandRent).
		Add(total.Insurance).
		Add(total.Other).
		Add(total.LoanInterest).
		Add(total.LoanPrincipal)
	return total, nil
}
