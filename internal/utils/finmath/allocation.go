package finmath

import (
	"sort"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EligibleFarms filters farms down to those a contract's bushels may be
// allocated to: same commodity and same crop year.
func EligibleFarms(contract domain.GrainContract, farms []domain.Farm) []domain.Farm {
	eligible := make([]domain.Farm, 0, len(farms))
	for _, farm := range farms {
		if farm.Commodity == contract.Commodity && farm.CropYear == contract.CropYear {
			eligible = append(eligible, farm)
		}
	}
	return eligible
}

// IsEligible reports whether one farm may receive bushels from the contract.
func IsEligible(contract domain.GrainContract, farm domain.Farm) bool {
	return farm.Commodity == contract.Commodity && farm.CropYear == contract.CropYear
}

// ProportionalAllocation distributes a contract's total bushels across the
// given farms proportionally to each farm's expected production
// (acres * projected yield), using a largest-remainder correction so the
// allocated bushels sum exactly to the contract total. Farms that are not
// eligible for the contract are ignored. Ties on the fractional remainder are
// broken by ascending farm ID so the result is deterministic.
//
// Returns ErrNoEligibleProduction when no eligible farm has expected
// production greater than zero.
func ProportionalAllocation(contract domain.GrainContract, farms []domain.Farm) ([]domain.AllocationPreview, error) {
	eligible := EligibleFarms(contract, farms)

	totalExpected := decimal.Zero
	for _, farm := range eligible {
		totalExpected = totalExpected.Add(farm.ExpectedBushels())
	}
	if !totalExpected.IsPositive() {
		return nil, apperrors.ErrNoEligibleProduction
	}

	totalBushels := decimal.NewFromInt(contract.TotalBushels)
	previews := make([]domain.AllocationPreview, len(eligible))
	remainders := make([]decimal.Decimal, len(eligible))

	var allocated int64
	for i, farm := range eligible {
		expected := farm.ExpectedBushels()
		share := expected.Div(totalExpected)
		raw := totalBushels.Mul(share)
		base := raw.Floor()
		previews[i] = domain.AllocationPreview{
			FarmID:           farm.FarmID,
			FarmName:         farm.Name,
			ExpectedBushels:  expected,
			Share:            share,
			AllocatedBushels: base.IntPart(),
		}
		remainders[i] = raw.Sub(base)
		allocated += base.IntPart()
	}

	// Largest-remainder (Hamilton) pass: hand the leftover bushels out one at
	// a time to the farms with the largest fractional remainder.
	leftover := contract.TotalBushels - allocated
	if leftover > 0 {
		order := make([]int, len(previews))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			ra, rb := remainders[order[a]], remainders[order[b]]
			if !ra.Equal(rb) {
				return ra.GreaterThan(rb)
			}
			return previews[order[a]].FarmID < previews[order[b]].FarmID
		})
		for i := int64(0); i < leftover; i++ {
			previews[order[i%int64(len(order))]].AllocatedBushels++
		}
	}

	return previews, nil
}

// ValidateManualAllocation checks an explicit per-farm bushel split against a
// contract: every referenced farm must be eligible and the bushels must sum
// exactly to the contract total. Returns a wrapped ErrValidation on any
// violation so no partial write happens.
func ValidateManualAllocation(contract domain.GrainContract, farms []domain.Farm, bushelsByFarm map[string]int64) error {
	eligible := make(map[string]bool, len(farms))
	for _, farm := range EligibleFarms(contract, farms) {
		eligible[farm.FarmID] = true
	}

	var sum int64
	for farmID, bushels := range bushelsByFarm {
		if !eligible[farmID] {
			return apperrors.NewAppError(400, "farm "+farmID+" is not eligible for contract "+contract.ContractID, apperrors.ErrValidation)
		}
		if bushels < 0 {
			return apperrors.NewAppError(400, "allocated bushels must not be negative", apperrors.ErrValidation)
		}
		sum += bushels
	}
	if sum != contract.TotalBushels {
		return apperrors.NewAppError(400, "allocated bushels must sum to the contract total", apperrors.ErrValidation)
	}
	return nil
}

// Share returns allocatedBushels / totalBushels, zero when the contract total
// is zero.
func Share(allocatedBushels, totalBushels int64) decimal.Decimal {
	if totalBushels == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(allocatedBushels).Div(decimal.NewFromInt(totalBushels))
}
