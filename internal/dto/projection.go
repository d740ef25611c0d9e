package dto

import (
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectionQueryParams defines query parameters for a break-even projection.
// Scenario deltas are optional percentages bounded to +/-50.
type ProjectionQueryParams struct {
	CropYear  int    `form:"cropYear" binding:"required,cropyear"`
	Commodity string `form:"commodity"` // Optional filter: CORN, SOYBEANS, WHEAT

	YieldPct *decimal.Decimal `form:"yieldPct"`
	PricePct *decimal.Decimal `form:"pricePct"`
	CostPct  *decimal.Decimal `form:"costPct"`
}

// Scenario assembles the optional deltas into a ScenarioDelta, or nil when
// none were supplied.
func (p ProjectionQueryParams) Scenario() *domain.ScenarioDelta {
	if p.YieldPct == nil && p.PricePct == nil && p.CostPct == nil {
		return nil
	}
	scenario := &domain.ScenarioDelta{
		YieldPct: decimal.Zero,
		PricePct: decimal.Zero,
		CostPct:  decimal.Zero,
	}
	if p.YieldPct != nil {
		scenario.YieldPct = *p.YieldPct
	}
	if p.PricePct != nil {
		scenario.PricePct = *p.PricePct
	}
	if p.CostPct != nil {
		scenario.CostPct = *p.CostPct
	}
	return scenario
}

// ProjectionHistoryParams defines query parameters for a multi-year replay.
type ProjectionHistoryParams struct {
	FromYear  int    `form:"fromYear" binding:"required,cropyear"`
	ToYear    int    `form:"toYear" binding:"required,cropyear"`
	Commodity string `form:"commodity"`
}

// ProjectionResponse wraps one projection run.
type ProjectionResponse struct {
	CropYear int                        `json:"cropYear"`
	Results  []domain.BreakEvenResult   `json:"results"`
	Warnings []domain.ProjectionWarning `json:"warnings,omitempty"`
}

// ToProjectionResponse converts a domain.Projection to its DTO.
func ToProjectionResponse(projection domain.Projection) ProjectionResponse {
	return ProjectionResponse{
		CropYear: projection.CropYear,
		Results:  projection.Results,
		Warnings: projection.Warnings,
	}
}

// ProjectionHistoryResponse wraps one independent projection per year.
type ProjectionHistoryResponse struct {
	Years []ProjectionResponse `json:"years"`
}
