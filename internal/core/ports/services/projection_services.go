package services

import (
	"context"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
)

// PriceFeedSvcFacade supplies per-commodity price snapshots. Implementations
// may return a defaulted/estimated snapshot (flagged IsEstimate) when live
// data is unavailable.
type PriceFeedSvcFacade interface {
	GetSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot, userID string) error
}

// ProjectionSvcFacade is the caller-facing query surface of the break-even
// and blended-revenue projector.
type ProjectionSvcFacade interface {
	// Project runs one projection for a crop year. commodity == "" projects
	// every commodity present in the business's farm set. scenario may be nil.
	Project(ctx context.Context, businessID string, cropYear int, commodity domain.CommodityType, scenario *domain.ScenarioDelta) (*domain.Projection, error)
	// ProjectHistory replays Project once per year in [fromYear, toYear],
	// each year against its own cost/allocation/price inputs.
	ProjectHistory(ctx context.Context, businessID string, fromYear, toYear int, commodity domain.CommodityType) ([]domain.Projection, error)
}
