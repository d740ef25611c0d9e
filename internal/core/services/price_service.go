package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Fallback futures levels used when the price store is unreachable. These are
// coarse long-run estimates; any snapshot built from them is flagged
// IsEstimate so the caller can show provenance.
var defaultFutures = map[domain.CommodityType]decimal.Decimal{
	domain.Corn:     decimal.RequireFromString("4.50"),
	domain.Soybeans: decimal.RequireFromString("10.40"),
	domain.Wheat:    decimal.RequireFromString("5.50"),
}

var defaultBasis = decimal.RequireFromString("-0.30")

// priceFeedService implements the PriceFeedSvcFacade interface over the
// snapshot store.
type priceFeedService struct {
	BaseService
	priceRepo portsrepo.PriceRepositoryFacade
}

// NewPriceFeedService creates a new price-feed service.
func NewPriceFeedService(priceRepo portsrepo.PriceRepositoryFacade) portssvc.PriceFeedSvcFacade {
	return &priceFeedService{priceRepo: priceRepo}
}

var _ portssvc.PriceFeedSvcFacade = (*priceFeedService)(nil)

// GetSnapshot returns the stored snapshot for a commodity and crop year.
// A missing row is ErrMissingPriceData; an infrastructure failure degrades to
// a default estimated snapshot instead of failing the caller.
func (s *priceFeedService) GetSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error) {
	snapshot, err := s.priceRepo.FindSnapshot(ctx, commodity, cropYear)
	if err == nil {
		return snapshot, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %d", apperrors.ErrMissingPriceData, commodity, cropYear)
	}

	futures, ok := defaultFutures[commodity]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", apperrors.ErrMissingPriceData, commodity, cropYear)
	}
	s.LogError(ctx, err, "Price store unavailable; using estimated snapshot",
		slog.String("commodity", string(commodity)), slog.Int("crop_year", cropYear))
	return &domain.PriceSnapshot{
		Commodity:  commodity,
		CropYear:   cropYear,
		Futures:    futures,
		Basis:      defaultBasis,
		IsEstimate: true,
		AsOf:       time.Now(),
	}, nil
}

func (s *priceFeedService) UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot, userID string) error {
	if !snapshot.Commodity.IsValid() {
		return fmt.Errorf("%w: unknown commodity %q", apperrors.ErrValidation, snapshot.Commodity)
	}
	if snapshot.AsOf.IsZero() {
		snapshot.AsOf = time.Now()
	}
	if err := s.priceRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to upsert price snapshot",
			slog.String("commodity", string(snapshot.Commodity)), slog.Int("crop_year", snapshot.CropYear))
		return err
	}
	s.LogInfo(ctx, "Price snapshot upserted",
		slog.String("commodity", string(snapshot.Commodity)),
		slog.Int("crop_year", snapshot.CropYear),
		slog.String("futures", snapshot.Futures.String()),
		slog.String("basis", snapshot.Basis.String()))
	return nil
}
