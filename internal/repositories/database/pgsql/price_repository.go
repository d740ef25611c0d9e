package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	"github.com/jdrittgers/business-app-sub002/internal/models"
	"github.com/jdrittgers/business-app-sub002/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPriceRepository struct {
	BaseRepository
}

// newPgxPriceRepository creates a new repository for price snapshots.
func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

// FindSnapshot retrieves the stored snapshot for one commodity and crop year.
func (r *PgxPriceRepository) FindSnapshot(ctx context.Context, commodity domain.CommodityType, cropYear int) (*domain.PriceSnapshot, error) {
	query := `
		SELECT commodity, crop_year, futures, basis, as_of
		FROM price_snapshots
		WHERE commodity = $1 AND crop_year = $2;
	`
	var modelSnapshot models.PriceSnapshot
	err := r.Pool.QueryRow(ctx, query, string(commodity), cropYear).Scan(
		&modelSnapshot.Commodity,
		&modelSnapshot.CropYear,
		&modelSnapshot.Futures,
		&modelSnapshot.Basis,
		&modelSnapshot.AsOf,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price snapshot %s/%d: %w", commodity, cropYear, err)
	}
	domainSnapshot := mapping.ToDomainPriceSnapshot(modelSnapshot)
	return &domainSnapshot, nil
}

// UpsertSnapshot inserts or replaces the snapshot for one commodity-year.
func (r *PgxPriceRepository) UpsertSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error {
	modelSnapshot := mapping.ToModelPriceSnapshot(snapshot)
	query := `
		INSERT INTO price_snapshots (commodity, crop_year, futures, basis, as_of)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (commodity, crop_year) DO UPDATE SET
			futures = EXCLUDED.futures,
			basis = EXCLUDED.basis,
			as_of = EXCLUDED.as_of;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSnapshot.Commodity,
		modelSnapshot.CropYear,
		modelSnapshot.Futures,
		modelSnapshot.Basis,
		modelSnapshot.AsOf,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price snapshot %s/%d: %w", snapshot.Commodity, snapshot.CropYear, err)
	}
	return nil
}
