package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/apperrors"
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	"github.com/jdrittgers/business-app-sub002/internal/models"
	"github.com/jdrittgers/business-app-sub002/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCostRepository struct {
	BaseRepository
}

// newPgxCostRepository creates a new repository for the direct-cost ledger.
func newPgxCostRepository(pool *pgxpool.Pool) portsrepo.CostRepositoryFacade {
	return &PgxCostRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CostRepositoryFacade = (*PgxCostRepository)(nil)

const directCostColumns = `farm_id, crop_year, fertilizer, chemical, seed, land_rent, insurance, other, created_at, created_by, last_updated_at, last_updated_by`

// categoryColumn maps a cost category to its ledger column. Only columns
// from this map ever reach the SQL text.
var categoryColumn = map[domain.CostCategory]string{
	domain.CostFertilizer: "fertilizer",
	domain.CostChemical:   "chemical",
	domain.CostSeed:       "seed",
	domain.CostLandRent:   "land_rent",
	domain.CostInsurance:  "insurance",
	domain.CostOther:      "other",
}

func scanDirectCost(row pgx.CollectableRow) (models.FarmDirectCost, error) {
	var cost models.FarmDirectCost
	err := row.Scan(
		&cost.FarmID,
		&cost.CropYear,
		&cost.Fertilizer,
		&cost.Chemical,
		&cost.Seed,
		&cost.LandRent,
		&cost.Insurance,
		&cost.Other,
		&cost.CreatedAt,
		&cost.CreatedBy,
		&cost.LastUpdatedAt,
		&cost.LastUpdatedBy,
	)
	return cost, err
}

// FindDirectCost retrieves the accumulated cost row for one farm-year.
func (r *PgxCostRepository) FindDirectCost(ctx context.Context, farmID string, cropYear int) (*domain.FarmDirectCost, error) {
	query := `SELECT ` + directCostColumns + ` FROM farm_direct_costs WHERE farm_id = $1 AND crop_year = $2;`
	rows, err := r.Pool.Query(ctx, query, farmID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query direct costs for farm %s: %w", farmID, err)
	}
	modelCost, err := pgx.CollectOneRow(rows, scanDirectCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find direct costs for farm %s: %w", farmID, err)
	}
	domainCost := mapping.ToDomainFarmDirectCost(modelCost)
	return &domainCost, nil
}

// ListDirectCostsByBusiness retrieves all cost rows of a business-year.
func (r *PgxCostRepository) ListDirectCostsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FarmDirectCost, error) {
	query := `
		SELECT ` + directCostColumns + `
		FROM farm_direct_costs
		WHERE crop_year = $2
		  AND farm_id IN (SELECT farm_id FROM farms WHERE business_id = $1)
		ORDER BY farm_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query direct costs: %w", err)
	}
	modelCosts, err := pgx.CollectRows(rows, scanDirectCost)
	if err != nil {
		return nil, fmt.Errorf("failed to scan direct costs: %w", err)
	}
	return mapping.ToDomainFarmDirectCostSlice(modelCosts), nil
}

// AccumulateDirectCost adds amount to one category column, creating the
// farm-year row on first write.
func (r *PgxCostRepository) AccumulateDirectCost(ctx context.Context, farmID string, cropYear int, category domain.CostCategory, amount decimal.Decimal, userID string, now time.Time) error {
	column, ok := categoryColumn[category]
	if !ok {
		return fmt.Errorf("%w: unknown cost category %q", apperrors.ErrValidation, category)
	}

	query := fmt.Sprintf(`
		INSERT INTO farm_direct_costs (farm_id, crop_year, %s, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (farm_id, crop_year) DO UPDATE SET
			%s = farm_direct_costs.%s + EXCLUDED.%s,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`, column, column, column, column)

	if _, err := r.Pool.Exec(ctx, query, farmID, cropYear, amount, now, userID); err != nil {
		return fmt.Errorf("failed to accumulate %s cost for farm %s: %w", category, farmID, err)
	}
	return nil
}
