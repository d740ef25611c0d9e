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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFarmRepository struct {
	BaseRepository
}

// newPgxFarmRepository creates a new repository for farm data.
func newPgxFarmRepository(pool *pgxpool.Pool) portsrepo.FarmRepositoryFacade {
	return &PgxFarmRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FarmRepositoryFacade = (*PgxFarmRepository)(nil)

const farmColumns = `farm_id, business_id, entity_id, name, commodity, crop_year, acres, projected_yield, created_at, created_by, last_updated_at, last_updated_by`

func scanFarm(row pgx.CollectableRow) (models.Farm, error) {
	var farm models.Farm
	err := row.Scan(
		&farm.FarmID,
		&farm.BusinessID,
		&farm.EntityID,
		&farm.Name,
		&farm.Commodity,
		&farm.CropYear,
		&farm.Acres,
		&farm.ProjectedYield,
		&farm.CreatedAt,
		&farm.CreatedBy,
		&farm.LastUpdatedAt,
		&farm.LastUpdatedBy,
	)
	return farm, err
}

// SaveFarm inserts a new farm and its split rows in one transaction.
func (r *PgxFarmRepository) SaveFarm(ctx context.Context, farm domain.Farm) error {
	modelFarm := mapping.ToModelFarm(farm)
	splits := mapping.ToModelEntitySplitSlice(farm.FarmID, farm.Splits)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO farms (` + farmColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelFarm.FarmID,
		modelFarm.BusinessID,
		modelFarm.EntityID,
		modelFarm.Name,
		modelFarm.Commodity,
		modelFarm.CropYear,
		modelFarm.Acres,
		modelFarm.ProjectedYield,
		modelFarm.CreatedAt,
		modelFarm.CreatedBy,
		modelFarm.LastUpdatedAt,
		modelFarm.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save farm %s: %w", modelFarm.FarmID, err)
	}

	if err := insertSplits(ctx, tx, splits); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertSplits(ctx context.Context, tx pgx.Tx, splits []models.EntitySplit) error {
	for _, split := range splits {
		_, err := tx.Exec(ctx, `
			INSERT INTO farm_entity_splits (farm_id, entity_id, percentage)
			VALUES ($1, $2, $3);
		`, split.FarmID, split.EntityID, split.Percentage)
		if err != nil {
			return fmt.Errorf("failed to insert entity split for farm %s: %w", split.FarmID, err)
		}
	}
	return nil
}

func (r *PgxFarmRepository) loadSplits(ctx context.Context, farmIDs []string) (map[string][]models.EntitySplit, error) {
	if len(farmIDs) == 0 {
		return map[string][]models.EntitySplit{}, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT farm_id, entity_id, percentage
		FROM farm_entity_splits
		WHERE farm_id = ANY($1)
		ORDER BY farm_id, entity_id;
	`, farmIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity splits: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.EntitySplit)
	for rows.Next() {
		var split models.EntitySplit
		if err := rows.Scan(&split.FarmID, &split.EntityID, &split.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan entity split: %w", err)
		}
		out[split.FarmID] = append(out[split.FarmID], split)
	}
	return out, rows.Err()
}

// FindFarmByID retrieves a farm with its entity splits.
func (r *PgxFarmRepository) FindFarmByID(ctx context.Context, farmID string) (*domain.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE farm_id = $1;`

	rows, err := r.Pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query farm %s: %w", farmID, err)
	}
	modelFarm, err := pgx.CollectOneRow(rows, scanFarm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find farm %s: %w", farmID, err)
	}

	splits, err := r.loadSplits(ctx, []string{farmID})
	if err != nil {
		return nil, err
	}

	domainFarm := mapping.ToDomainFarm(modelFarm, splits[farmID])
	return &domainFarm, nil
}

// ListFarmsByBusiness retrieves all farms of a business for one crop year.
func (r *PgxFarmRepository) ListFarmsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.Farm, error) {
	query := `
		SELECT ` + farmColumns + `
		FROM farms
		WHERE business_id = $1 AND crop_year = $2
		ORDER BY farm_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query farms: %w", err)
	}
	modelFarms, err := pgx.CollectRows(rows, scanFarm)
	if err != nil {
		return nil, fmt.Errorf("failed to scan farms: %w", err)
	}

	farmIDs := make([]string, len(modelFarms))
	for i, farm := range modelFarms {
		farmIDs[i] = farm.FarmID
	}
	splits, err := r.loadSplits(ctx, farmIDs)
	if err != nil {
		return nil, err
	}

	farms := make([]domain.Farm, len(modelFarms))
	for i, modelFarm := range modelFarms {
		farms[i] = mapping.ToDomainFarm(modelFarm, splits[modelFarm.FarmID])
	}
	return farms, nil
}

// UpdateFarm updates the farm row. Splits are replaced through
// ReplaceEntitySplits, not here.
func (r *PgxFarmRepository) UpdateFarm(ctx context.Context, farm domain.Farm) error {
	modelFarm := mapping.ToModelFarm(farm)
	query := `
		UPDATE farms
		SET name = $2, acres = $3, projected_yield = $4, last_updated_at = $5, last_updated_by = $6
		WHERE farm_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelFarm.FarmID,
		modelFarm.Name,
		modelFarm.Acres,
		modelFarm.ProjectedYield,
		modelFarm.LastUpdatedAt,
		modelFarm.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update farm %s: %w", modelFarm.FarmID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceEntitySplits swaps the farm's split set inside one transaction.
func (r *PgxFarmRepository) ReplaceEntitySplits(ctx context.Context, farmID string, splits []domain.EntitySplit, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM farm_entity_splits WHERE farm_id = $1;`, farmID); err != nil {
		return fmt.Errorf("failed to clear entity splits for farm %s: %w", farmID, err)
	}
	if err := insertSplits(ctx, tx, mapping.ToModelEntitySplitSlice(farmID, splits)); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE farms SET last_updated_at = now(), last_updated_by = $2 WHERE farm_id = $1;
	`, farmID, userID)
	if err != nil {
		return fmt.Errorf("failed to touch farm %s: %w", farmID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteFarm removes the farm; splits, direct costs, and allocations cascade
// via foreign keys.
func (r *PgxFarmRepository) DeleteFarm(ctx context.Context, farmID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM farms WHERE farm_id = $1;`, farmID)
	if err != nil {
		return fmt.Errorf("failed to delete farm %s: %w", farmID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
