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

type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for legal-entity data.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

const entityColumns = `entity_id, business_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanEntity(row pgx.CollectableRow) (models.LegalEntity, error) {
	var entity models.LegalEntity
	err := row.Scan(
		&entity.EntityID,
		&entity.BusinessID,
		&entity.Name,
		&entity.CreatedAt,
		&entity.CreatedBy,
		&entity.LastUpdatedAt,
		&entity.LastUpdatedBy,
	)
	return entity, err
}

// SaveEntity inserts a new legal entity.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.LegalEntity) error {
	modelEntity := mapping.ToModelLegalEntity(entity)
	query := `
		INSERT INTO legal_entities (` + entityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntity.EntityID,
		modelEntity.BusinessID,
		modelEntity.Name,
		modelEntity.CreatedAt,
		modelEntity.CreatedBy,
		modelEntity.LastUpdatedAt,
		modelEntity.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save legal entity %s: %w", modelEntity.EntityID, err)
	}
	return nil
}

// FindEntityByID retrieves a legal entity by ID.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.LegalEntity, error) {
	query := `SELECT ` + entityColumns + ` FROM legal_entities WHERE entity_id = $1;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal entity %s: %w", entityID, err)
	}
	modelEntity, err := pgx.CollectOneRow(rows, scanEntity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find legal entity %s: %w", entityID, err)
	}
	domainEntity := mapping.ToDomainLegalEntity(modelEntity)
	return &domainEntity, nil
}

// ListEntitiesByBusiness retrieves all legal entities of a business.
func (r *PgxEntityRepository) ListEntitiesByBusiness(ctx context.Context, businessID string) ([]domain.LegalEntity, error) {
	query := `
		SELECT ` + entityColumns + `
		FROM legal_entities
		WHERE business_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal entities: %w", err)
	}
	modelEntities, err := pgx.CollectRows(rows, scanEntity)
	if err != nil {
		return nil, fmt.Errorf("failed to scan legal entities: %w", err)
	}
	return mapping.ToDomainLegalEntitySlice(modelEntities), nil
}

// UpdateEntity updates a legal entity's name.
func (r *PgxEntityRepository) UpdateEntity(ctx context.Context, entity domain.LegalEntity) error {
	modelEntity := mapping.ToModelLegalEntity(entity)
	query := `
		UPDATE legal_entities
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entity_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelEntity.EntityID,
		modelEntity.Name,
		modelEntity.LastUpdatedAt,
		modelEntity.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update legal entity %s: %w", modelEntity.EntityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
