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

type PgxGrainContractRepository struct {
	BaseRepository
}

// newPgxGrainContractRepository creates a new repository for grain contracts
// and their allocations.
func newPgxGrainContractRepository(pool *pgxpool.Pool) portsrepo.GrainContractRepositoryFacade {
	return &PgxGrainContractRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.GrainContractRepositoryFacade = (*PgxGrainContractRepository)(nil)

const contractColumns = `contract_id, business_id, name, commodity, crop_year, total_bushels, pricing, cash_price, created_at, created_by, last_updated_at, last_updated_by`

const allocationColumns = `contract_id, farm_id, allocated_bushels, share, created_at, created_by, last_updated_at, last_updated_by`

func scanContract(row pgx.CollectableRow) (models.GrainContract, error) {
	var contract models.GrainContract
	err := row.Scan(
		&contract.ContractID,
		&contract.BusinessID,
		&contract.Name,
		&contract.Commodity,
		&contract.CropYear,
		&contract.TotalBushels,
		&contract.Pricing,
		&contract.CashPrice,
		&contract.CreatedAt,
		&contract.CreatedBy,
		&contract.LastUpdatedAt,
		&contract.LastUpdatedBy,
	)
	return contract, err
}

func scanAllocation(row pgx.CollectableRow) (models.FarmContractAllocation, error) {
	var alloc models.FarmContractAllocation
	err := row.Scan(
		&alloc.ContractID,
		&alloc.FarmID,
		&alloc.AllocatedBushels,
		&alloc.Share,
		&alloc.CreatedAt,
		&alloc.CreatedBy,
		&alloc.LastUpdatedAt,
		&alloc.LastUpdatedBy,
	)
	return alloc, err
}

// SaveContract inserts a new grain contract.
func (r *PgxGrainContractRepository) SaveContract(ctx context.Context, contract domain.GrainContract) error {
	modelContract := mapping.ToModelGrainContract(contract)
	query := `
		INSERT INTO grain_contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelContract.ContractID,
		modelContract.BusinessID,
		modelContract.Name,
		modelContract.Commodity,
		modelContract.CropYear,
		modelContract.TotalBushels,
		modelContract.Pricing,
		modelContract.CashPrice,
		modelContract.CreatedAt,
		modelContract.CreatedBy,
		modelContract.LastUpdatedAt,
		modelContract.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save grain contract %s: %w", modelContract.ContractID, err)
	}
	return nil
}

// FindContractByID retrieves a grain contract by ID.
func (r *PgxGrainContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.GrainContract, error) {
	query := `SELECT ` + contractColumns + ` FROM grain_contracts WHERE contract_id = $1;`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grain contract %s: %w", contractID, err)
	}
	modelContract, err := pgx.CollectOneRow(rows, scanContract)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find grain contract %s: %w", contractID, err)
	}
	domainContract := mapping.ToDomainGrainContract(modelContract)
	return &domainContract, nil
}

// ListContractsByBusiness retrieves all contracts of a business-year.
func (r *PgxGrainContractRepository) ListContractsByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.GrainContract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM grain_contracts
		WHERE business_id = $1 AND crop_year = $2
		ORDER BY contract_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query grain contracts: %w", err)
	}
	modelContracts, err := pgx.CollectRows(rows, scanContract)
	if err != nil {
		return nil, fmt.Errorf("failed to scan grain contracts: %w", err)
	}
	return mapping.ToDomainGrainContractSlice(modelContracts), nil
}

// UpdateContract updates a contract's editable fields.
func (r *PgxGrainContractRepository) UpdateContract(ctx context.Context, contract domain.GrainContract) error {
	modelContract := mapping.ToModelGrainContract(contract)
	query := `
		UPDATE grain_contracts
		SET name = $2, cash_price = $3, last_updated_at = $4, last_updated_by = $5
		WHERE contract_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelContract.ContractID,
		modelContract.Name,
		modelContract.CashPrice,
		modelContract.LastUpdatedAt,
		modelContract.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update grain contract %s: %w", modelContract.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteContract removes a contract; its allocations cascade.
func (r *PgxGrainContractRepository) DeleteContract(ctx context.Context, contractID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM grain_contracts WHERE contract_id = $1;`, contractID)
	if err != nil {
		return fmt.Errorf("failed to delete grain contract %s: %w", contractID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListAllocations retrieves the allocations of one contract.
func (r *PgxGrainContractRepository) ListAllocations(ctx context.Context, contractID string) ([]domain.FarmContractAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM farm_contract_allocations
		WHERE contract_id = $1
		ORDER BY farm_id;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for contract %s: %w", contractID, err)
	}
	modelAllocs, err := pgx.CollectRows(rows, scanAllocation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations: %w", err)
	}
	return mapping.ToDomainFarmContractAllocationSlice(modelAllocs), nil
}

// ListAllocationsForContracts retrieves the allocations of several contracts
// keyed by contract ID.
func (r *PgxGrainContractRepository) ListAllocationsForContracts(ctx context.Context, contractIDs []string) (map[string][]domain.FarmContractAllocation, error) {
	out := make(map[string][]domain.FarmContractAllocation, len(contractIDs))
	if len(contractIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + allocationColumns + `
		FROM farm_contract_allocations
		WHERE contract_id = ANY($1)
		ORDER BY contract_id, farm_id;
	`
	rows, err := r.Pool.Query(ctx, query, contractIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	modelAllocs, err := pgx.CollectRows(rows, scanAllocation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations: %w", err)
	}
	for _, modelAlloc := range modelAllocs {
		out[modelAlloc.ContractID] = append(out[modelAlloc.ContractID], mapping.ToDomainFarmContractAllocation(modelAlloc))
	}
	return out, nil
}

// ReplaceAllocations swaps the full allocation set of one contract inside a
// single transaction.
func (r *PgxGrainContractRepository) ReplaceAllocations(ctx context.Context, contractID string, allocations []domain.FarmContractAllocation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM farm_contract_allocations WHERE contract_id = $1;`, contractID); err != nil {
		return fmt.Errorf("failed to clear allocations for contract %s: %w", contractID, err)
	}

	for _, alloc := range allocations {
		modelAlloc := mapping.ToModelFarmContractAllocation(alloc)
		_, err := tx.Exec(ctx, `
			INSERT INTO farm_contract_allocations (`+allocationColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`,
			contractID,
			modelAlloc.FarmID,
			modelAlloc.AllocatedBushels,
			modelAlloc.Share,
			modelAlloc.CreatedAt,
			modelAlloc.CreatedBy,
			modelAlloc.LastUpdatedAt,
			modelAlloc.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert allocation for farm %s: %w", modelAlloc.FarmID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteAllocation removes one farm's allocation row.
func (r *PgxGrainContractRepository) DeleteAllocation(ctx context.Context, contractID string, farmID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM farm_contract_allocations WHERE contract_id = $1 AND farm_id = $2;
	`, contractID, farmID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation for farm %s: %w", farmID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
