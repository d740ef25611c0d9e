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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFinancingRepository struct {
	BaseRepository
}

// newPgxFinancingRepository creates a new repository for financing records.
func newPgxFinancingRepository(pool *pgxpool.Pool) portsrepo.FinancingRepositoryFacade {
	return &PgxFinancingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FinancingRepositoryFacade = (*PgxFinancingRepository)(nil)

const financingColumns = `financing_id, business_id, farm_id, equipment_id, name, type, mode, crop_year,
	annual_payment, principal, interest_rate, term_months, start_date, remaining_balance,
	annual_interest_override, annual_principal_override, include_in_breakeven,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFinancingRecord(row pgx.CollectableRow) (models.FinancingRecord, error) {
	var record models.FinancingRecord
	err := row.Scan(
		&record.FinancingID,
		&record.BusinessID,
		&record.FarmID,
		&record.EquipmentID,
		&record.Name,
		&record.Type,
		&record.Mode,
		&record.CropYear,
		&record.AnnualPayment,
		&record.Principal,
		&record.InterestRate,
		&record.TermMonths,
		&record.StartDate,
		&record.RemainingBalance,
		&record.AnnualInterestOverride,
		&record.AnnualPrincipalOverride,
		&record.IncludeInBreakeven,
		&record.CreatedAt,
		&record.CreatedBy,
		&record.LastUpdatedAt,
		&record.LastUpdatedBy,
	)
	return record, err
}

// SaveFinancingRecord inserts a new financing record.
func (r *PgxFinancingRepository) SaveFinancingRecord(ctx context.Context, record domain.FinancingRecord) error {
	modelRecord := mapping.ToModelFinancingRecord(record)
	query := `
		INSERT INTO financing_records (` + financingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRecord.FinancingID,
		modelRecord.BusinessID,
		modelRecord.FarmID,
		modelRecord.EquipmentID,
		modelRecord.Name,
		modelRecord.Type,
		modelRecord.Mode,
		modelRecord.CropYear,
		modelRecord.AnnualPayment,
		modelRecord.Principal,
		modelRecord.InterestRate,
		modelRecord.TermMonths,
		modelRecord.StartDate,
		modelRecord.RemainingBalance,
		modelRecord.AnnualInterestOverride,
		modelRecord.AnnualPrincipalOverride,
		modelRecord.IncludeInBreakeven,
		modelRecord.CreatedAt,
		modelRecord.CreatedBy,
		modelRecord.LastUpdatedAt,
		modelRecord.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save financing record %s: %w", modelRecord.FinancingID, err)
	}
	return nil
}

// FindFinancingByID retrieves a financing record by ID.
func (r *PgxFinancingRepository) FindFinancingByID(ctx context.Context, financingID string) (*domain.FinancingRecord, error) {
	query := `SELECT ` + financingColumns + ` FROM financing_records WHERE financing_id = $1;`
	rows, err := r.Pool.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financing record %s: %w", financingID, err)
	}
	modelRecord, err := pgx.CollectOneRow(rows, scanFinancingRecord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financing record %s: %w", financingID, err)
	}
	domainRecord := mapping.ToDomainFinancingRecord(modelRecord)
	return &domainRecord, nil
}

// ListFinancingByFarm retrieves the financing records of one farm-year.
func (r *PgxFinancingRepository) ListFinancingByFarm(ctx context.Context, farmID string, cropYear int) ([]domain.FinancingRecord, error) {
	query := `
		SELECT ` + financingColumns + `
		FROM financing_records
		WHERE farm_id = $1 AND crop_year = $2
		ORDER BY financing_id;
	`
	rows, err := r.Pool.Query(ctx, query, farmID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query financing records: %w", err)
	}
	modelRecords, err := pgx.CollectRows(rows, scanFinancingRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to scan financing records: %w", err)
	}
	return mapping.ToDomainFinancingRecordSlice(modelRecords), nil
}

// ListFinancingByBusiness retrieves all financing records of a business-year.
func (r *PgxFinancingRepository) ListFinancingByBusiness(ctx context.Context, businessID string, cropYear int) ([]domain.FinancingRecord, error) {
	query := `
		SELECT ` + financingColumns + `
		FROM financing_records
		WHERE business_id = $1 AND crop_year = $2
		ORDER BY financing_id;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, cropYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query financing records: %w", err)
	}
	modelRecords, err := pgx.CollectRows(rows, scanFinancingRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to scan financing records: %w", err)
	}
	return mapping.ToDomainFinancingRecordSlice(modelRecords), nil
}

// UpdateFinancingRecord updates the editable fields of a financing record.
// remaining_balance is excluded: it only changes through UpdateRemainingBalance.
func (r *PgxFinancingRepository) UpdateFinancingRecord(ctx context.Context, record domain.FinancingRecord) error {
	modelRecord := mapping.ToModelFinancingRecord(record)
	query := `
		UPDATE financing_records
		SET name = $2, annual_payment = $3, annual_interest_override = $4,
			annual_principal_override = $5, include_in_breakeven = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE financing_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRecord.FinancingID,
		modelRecord.Name,
		modelRecord.AnnualPayment,
		modelRecord.AnnualInterestOverride,
		modelRecord.AnnualPrincipalOverride,
		modelRecord.IncludeInBreakeven,
		modelRecord.LastUpdatedAt,
		modelRecord.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update financing record %s: %w", modelRecord.FinancingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFinancingRecord removes a financing record.
func (r *PgxFinancingRepository) DeleteFinancingRecord(ctx context.Context, financingID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM financing_records WHERE financing_id = $1;`, financingID)
	if err != nil {
		return fmt.Errorf("failed to delete financing record %s: %w", financingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRemainingBalance persists a post-payment balance.
func (r *PgxFinancingRepository) UpdateRemainingBalance(ctx context.Context, financingID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE financing_records
		SET remaining_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE financing_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, financingID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update remaining balance for %s: %w", financingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
