package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/case-service/internal/domain"
)

const caseColumns = `id, document_name, delivery_target, given_location, given_to_staff_time,
               note, status, account_id, created_at`

// CaseRepository encapsulates case persistence.
type CaseRepository interface {
	Create(ctx context.Context, kase *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Case, error)
	ListAll(ctx context.Context) ([]domain.Case, error)
	ListByStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error)
	ListExcludingStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error)
	UpdateStatusWithLog(ctx context.Context, kase *domain.Case, update *domain.CaseUpdate) error
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) Create(ctx context.Context, kase *domain.Case) error {
	const query = `
        INSERT INTO cases (document_name, delivery_target, given_location, given_to_staff_time, note, status, account_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		kase.DocumentName,
		kase.DeliveryTarget,
		kase.GivenLocation,
		kase.GivenToStaffTime,
		kase.Note,
		kase.Status,
		kase.AccountID,
	).Scan(&kase.ID, &kase.CreatedAt)
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM cases WHERE id=$1`

	var kase domain.Case
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&kase.ID,
		&kase.DocumentName,
		&kase.DeliveryTarget,
		&kase.GivenLocation,
		&kase.GivenToStaffTime,
		&kase.Note,
		&kase.Status,
		&kase.AccountID,
		&kase.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &kase, nil
}

func (r *caseRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Case, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM cases WHERE account_id=$1 ORDER BY created_at`
	return r.list(ctx, query, accountID)
}

func (r *caseRepository) ListAll(ctx context.Context) ([]domain.Case, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM cases ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *caseRepository) ListByStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM cases WHERE status=$1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

func (r *caseRepository) ListExcludingStatus(ctx context.Context, status domain.CaseStatus) ([]domain.Case, error) {
	const query = `
        SELECT ` + caseColumns + `
        FROM cases WHERE status<>$1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

// UpdateStatusWithLog writes the case status and appends the history entry in
// one transaction; both commit or both roll back.
func (r *caseRepository) UpdateStatusWithLog(ctx context.Context, kase *domain.Case, update *domain.CaseUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const updateQuery = `UPDATE cases SET status=$1 WHERE id=$2`
	cmd, err := tx.Exec(ctx, updateQuery, kase.Status, kase.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	const insertQuery = `
        INSERT INTO case_updates (case_id, status, note, location, update_time)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertQuery,
		update.CaseID,
		update.Status,
		update.Note,
		update.Location,
		update.UpdateTime,
	).Scan(&update.ID, &update.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *caseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Case, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func scanCases(rows pgx.Rows) ([]domain.Case, error) {
	var result []domain.Case
	for rows.Next() {
		var kase domain.Case
		if err := rows.Scan(
			&kase.ID,
			&kase.DocumentName,
			&kase.DeliveryTarget,
			&kase.GivenLocation,
			&kase.GivenToStaffTime,
			&kase.Note,
			&kase.Status,
			&kase.AccountID,
			&kase.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, kase)
	}
	return result, rows.Err()
}
