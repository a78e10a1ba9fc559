package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/case-service/internal/domain"
)

// CaseUpdateRepository reads the append-only progress log. Entries are only
// ever written through CaseRepository.UpdateStatusWithLog.
type CaseUpdateRepository interface {
	ListByCase(ctx context.Context, caseID string) ([]domain.CaseUpdate, error)
}

type caseUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewCaseUpdateRepository builds repository.
func NewCaseUpdateRepository(pool *pgxpool.Pool) CaseUpdateRepository {
	return &caseUpdateRepository{pool: pool}
}

func (r *caseUpdateRepository) ListByCase(ctx context.Context, caseID string) ([]domain.CaseUpdate, error) {
	const query = `
        SELECT id, case_id, status, note, location, update_time, created_at
        FROM case_updates WHERE case_id=$1 ORDER BY update_time ASC`
	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseUpdate
	for rows.Next() {
		var update domain.CaseUpdate
		if err := rows.Scan(
			&update.ID,
			&update.CaseID,
			&update.Status,
			&update.Note,
			&update.Location,
			&update.UpdateTime,
			&update.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, update)
	}
	return result, rows.Err()
}
