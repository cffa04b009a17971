package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/repository"
)

var _ repository.AttemptRepository = (*PostgresAttemptRepo)(nil)

type PostgresAttemptRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAttemptRepo(pool *pgxpool.Pool) *PostgresAttemptRepo {
	return &PostgresAttemptRepo{pool: pool}
}

func (r *PostgresAttemptRepo) Find(ctx context.Context, tx repository.Tx, userID, quoteID int64) (*model.Attempt, error) {
	const q = `
SELECT user_id, quote_id, correct, updated_at
  FROM attempts WHERE user_id=$1 AND quote_id=$2;`
	row, err := pickRow(ctx, r.pool, tx, q, userID, quoteID)
	if err != nil {
		return nil, err
	}
	var a model.Attempt
	if err := row.Scan(&a.UserID, &a.QuoteID, &a.Correct, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Upsert keeps the single-row-per-pair invariant: a new guess overwrites the
// previous outcome instead of appending history.
func (r *PostgresAttemptRepo) Upsert(ctx context.Context, tx repository.Tx, a *model.Attempt) error {
	const q = `
INSERT INTO attempts (user_id, quote_id, correct)
VALUES ($1,$2,$3)
ON CONFLICT (user_id, quote_id) DO UPDATE SET correct=EXCLUDED.correct, updated_at=now();`
	if _, err := execSQL(ctx, r.pool, tx, q, a.UserID, a.QuoteID, a.Correct); err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}
	return nil
}
