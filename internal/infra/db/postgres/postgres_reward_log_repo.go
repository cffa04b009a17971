package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"quote-quiz/internal/domain/ports/repository"
)

var _ repository.RewardLogRepository = (*rewardLogRepo)(nil)

type rewardLogRepo struct {
	pool *pgxpool.Pool
}

func NewRewardLogRepo(pool *pgxpool.Pool) repository.RewardLogRepository {
	return &rewardLogRepo{pool: pool}
}

func (r *rewardLogRepo) Save(ctx context.Context, tx repository.Tx, userID int64, author string) error {
	const q = `
INSERT INTO reward_emails (id, user_id, author)
VALUES ($1, $2, $3);`
	// The UNIQUE constraint on (user_id, author) handles duplicate
	// prevention; a conflict here is not an error worth surfacing.
	_, err := execSQL(ctx, r.pool, tx, q, ulid.Make().String(), userID, author)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil
	}
	return err
}

func (r *rewardLogRepo) Exists(ctx context.Context, tx repository.Tx, userID int64, author string) (bool, error) {
	const q = `
SELECT EXISTS(
    SELECT 1 FROM reward_emails WHERE user_id = $1 AND author = $2
);`
	row, err := pickRow(ctx, r.pool, tx, q, userID, author)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
