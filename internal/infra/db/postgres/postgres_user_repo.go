package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

const uniqueViolation = "23505"

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Create(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (email, name, password_hash, score, author_stats, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;
`
	stats, err := marshalStats(u.AuthorStats)
	if err != nil {
		return err
	}
	row, err := pickRow(ctx, r.pool, tx, q, u.Email, u.Name, u.PasswordHash, u.Score, stats, u.CreatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	const q = `
SELECT id, email, name, password_hash, score, author_stats, created_at
  FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	const q = `
SELECT id, email, name, password_hash, score, author_stats, created_at
  FROM users WHERE email=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, email)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *PostgresUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `UPDATE users SET score=$2, author_stats=$3 WHERE id=$1;`
	stats, err := marshalStats(u.AuthorStats)
	if err != nil {
		return err
	}
	tag, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Score, stats)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetRewardSent flips one author's rewardSent flag in place, without
// rewriting the whole stats document.
func (r *PostgresUserRepo) SetRewardSent(ctx context.Context, tx repository.Tx, userID int64, author string) error {
	const q = `
UPDATE users
   SET author_stats = jsonb_set(author_stats, ARRAY[$2::text, 'rewardSent'], 'true'::jsonb, true)
 WHERE id=$1 AND author_stats ? $2::text;`
	tag, err := execSQL(ctx, r.pool, tx, q, userID, author)
	if err != nil {
		return fmt.Errorf("set reward sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepo) TopByScore(ctx context.Context, tx repository.Tx, limit int) ([]*model.User, error) {
	const q = `
SELECT id, email, name, password_hash, score, author_stats, created_at
  FROM users ORDER BY score DESC, id ASC LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM users;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u     model.User
		stats []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Score, &stats, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.AuthorStats = make(map[string]model.AuthorStat)
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &u.AuthorStats); err != nil {
			return nil, fmt.Errorf("decode author stats: %w", err)
		}
	}
	return &u, nil
}

func marshalStats(stats map[string]model.AuthorStat) ([]byte, error) {
	if stats == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode author stats: %w", err)
	}
	return b, nil
}
