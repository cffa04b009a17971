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

var _ repository.QuoteRepository = (*PostgresQuoteRepo)(nil)

type PostgresQuoteRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresQuoteRepo(pool *pgxpool.Pool) *PostgresQuoteRepo {
	return &PostgresQuoteRepo{pool: pool}
}

func (r *PostgresQuoteRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Quote, error) {
	const q = `
SELECT id, content, author, guessed_correct, guessed_false, created_at, updated_at
  FROM quotes WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanQuote(row)
}

// Upsert inserts or refreshes a quote by its external id. The RETURNING
// expression reports "created" when the row's creation timestamp is within
// one second of now, which distinguishes a fresh insert from a refresh.
func (r *PostgresQuoteRepo) Upsert(ctx context.Context, tx repository.Tx, q *model.Quote) (bool, error) {
	const stmt = `
INSERT INTO quotes (id, content, author)
VALUES ($1,$2,$3)
ON CONFLICT (id) DO UPDATE SET
  content=EXCLUDED.content, author=EXCLUDED.author, updated_at=now()
RETURNING (now() - created_at) < interval '1 second';`
	row, err := pickRow(ctx, r.pool, tx, stmt, q.ID, q.Content, q.Author)
	if err != nil {
		return false, err
	}
	var created bool
	if err := row.Scan(&created); err != nil {
		return false, fmt.Errorf("upsert quote: %w", err)
	}
	return created, nil
}

const candidateSelect = `
SELECT q.id, q.content, q.author, q.guessed_correct, q.guessed_false, q.created_at, q.updated_at
  FROM quotes q
  LEFT JOIN attempts a ON a.quote_id = q.id AND a.user_id = $1
 WHERE a.user_id IS NULL OR a.correct = false
`

func (r *PostgresQuoteRepo) FindCandidates(ctx context.Context, tx repository.Tx, userID int64, priority model.QuotePriority, limit int) ([]*model.Quote, error) {
	q := candidateSelect + ` ORDER BY q.guessed_false DESC, q.id ASC LIMIT $2;`
	if priority == model.PriorityCorrect {
		q = candidateSelect + ` ORDER BY q.guessed_correct DESC, q.id ASC LIMIT $2;`
	}
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuotes(rows)
}

func (r *PostgresQuoteRepo) FindByAuthor(ctx context.Context, tx repository.Tx, author string, excludeID int64) ([]*model.Quote, error) {
	const q = `
SELECT id, content, author, guessed_correct, guessed_false, created_at, updated_at
  FROM quotes
 WHERE lower(author) = lower($1) AND id <> $2
 ORDER BY id ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, author, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuotes(rows)
}

func (r *PostgresQuoteRepo) IncrementGuessCounter(ctx context.Context, tx repository.Tx, quoteID int64, correct bool) error {
	q := `UPDATE quotes SET guessed_false = guessed_false + 1 WHERE id=$1;`
	if correct {
		q = `UPDATE quotes SET guessed_correct = guessed_correct + 1 WHERE id=$1;`
	}
	tag, err := execSQL(ctx, r.pool, tx, q, quoteID)
	if err != nil {
		return fmt.Errorf("increment guess counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresQuoteRepo) CountQuotes(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM quotes;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var q model.Quote
	if err := row.Scan(&q.ID, &q.Content, &q.Author, &q.GuessedCorrect, &q.GuessedFalse, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func collectQuotes(rows pgx.Rows) ([]*model.Quote, error) {
	var out []*model.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
