package repository

import (
	"context"

	"quote-quiz/internal/domain/model"
)

// -----------------------------
// Quotes
// -----------------------------

type QuoteRepository interface {
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Quote, error)
	// Upsert inserts or updates a quote keyed by its external id.
	// Reports whether the row was newly created by this call.
	Upsert(ctx context.Context, tx Tx, q *model.Quote) (created bool, err error)
	// FindCandidates returns up to limit quotes the user has not solved yet
	// (no attempt, or an incorrect one), ordered by the given priority.
	FindCandidates(ctx context.Context, tx Tx, userID int64, priority model.QuotePriority, limit int) ([]*model.Quote, error)
	// FindByAuthor returns other quotes by the same author.
	FindByAuthor(ctx context.Context, tx Tx, author string, excludeID int64) ([]*model.Quote, error)
	// IncrementGuessCounter bumps guessed_correct or guessed_false by one.
	IncrementGuessCounter(ctx context.Context, tx Tx, quoteID int64, correct bool) error
	CountQuotes(ctx context.Context, tx Tx) (int, error)
}
