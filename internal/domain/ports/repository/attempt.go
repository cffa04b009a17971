package repository

import (
	"context"

	"quote-quiz/internal/domain/model"
)

// -----------------------------
// Attempts
// -----------------------------

type AttemptRepository interface {
	// Find returns the attempt for (user, quote) or domain.ErrNotFound.
	Find(ctx context.Context, tx Tx, userID, quoteID int64) (*model.Attempt, error)
	// Upsert creates or overwrites the single attempt row per (user, quote).
	Upsert(ctx context.Context, tx Tx, a *model.Attempt) error
}
