package repository

import (
	"context"

	"quote-quiz/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	// Returns domain.ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	// Save persists score and per-author stats of an existing user.
	Save(ctx context.Context, tx Tx, u *model.User) error
	// SetRewardSent flips the rewardSent flag for one author in place.
	SetRewardSent(ctx context.Context, tx Tx, userID int64, author string) error
	TopByScore(ctx context.Context, tx Tx, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
}
