package repository

import "context"

// RewardLogRepository records every discount mail that actually went out.
// The unique (user, author) constraint is a best-effort duplicate guard on
// top of the rewardSent flag, not an exactly-once mechanism.
type RewardLogRepository interface {
	Save(ctx context.Context, tx Tx, userID int64, author string) error
	Exists(ctx context.Context, tx Tx, userID int64, author string) (bool, error)
}
