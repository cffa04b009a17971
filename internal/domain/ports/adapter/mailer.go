package adapter

import "context"

// RewardMailer sends the one-time discount mail when a user crosses the
// per-author reward threshold. Failures never roll back scoring.
type RewardMailer interface {
	SendDiscount(ctx context.Context, to, author string) error
}
