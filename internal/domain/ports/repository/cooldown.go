package repository

import "context"

// CooldownStore is the ephemeral per-user guess limiter backing store.
// Keys expire on their own; losing one early only allows an early retry.
type CooldownStore interface {
	// IsActive reports whether a cooldown mark exists for the user.
	IsActive(ctx context.Context, userID int64) (bool, error)
	// Mark writes the cooldown mark with the configured TTL.
	Mark(ctx context.Context, userID int64) error
}
