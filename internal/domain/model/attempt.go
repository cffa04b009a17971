package model

import "time"

// Attempt is the single durable record of a user's outcome for one quote.
// At most one row exists per (user, quote); a new guess overwrites it.
type Attempt struct {
	UserID    int64
	QuoteID   int64
	Correct   bool
	UpdatedAt time.Time
}
