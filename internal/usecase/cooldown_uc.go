package usecase

import (
	"context"

	"quote-quiz/internal/domain/ports/repository"
	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ CooldownUseCase = (*cooldownUC)(nil)

// Reasons surfaced to callers when a guess is denied.
const (
	ReasonInvalidUser    = "invalid user"
	ReasonCooldownActive = "cooldown active"
	ReasonInternalError  = "internal error"
)

type CooldownResult struct {
	Allowed bool
	Reason  string
}

// CooldownUseCase is the gate consulted before any guess is accepted.
// It only ever reads the mark; the guess resolver writes it.
type CooldownUseCase interface {
	Check(ctx context.Context, userID int64) CooldownResult
}

type cooldownUC struct {
	marks repository.CooldownStore
	log   *zerolog.Logger
}

func NewCooldownUseCase(marks repository.CooldownStore, logger *zerolog.Logger) *cooldownUC {
	return &cooldownUC{marks: marks, log: logger}
}

// Check fails closed: a cache error denies the guess rather than allowing
// unlimited guessing while the cache is down.
func (c *cooldownUC) Check(ctx context.Context, userID int64) CooldownResult {
	defer logging.TraceDuration(c.log, "CooldownUC.Check")()

	if userID <= 0 {
		metrics.IncCooldownCheck("invalid")
		return CooldownResult{Allowed: false, Reason: ReasonInvalidUser}
	}

	active, err := c.marks.IsActive(ctx, userID)
	if err != nil {
		c.log.Error().Err(err).Int64("user_id", userID).Msg("cooldown lookup failed")
		metrics.IncCooldownCheck("error")
		return CooldownResult{Allowed: false, Reason: ReasonInternalError}
	}
	if active {
		metrics.IncCooldownCheck("blocked")
		return CooldownResult{Allowed: false, Reason: ReasonCooldownActive}
	}
	metrics.IncCooldownCheck("allowed")
	return CooldownResult{Allowed: true}
}
