package usecase

import (
	"context"
	"errors"
	"strings"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/adapter"
	"quote-quiz/internal/domain/ports/repository"
	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ GuessUseCase = (*guessUC)(nil)

type GuessResult struct {
	Correct  bool
	NewScore int
}

// GuessUseCase resolves a submitted author guess against a quote.
// The score/stats/attempt write set commits as one transaction; the reward
// mail and the cooldown mark happen after commit and never undo scoring.
type GuessUseCase interface {
	Resolve(ctx context.Context, userID, quoteID int64, guessedAuthor string) (*GuessResult, error)
}

// TaskRunner dispatches fire-and-forget work (the reward mail) off the
// request path. Satisfied by the worker pool.
type TaskRunner interface {
	Submit(task func(ctx context.Context) error) error
}

type guessUC struct {
	users     repository.UserRepository
	quotes    repository.QuoteRepository
	attempts  repository.AttemptRepository
	rewards   repository.RewardLogRepository
	marks     repository.CooldownStore
	tm        repository.TransactionManager
	mailer    adapter.RewardMailer
	runner    TaskRunner
	threshold int
	log       *zerolog.Logger
}

func NewGuessUseCase(
	users repository.UserRepository,
	quotes repository.QuoteRepository,
	attempts repository.AttemptRepository,
	rewards repository.RewardLogRepository,
	marks repository.CooldownStore,
	tm repository.TransactionManager,
	mailer adapter.RewardMailer,
	runner TaskRunner,
	rewardThreshold int,
	logger *zerolog.Logger,
) *guessUC {
	if rewardThreshold <= 0 {
		rewardThreshold = 10
	}
	return &guessUC{
		users:     users,
		quotes:    quotes,
		attempts:  attempts,
		rewards:   rewards,
		marks:     marks,
		tm:        tm,
		mailer:    mailer,
		runner:    runner,
		threshold: rewardThreshold,
		log:       logger,
	}
}

func (g *guessUC) Resolve(ctx context.Context, userID, quoteID int64, guessedAuthor string) (*GuessResult, error) {
	defer logging.TraceDuration(g.log, "GuessUC.Resolve")()

	if userID <= 0 || quoteID <= 0 || strings.TrimSpace(guessedAuthor) == "" {
		return nil, domain.ErrInvalidArgument
	}

	var (
		res     GuessResult
		user    *model.User
		author  string
		crossed bool
	)
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := g.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		quote, err := g.quotes.FindByID(ctx, tx, quoteID)
		if err != nil {
			return err // domain.ErrNotFound for an unknown quote
		}
		u, err := g.users.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvalidUser
			}
			return err
		}

		prev, err := g.attempts.Find(ctx, tx, userID, quoteID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		// An already-solved quote is not re-creditable. The selector never
		// offers one, but a direct call must not double-count either.
		if prev != nil && prev.Correct {
			return domain.ErrQuoteSolved
		}

		if quote.MatchesAuthor(guessedAuthor) {
			if err := g.quotes.IncrementGuessCounter(ctx, tx, quote.ID, true); err != nil {
				return err
			}
			stat := u.RecordCorrectGuess(quote.Author)
			if err := g.users.Save(ctx, tx, u); err != nil {
				return err
			}
			if err := g.attempts.Upsert(ctx, tx, &model.Attempt{UserID: userID, QuoteID: quoteID, Correct: true}); err != nil {
				return err
			}
			crossed = stat.Count == g.threshold && !stat.RewardSent
			res = GuessResult{Correct: true, NewScore: u.Score}
		} else {
			if err := g.quotes.IncrementGuessCounter(ctx, tx, quote.ID, false); err != nil {
				return err
			}
			if err := g.attempts.Upsert(ctx, tx, &model.Attempt{UserID: userID, QuoteID: quoteID, Correct: false}); err != nil {
				return err
			}
			res = GuessResult{Correct: false}
		}
		user = u
		author = quote.Author
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuoteSolved) {
			metrics.IncGuess("rejected")
		}
		return nil, err
	}

	if res.Correct {
		metrics.IncGuess("correct")
		if crossed {
			g.dispatchReward(user.ID, user.Email, author)
		}
	} else {
		metrics.IncGuess("incorrect")
		// The scoring outcome is committed; a failed mark write only means
		// the user may retry early.
		if err := g.marks.Mark(ctx, userID); err != nil {
			g.log.Warn().Err(err).Int64("user_id", userID).Msg("cooldown mark write failed")
		}
	}
	return &res, nil
}

// dispatchReward sends the discount mail off the request path. The flag and
// the log row are written only after a successful send; a send failure is
// logged and not retried.
func (g *guessUC) dispatchReward(userID int64, email, author string) {
	task := func(ctx context.Context) error {
		if err := g.mailer.SendDiscount(ctx, email, author); err != nil {
			metrics.IncRewardMail("failed")
			g.log.Error().Err(err).Int64("user_id", userID).Str("author", author).Msg("reward mail send failed")
			return nil
		}
		metrics.IncRewardMail("sent")
		if err := g.users.SetRewardSent(ctx, repository.NoTX, userID, author); err != nil {
			g.log.Error().Err(err).Int64("user_id", userID).Str("author", author).Msg("reward flag update failed")
		}
		if err := g.rewards.Save(ctx, repository.NoTX, userID, author); err != nil {
			g.log.Warn().Err(err).Int64("user_id", userID).Str("author", author).Msg("reward log insert failed")
		}
		return nil
	}
	if err := g.runner.Submit(task); err != nil {
		g.log.Error().Err(err).Int64("user_id", userID).Str("author", author).Msg("reward task submit failed")
	}
}
