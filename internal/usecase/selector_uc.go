package usecase

import (
	"context"
	"math/rand"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/repository"
	"quote-quiz/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SelectorUseCase = (*selectorUC)(nil)

// SelectorUseCase picks the next quote for a user and answers read-only
// quote queries. Performs no writes.
type SelectorUseCase interface {
	// NextQuote returns a quote the user has not solved yet, or
	// domain.ErrOutOfQuotes when the catalog is exhausted for them even
	// after an on-demand sync.
	NextQuote(ctx context.Context, userID int64, priority model.QuotePriority) (*model.Quote, error)
	// RelatedQuotes returns other quotes by the same author.
	RelatedQuotes(ctx context.Context, quoteID int64) ([]*model.Quote, error)
}

type selectorUC struct {
	quotes    repository.QuoteRepository
	sync      SyncUseCase
	batchSize int
	// randIntn is swappable in tests for a deterministic pick.
	randIntn func(n int) int
	log      *zerolog.Logger
}

func NewSelectorUseCase(quotes repository.QuoteRepository, sync SyncUseCase, batchSize int, logger *zerolog.Logger) *selectorUC {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &selectorUC{
		quotes:    quotes,
		sync:      sync,
		batchSize: batchSize,
		randIntn:  rand.Intn,
		log:       logger,
	}
}

// NextQuote fetches a small batch of top candidates by the requested ordering
// and picks one at random. Always taking the top of the order would make the
// game deterministic; full-random would ignore the difficulty signal.
func (s *selectorUC) NextQuote(ctx context.Context, userID int64, priority model.QuotePriority) (*model.Quote, error) {
	defer logging.TraceDuration(s.log, "SelectorUC.NextQuote")()

	if userID <= 0 {
		return nil, domain.ErrInvalidUser
	}
	if priority != model.PriorityCorrect {
		priority = model.PriorityWrong
	}

	batch, err := s.quotes.FindCandidates(ctx, repository.NoTX, userID, priority, s.batchSize)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		// Catalog may simply not be loaded yet; pull it and retry once.
		res := s.sync.SyncNow(ctx)
		if res.Created > 0 {
			batch, err = s.quotes.FindCandidates(ctx, repository.NoTX, userID, priority, s.batchSize)
			if err != nil {
				return nil, err
			}
		}
		if len(batch) == 0 {
			return nil, domain.ErrOutOfQuotes
		}
	}
	return batch[s.randIntn(len(batch))], nil
}

func (s *selectorUC) RelatedQuotes(ctx context.Context, quoteID int64) ([]*model.Quote, error) {
	defer logging.TraceDuration(s.log, "SelectorUC.RelatedQuotes")()

	q, err := s.quotes.FindByID(ctx, repository.NoTX, quoteID)
	if err != nil {
		return nil, err
	}
	return s.quotes.FindByAuthor(ctx, repository.NoTX, q.Author, q.ID)
}
