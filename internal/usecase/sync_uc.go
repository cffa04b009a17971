package usecase

import (
	"context"
	"time"

	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/adapter"
	"quote-quiz/internal/domain/ports/repository"
	"quote-quiz/internal/infra/metrics"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Compile-time check
var _ SyncUseCase = (*syncUC)(nil)

type SyncResult struct {
	Processed int
	Created   int
}

// SyncUseCase pulls the external catalog into the quote store.
// SyncNow never fails outward: a broken run yields a zero result and the
// next invocation starts fresh. Concurrent callers (periodic worker and the
// selector's empty-candidate fallback) join the same in-flight run and
// receive its result.
type SyncUseCase interface {
	SyncNow(ctx context.Context) SyncResult
}

type syncUC struct {
	quotes     repository.QuoteRepository
	feed       adapter.QuoteFeed
	batchSize  int
	batchPause time.Duration
	sf         singleflight.Group
	log        *zerolog.Logger
}

func NewSyncUseCase(quotes repository.QuoteRepository, feed adapter.QuoteFeed, batchSize int, batchPause time.Duration, logger *zerolog.Logger) *syncUC {
	if batchSize <= 0 {
		batchSize = 50
	}
	compLog := logger.With().Str("component", "SyncUC").Logger()
	return &syncUC{
		quotes:     quotes,
		feed:       feed,
		batchSize:  batchSize,
		batchPause: batchPause,
		log:        &compLog,
	}
}

func (s *syncUC) SyncNow(ctx context.Context) SyncResult {
	// Single flight per process: "start vs. join" is decided inside Do.
	v, _, _ := s.sf.Do("quote-catalog", func() (interface{}, error) {
		return s.run(), nil
	})
	return v.(SyncResult)
}

// run executes one sync body. It deliberately detaches from the caller's
// context: joined callers share this run, so cancelling the initiating
// request must not abort it. The feed client bounds the fetch itself.
func (s *syncUC) run() SyncResult {
	runID := ulid.Make().String()
	log := s.log.With().Str("run_id", runID).Logger()
	start := time.Now()
	ctx := context.Background()

	items, err := s.feed.FetchAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog fetch failed")
		metrics.IncSyncRun("error")
		return SyncResult{}
	}
	log.Debug().Int("count", len(items)).Msg("catalog fetched")

	var res SyncResult
	for i := 0; i < len(items); i += s.batchSize {
		end := i + s.batchSize
		if end > len(items) {
			end = len(items)
		}
		for _, it := range items[i:end] {
			q := &model.Quote{ID: it.ExternalID, Content: it.Text, Author: it.Author}
			created, err := s.quotes.Upsert(ctx, repository.NoTX, q)
			if err != nil {
				// Upserts already applied stay applied; a partial run is
				// safe to redo from scratch on the next invocation.
				log.Error().Err(err).Int64("quote_id", q.ID).Msg("quote upsert failed, aborting run")
				metrics.IncSyncRun("error")
				return SyncResult{}
			}
			res.Processed++
			if created {
				res.Created++
			}
		}
		// Inter-batch pause smooths store load; throughput shaping only.
		if end < len(items) {
			time.Sleep(s.batchPause)
		}
	}

	metrics.IncSyncRun("ok")
	metrics.AddSyncQuotes("processed", res.Processed)
	metrics.AddSyncQuotes("created", res.Created)
	metrics.ObserveSyncDuration(time.Since(start).Seconds())
	log.Info().Int("processed", res.Processed).Int("created", res.Created).
		Dur("took", time.Since(start)).Msg("catalog sync completed")
	return res
}
