package sched

import (
	"context"
	"time"

	"quote-quiz/internal/usecase"

	"github.com/rs/zerolog"
)

// SyncWorker keeps the quote catalog fresh: one run immediately at startup,
// then one per interval. Overlap with on-demand syncs is resolved inside the
// sync use case's single-flight, not here.
type SyncWorker struct {
	interval time.Duration
	syncUC   usecase.SyncUseCase
	log      *zerolog.Logger
}

func NewSyncWorker(interval time.Duration, syncUC usecase.SyncUseCase, logger *zerolog.Logger) *SyncWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	compLog := logger.With().Str("component", "SyncWorker").Logger()
	return &SyncWorker{
		interval: interval,
		syncUC:   syncUC,
		log:      &compLog,
	}
}

func (w *SyncWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting catalog sync worker")
	// Run once on startup, then on every tick
	w.runSync(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping catalog sync worker")
			return ctx.Err()
		case <-ticker.C:
			w.runSync(ctx)
		}
	}
}

func (w *SyncWorker) runSync(ctx context.Context) {
	res := w.syncUC.SyncNow(ctx)
	if res.Processed > 0 {
		w.log.Info().Int("processed", res.Processed).Int("created", res.Created).Msg("scheduled catalog sync done")
	}
}
