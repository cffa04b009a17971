// File: cmd/seed/main.go
// One-shot catalog load, useful before first boot or in CI fixtures.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quote-quiz/internal/config"
	fd "quote-quiz/internal/infra/adapters/feed"
	pg "quote-quiz/internal/infra/db/postgres"
	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	quoteRepo := pg.NewPostgresQuoteRepo(pool)
	feedClient := fd.NewClient(cfg.Feed.URL, cfg.Feed.Timeout, logger)
	syncUC := usecase.NewSyncUseCase(quoteRepo, feedClient, cfg.Sync.BatchSize, cfg.Sync.BatchPause, logger)

	res := syncUC.SyncNow(ctx)
	logger.Info().Int("processed", res.Processed).Int("created", res.Created).Msg("seed sync finished")
}
