// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quote-quiz/internal/config"
	fd "quote-quiz/internal/infra/adapters/feed"
	"quote-quiz/internal/infra/adapters/mail"
	pg "quote-quiz/internal/infra/db/postgres"
	"quote-quiz/internal/infra/logging"
	"quote-quiz/internal/infra/metrics"
	red "quote-quiz/internal/infra/redis"
	"quote-quiz/internal/infra/sched"
	"quote-quiz/internal/infra/security"
	"quote-quiz/internal/infra/web"
	"quote-quiz/internal/infra/worker"
	"quote-quiz/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	cooldownStore := red.NewCooldownStore(redisClient, cfg.Redis.CooldownTTL)

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	quoteRepo := pg.NewPostgresQuoteRepo(pool)
	attemptRepo := pg.NewPostgresAttemptRepo(pool)
	rewardLogRepo := pg.NewRewardLogRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	feedClient := fd.NewClient(cfg.Feed.URL, cfg.Feed.Timeout, logger)
	mailer := mail.NewMailer(cfg.Mail, logger)
	hasher := security.NewBcryptHasher(10)

	// ---- Background workers ----
	workerPool := worker.NewPool(4, logger)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	// ---- Use cases ----
	syncUC := usecase.NewSyncUseCase(quoteRepo, feedClient, cfg.Sync.BatchSize, cfg.Sync.BatchPause, logger)
	selectorUC := usecase.NewSelectorUseCase(quoteRepo, syncUC, cfg.Game.SelectorBatchSize, logger)
	cooldownUC := usecase.NewCooldownUseCase(cooldownStore, logger)
	guessUC := usecase.NewGuessUseCase(userRepo, quoteRepo, attemptRepo, rewardLogRepo, cooldownStore, tm, mailer, workerPool, cfg.Game.RewardThreshold, logger)
	userUC := usecase.NewUserUseCase(userRepo, tm, hasher, logger)

	// ---- Catalog sync worker (immediate run + interval) ----
	syncWorker := sched.NewSyncWorker(cfg.Sync.Interval, syncUC, logger)
	go func() { _ = syncWorker.Run(ctx) }()

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := web.NewServer(userUC, selectorUC, guessUC, cooldownUC, auth, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	cancel()
}
