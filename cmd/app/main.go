package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/KubeRPG_Go/docs"
	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/config"
	"github.com/osse101/KubeRPG_Go/internal/database"
	"github.com/osse101/KubeRPG_Go/internal/database/memory"
	"github.com/osse101/KubeRPG_Go/internal/database/postgres"
	"github.com/osse101/KubeRPG_Go/internal/dungeon"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/handler"
	"github.com/osse101/KubeRPG_Go/internal/metrics"
	"github.com/osse101/KubeRPG_Go/internal/notify"
	"github.com/osse101/KubeRPG_Go/internal/repository"
	"github.com/osse101/KubeRPG_Go/internal/scheduler"
	"github.com/osse101/KubeRPG_Go/internal/server"
	"github.com/osse101/KubeRPG_Go/internal/sse"
	"github.com/osse101/KubeRPG_Go/internal/utils"
	"github.com/osse101/KubeRPG_Go/internal/village"
	"github.com/osse101/KubeRPG_Go/internal/worker"
)

const (
	workerQueueSize  = 16
	shutdownTimeout  = 10 * time.Second
	migrationTimeout = 30 * time.Second
)

// @title KubeRPG API
// @version 1.0
// @description Village, party and dungeon engine for a cooperative pixel RPG.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	game, err := config.LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return err
	}

	docs.SwaggerInfo.Version = cfg.Version

	repo, storage, closeStorage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, event.RetryMaxAttempts, event.RetryInitialDelaySeconds*time.Second, cfg.DeadLetterPath)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return fmt.Errorf("failed to register event metrics: %w", err)
	}

	accounts := account.NewService(repo, bus, game.Stats, utils.GlobalRandom(),
		account.CacheConfig{Size: cfg.AccountCacheSize, TTL: cfg.AccountCacheTTL})

	// the village returns survivors to staging, but is built after the
	// dungeon it starts runs on
	staging := &stagingAdapter{}
	dungeons := dungeon.NewService(game.DungeonConfig(), accounts, bus, publisher, staging, nil)
	session := village.NewSession(accounts, dungeons, utils.GlobalRandom())
	staging.session = session
	dispatcher := village.NewDispatcher(session)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	notifier, err := notify.NewWebhookNotifier(cfg.WebhookID, cfg.WebhookToken)
	if err != nil {
		return err
	}
	if notifier != nil {
		notifier.Subscribe(context.Background(), publisher)
	}

	pool := worker.NewPool(cfg.WorkerCount, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.AutoAdvance() {
		sched.Schedule(cfg.RoundDelay, worker.NewAdvanceJob(dungeons, 0))
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storage,
		accounts, dispatcher, dungeons, hub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	errs = append(errs, srv.Stop(ctx))
	sched.Stop()
	pool.Stop()
	errs = append(errs, dungeons.Shutdown(ctx))
	errs = append(errs, publisher.Shutdown(ctx))
	hub.Stop()

	return errors.Join(errs...)
}

// openStorage picks the account repository. The returned pinger is nil for
// memory storage, which is always ready.
func openStorage(cfg *config.Config) (repository.Account, handler.Pinger, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		return memory.NewAccountRepository(), nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.GetDBConnString(), cfg.DBMaxConns))
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return postgres.NewAccountRepository(pool), pool, pool.Close, nil
}

// stagingAdapter forwards survivors to the village session once it exists
type stagingAdapter struct {
	session *village.Session
}

func (a *stagingAdapter) ReturnToStaging(ctx context.Context, pseudonyms []string, hp map[string]int) {
	if a.session != nil {
		a.session.ReturnToStaging(ctx, pseudonyms, hp)
	}
}
