package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/config"
	"github.com/osse101/KubeRPG_Go/internal/database"
	"github.com/osse101/KubeRPG_Go/internal/database/postgres"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// reset wipes every account. With -recreate it drops and recreates the whole
// database first, then reapplies migrations.
func main() {
	recreate := flag.Bool("recreate", false, "drop and recreate the database before migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		log.Fatalf("reset needs STORAGE_DRIVER=%s, got %q", config.StoragePostgres, cfg.StorageDriver)
	}

	ctx := context.Background()

	if *recreate {
		if err := recreateDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to recreate database: %v", err)
		}
	}

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.GetDBConnString(), cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	accounts := account.NewService(postgres.NewAccountRepository(pool), event.NewMemoryBus(),
		config.DefaultGameConfig().Stats, utils.GlobalRandom(), account.DefaultCacheConfig())

	removed, err := accounts.Reset(ctx)
	if err != nil {
		log.Fatalf("Failed to reset accounts: %v", err)
	}
	log.Printf("✅ Reset complete, %d account(s) removed\n", removed)
}

// recreateDatabase works through the server's maintenance database since the
// target cannot be dropped while connected to it
func recreateDatabase(ctx context.Context, cfg *config.Config) error {
	serverPool, err := database.NewPool(ctx, database.DefaultPoolConfig(
		fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort), 1))
	if err != nil {
		return err
	}
	defer serverPool.Close()

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	log.Printf("Terminating existing connections to %s...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx,
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()`,
		cfg.DBName); err != nil {
		log.Printf("Warning: failed to terminate connections: %v\n", err)
	}

	if _, err := serverPool.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	if _, err := serverPool.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	log.Printf("Database %s recreated\n", cfg.DBName)
	return nil
}
