package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig sizes the connection pool
type PoolConfig struct {
	ConnString  string
	MaxConns    int
	MaxIdle     time.Duration
	MaxLifetime time.Duration
}

// DefaultPoolConfig returns pool settings for connString with the standard
// idle and lifetime limits
func DefaultPoolConfig(connString string, maxConns int) PoolConfig {
	return PoolConfig{
		ConnString:  connString,
		MaxConns:    maxConns,
		MaxIdle:     DefaultMaxConnIdleTime,
		MaxLifetime: DefaultMaxConnLifetime,
	}
}

// NewPool opens a pool and checks the database answers before returning it
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := min(cfg.MaxConns, math.MaxInt32)
	pgCfg.MaxConns = int32(max(maxConns, 1)) //nolint:gosec // clamped above
	pgCfg.MinConns = min(DefaultMinConnections, pgCfg.MaxConns)
	pgCfg.MaxConnIdleTime = cfg.MaxIdle
	pgCfg.MaxConnLifetime = cfg.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		LogFieldMaxConns, pgCfg.MaxConns, LogFieldHost, pgCfg.ConnConfig.Host)
	return pool, nil
}
