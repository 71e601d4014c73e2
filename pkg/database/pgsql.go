package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOption adjusts the pool built by NewPgxPool.
type PoolOption func(*poolSettings)

type poolSettings struct {
	ping     bool
	maxConns int32
}

// WithPing verifies the pool with a round trip before NewPgxPool returns it.
func WithPing(ping bool) PoolOption {
	return func(s *poolSettings) {
		s.ping = ping
	}
}

// WithMaxConns caps the pool size. Values below 1 keep the pgx default.
func WithMaxConns(n int32) PoolOption {
	return func(s *poolSettings) {
		if n > 0 {
			s.maxConns = n
		}
	}
}

// ImportPoolSize sizes the pool so every running import can hold a connection for its batch
// while the read endpoints keep a few for themselves. A zero import limit keeps the pgx default.
func ImportPoolSize(maxConcurrentImports int) int32 {
	const readerConns = 4
	if maxConcurrentImports <= 0 {
		return 0
	}
	return int32(maxConcurrentImports + readerConns)
}

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, options ...PoolOption) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	settings := poolSettings{ping: true}
	for _, opt := range options {
		opt(&settings)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if settings.maxConns > 0 {
		config.MaxConns = settings.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if settings.ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.Info("Successfully connected to PostgreSQL database.", slog.Int("max_conns", int(config.MaxConns)))
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}
