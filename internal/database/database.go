package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of the connection pool used by readiness checks
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolOptions sizes the connection pool
type PoolOptions struct {
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

// NewPool opens a PostgreSQL connection pool and verifies it with a ping
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := opts.MaxConns
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}
	if config.MaxConns < DefaultMinConnections {
		config.MinConns = config.MaxConns
	} else {
		config.MinConns = DefaultMinConnections
	}
	config.MaxConnLifetime = DefaultMaxConnLifetime
	if opts.MaxConnLifetime > 0 {
		config.MaxConnLifetime = opts.MaxConnLifetime
	}
	config.MaxConnIdleTime = DefaultMaxConnIdleTime
	if opts.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgConnected, "max_conns", config.MaxConns)
	return pool, nil
}
