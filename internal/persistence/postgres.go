package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/config"
)

// Postgres wraps access to a pgx connection pool. The pool is an
// implementation detail: callers acquire one connection per logical
// operation and release it when the operation ends.
type Postgres struct {
	Pool           *pgxpool.Pool
	cfg            config.PostgresConfig
}

// NewPostgres establishes a connection pool when DSN is provided.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; skipping database connection")
		return &Postgres{Pool: nil, cfg: cfg}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool, cfg: cfg}, nil
}

// Acquire checks out one connection, waiting at most the configured
// acquisition timeout. Callers must Release the connection on every exit
// path. There is no retry; a timeout surfaces to the caller immediately.
func (p *Postgres) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if p == nil || p.Pool == nil {
		return nil, errors.New("postgres not configured")
	}
	acquireCtx, cancel := context.WithTimeout(ctx, p.cfg.AcquireTimeout())
	defer cancel()
	return p.Pool.Acquire(acquireCtx)
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres not configured")
	}
	return p.Pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
