package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"itemsvc/internal/config"
	"itemsvc/pkg/backoff"
	"itemsvc/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxPoolSize    = 100
	_defaultConnAttempts   = 10
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second
	_defaultPingTimeout    = 5 * time.Second
)

// Postgres owns the pool of the item table's database. It is opened once at
// startup and closed on shutdown.
type Postgres struct {
	Builder squirrel.StatementBuilderType
	Pool    *pgxpool.Pool

	retry       backoff.Policy
	maxPoolSize int32
	pingTimeout time.Duration
}

func NewPostgres(
	ctx context.Context,
	cfg *config.Postgres,
	log logger.Logger,
	opts ...Option,
) (*Postgres, error) {
	const op = "storage.postgres.NewPostgres"

	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	dsn := (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     hostPort,
		Path:     cfg.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}).String()

	pg := &Postgres{
		retry: backoff.Policy{
			Attempts:  _defaultConnAttempts,
			BaseDelay: _defaultBaseRetryDelay,
			MaxDelay:  _defaultMaxRetryDelay,
		},
		maxPoolSize: _defaultMaxPoolSize,
		pingTimeout: _defaultPingTimeout,
	}

	for _, opt := range opts {
		opt(pg)
	}
	if err := pg.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	pg.Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse pool config: %w", op, err)
	}
	poolConfig.MaxConns = pg.maxPoolSize

	attempt, err := backoff.Retry(ctx, pg.retry,
		func(ctx context.Context) error {
			pool, connErr := pg.connect(ctx, poolConfig)
			if connErr != nil {
				return connErr
			}
			pg.Pool = pool
			return nil
		},
		func(attempt int, delay time.Duration, err error) {
			log.Infow("PostgreSQL connection attempt failed",
				"operation", op,
				"attempt", attempt,
				"retry_after", delay.String(),
				"error", err,
			)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: connect to %s after %d attempts: %w", op, hostPort, attempt, err)
	}

	log.Infow("PostgreSQL connection established",
		"operation", op,
		"host", hostPort,
		"database", cfg.Name,
		"attempt", attempt,
	)

	return pg, nil
}

// connect opens a pool and pings it; pgxpool itself dials lazily.
func (p *Postgres) connect(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("storage.postgres.Ping: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
