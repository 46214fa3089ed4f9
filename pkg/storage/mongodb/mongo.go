package mongodb

import (
	"context"
	"fmt"
	"time"

	"itemsvc/internal/config"
	"itemsvc/pkg/backoff"
	"itemsvc/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	_defaultMaxPoolSize    = 100
	_defaultConnAttempts   = 10
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second
	_defaultConnectTimeout = 10 * time.Second
)

// Mongo owns the client for the lifetime of the process. It is opened once
// at startup and closed on shutdown.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database

	retry          backoff.Policy
	maxPoolSize    uint64
	connectTimeout time.Duration
}

func NewMongo(
	ctx context.Context,
	cfg *config.Mongo,
	log logger.Logger,
	opts ...Option,
) (*Mongo, error) {
	const op = "storage.mongodb.NewMongo"

	m := &Mongo{
		retry: backoff.Policy{
			Attempts:  _defaultConnAttempts,
			BaseDelay: _defaultBaseRetryDelay,
			MaxDelay:  _defaultMaxRetryDelay,
		},
		maxPoolSize:    _defaultMaxPoolSize,
		connectTimeout: _defaultConnectTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(m.maxPoolSize).
		SetConnectTimeout(m.connectTimeout).
		SetServerSelectionTimeout(m.connectTimeout)

	if err := clientOpts.Validate(); err != nil {
		return nil, fmt.Errorf("%s: client options: %w", op, err)
	}

	attempt, err := backoff.Retry(ctx, m.retry,
		func(ctx context.Context) error {
			client, connErr := connect(ctx, clientOpts, m.connectTimeout)
			if connErr != nil {
				return connErr
			}
			m.Client = client
			return nil
		},
		func(attempt int, delay time.Duration, err error) {
			log.Infow("MongoDB connection attempt failed",
				"operation", op,
				"attempt", attempt,
				"retry_after", delay.String(),
				"error", err,
			)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: connect after %d attempts: %w", op, attempt, err)
	}

	m.Database = m.Client.Database(cfg.Database)
	log.Infow("MongoDB connection established",
		"operation", op,
		"database", cfg.Database,
		"attempt", attempt,
	)

	return m, nil
}

// connect dials and pings the primary; mongo.Connect alone does not touch
// the network.
func connect(
	ctx context.Context,
	clientOpts *options.ClientOptions,
	timeout time.Duration,
) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("storage.mongodb.Ping: %w", err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("storage.mongodb.Close: %w", err)
	}
	return nil
}
