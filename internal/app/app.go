package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"itemsvc/internal/config"
	"itemsvc/internal/repository"
	"itemsvc/internal/service"
	httpt "itemsvc/internal/transport/http"
	kafkat "itemsvc/internal/transport/kafka"
	"itemsvc/pkg/kafka"
	"itemsvc/pkg/logger"
	"itemsvc/pkg/metric"
	"itemsvc/pkg/storage/mongodb"
	"itemsvc/pkg/storage/postgres"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const _envProd = "prod"

func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(ctx, eg, cfg, log)

	repo, closeStorage, err := initStorage(ctx, cfg, log, metrics.Storage())
	if err != nil {
		return err
	}
	defer closeStorage()

	publisher, closePublisher, err := initEventPublisher(ctx, eg, cfg, log, metrics.Events())
	if err != nil {
		return err
	}
	defer closePublisher()

	itemService := service.NewItemService(
		repo,
		publisher,
		log.With("component", "item service"),
	)

	initHTTPServer(ctx, eg, cfg, itemService, log, metrics)

	return waitForShutdown(eg)
}

func initMetrics(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory(metric.StorageDriver(cfg.Storage.Driver))

	hostPort := net.JoinHostPort(cfg.Metrics.Host, cfg.Metrics.Port)
	metricsServer := &http.Server{
		Addr:              hostPort,
		Handler:           metrics.Handler(),
		ReadTimeout:       cfg.Metrics.ReadTimeout,
		WriteTimeout:      cfg.Metrics.WriteTimeout,
		ReadHeaderTimeout: cfg.Metrics.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		log.Infow("starting metrics server", "port", cfg.Metrics.Port)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.initMetrics: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app.initMetrics: shutdown: %w", err)
		}
		return nil
	})

	return metrics
}

// initStorage opens the backend selected by storage.driver. The returned
// close function releases it and is safe to defer.
func initStorage(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	metrics metric.Storage,
) (service.ItemRepository, func(), error) {
	storageLog := log.With("component", "storage", "driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewPostgres(
			ctx,
			&cfg.Postgres,
			storageLog,
			postgres.MaxPoolSize(cfg.Postgres.PoolMax),
			postgres.MaxConnAttempts(cfg.Storage.ConnAttempts),
			postgres.BaseRetryDelay(cfg.Storage.BaseRetryDelay),
			postgres.MaxRetryDelay(cfg.Storage.MaxRetryDelay),
			postgres.PingTimeout(cfg.Postgres.ConnectTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("app.initStorage: %w", err)
		}

		repo := repository.NewPostgresItemRepository(db, metrics)
		if err = repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("app.initStorage: %w", err)
		}

		return repo, db.Close, nil
	default:
		db, err := mongodb.NewMongo(
			ctx,
			&cfg.Mongo,
			storageLog,
			mongodb.MaxPoolSize(cfg.Mongo.PoolMax),
			mongodb.MaxConnAttempts(cfg.Storage.ConnAttempts),
			mongodb.BaseRetryDelay(cfg.Storage.BaseRetryDelay),
			mongodb.MaxRetryDelay(cfg.Storage.MaxRetryDelay),
			mongodb.ConnectTimeout(cfg.Mongo.ConnectTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("app.initStorage: %w", err)
		}

		closeDB := func() {
			closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if closeErr := db.Close(closeCtx); closeErr != nil {
				storageLog.Errorw("failed to close storage", "error", closeErr)
			}
		}

		repo := repository.NewMongoItemRepository(db.Collection(cfg.Mongo.Collection), metrics)
		return repo, closeDB, nil
	}
}

// initEventPublisher returns a nil publisher when events are disabled.
// Otherwise the publisher's writer loop runs in eg until ctx is done.
func initEventPublisher(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	log logger.Logger,
	metrics metric.Events,
) (service.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		log.Infow("item events disabled")
		return nil, func() {}, nil
	}

	eventsLog := log.With("component", "events")

	producer, err := kafka.NewProducer(
		&cfg.Events,
		eventsLog,
		kafka.MaxAttempts(cfg.Events.MaxAttempts),
		kafka.BaseRetryDelay(cfg.Events.RetryDelay),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("app.initEventPublisher: %w", err)
	}

	closeProducer := func() {
		if closeErr := producer.Close(); closeErr != nil {
			eventsLog.Errorw("failed to close kafka producer", "error", closeErr)
		}
	}

	publisher, err := kafkat.NewItemEventPublisher(
		producer,
		metrics,
		eventsLog,
		kafkat.QueueSize(cfg.Events.QueueSize),
		kafkat.SendTimeout(cfg.Events.SendTimeout),
	)
	if err != nil {
		closeProducer()
		return nil, nil, fmt.Errorf("app.initEventPublisher: %w", err)
	}

	eg.Go(func() error {
		return publisher.Run(ctx)
	})

	return publisher, closeProducer, nil
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	itemService *service.ItemService,
	log logger.Logger,
	metrics metric.Factory,
) {
	if cfg.Env == _envProd {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpt.NewItemHandler(
		itemService,
		log.With("component", "http handler"),
		metrics.HTTP(),
		httpt.RequestTimeout(cfg.HTTP.RequestTimeout),
	)

	httpServer := httpt.NewHTTPServer(
		handler.Engine(),
		&cfg.HTTP,
		log.With("component", "http server"),
	)

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
