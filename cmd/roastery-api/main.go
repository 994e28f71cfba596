package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/event"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/http"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/log"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/relay"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/repository"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/service"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/memory"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/mq"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/telemetry"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/cmdutil"
)

type Config struct {
	Log      config.Log
	HTTP     config.HTTP
	Storage  config.Storage
	Postgres config.Postgres
	Relay    config.Relay
	Kafka    config.Kafka
	Otel     config.Otel
}

// stopper stops one running component.
type stopper struct {
	name string
	stop func(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "roastery-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	cfg, err := config.New[Config]()
	if err != nil {
		return apperr.Config(err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	gw, dbClient, closeStorage, err := openStorage(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	httpService, err := http.New(cfg.HTTP, logger,
		service.NewGreenCoffeeService(gw),
		service.NewRoastService(gw),
		service.NewProductService(gw),
	)
	if err != nil {
		return fmt.Errorf("create http service: %w", err)
	}

	var running []stopper
	defer func() {
		// Stop in reverse start order; the HTTP server goes first.
		for _, s := range slices.Backward(running) {
			logger.InfoContext(ctx, "stopping "+s.name)
			if err := s.stop(ctx); err != nil {
				logger.ErrorContext(ctx, "error stopping "+s.name, slog.Any("error", err))
			}
		}
	}()

	if cfg.Relay.Enabled {
		stoppers, err := startChangeEvents(ctx, cfg, logger, dbClient)
		if err != nil {
			return err
		}
		running = append(running, stoppers...)
	}

	cleanupHTTP, err := httpService.Run(ctx)
	if err != nil {
		return fmt.Errorf("run http service: %w", err)
	}
	running = append(running, stopper{name: "http service", stop: cleanupHTTP})
	logger.InfoContext(ctx, "http service started", slog.Uint64("port", uint64(cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()
	return nil
}

// openStorage builds the gateway selected by the storage driver. Change
// events need the postgres driver and are disabled otherwise.
func openStorage(ctx context.Context, cfg *Config, logger *slog.Logger) (storage.Gateway, *db.Client, func(), error) {
	logger.InfoContext(ctx, "opening storage", slog.String("driver", cfg.Storage.Driver.String()))

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		if cfg.Relay.Enabled {
			logger.WarnContext(ctx, "record change events need the postgres storage driver, disabling them")
			cfg.Relay.Enabled = false
		}
		return memory.New(), nil, func() {}, nil
	}

	if err := cfg.Postgres.Validate(); err != nil {
		return nil, nil, nil, apperr.Config(err)
	}

	pool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, nil, apperr.Database(err)
	}

	results, err := db.Prepare(ctx, pool, cfg.Postgres)
	if err != nil {
		pool.Close()
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, nil, nil, apperr.IO(err)
		}
		return nil, nil, nil, apperr.Database(err)
	}
	logger.InfoContext(ctx, "database migrated", slog.Int("applied", len(results)))

	client := db.NewClient(pool)

	var opts []repository.DocumentOption
	if cfg.Relay.Enabled {
		opts = append(opts, repository.WithOutbox(repository.NewOutboxRepository(client)))
	}
	return repository.NewDocumentRepository(client, opts...), client, pool.Close, nil
}

// startChangeEvents runs the outbox relay and the audit consumer.
func startChangeEvents(ctx context.Context, cfg Config, logger *slog.Logger, dbClient *db.Client) ([]stopper, error) {
	if err := cfg.Kafka.Validate(); err != nil {
		return nil, apperr.Config(err)
	}

	consumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	cleanupEvent, err := event.New(logger, consumer).Run(ctx)
	if err != nil {
		consumer.Close()
		return nil, fmt.Errorf("run event service: %w", err)
	}

	producer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		cleanupEvent()
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	cleanupRelay := relay.NewService(cfg.Relay, logger, dbClient, repository.NewOutboxRepository(dbClient), producer).Run(ctx)

	logger.InfoContext(ctx, "record change events enabled", slog.Duration("relay_interval", cfg.Relay.Interval))

	return []stopper{
		{name: "event service", stop: func(context.Context) error { cleanupEvent(); return nil }},
		{name: "relay service", stop: func(context.Context) error {
			cleanupRelay()
			producer.Close()
			return nil
		}},
	}, nil
}
