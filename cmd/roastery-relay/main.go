// Command roastery-relay publishes record change events written to the
// outbox by roastery-api. Several instances may run side by side.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/log"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/relay"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/repository"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/mq"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/telemetry"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/cmdutil"
)

type Config struct {
	Log      config.Log
	Postgres config.Postgres
	Relay    config.Relay
	Kafka    config.Kafka
	Otel     config.Otel
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "roastery-relay: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (Config, error) {
	cfg, err := config.New[Config]()
	if err == nil {
		err = cfg.Postgres.Validate()
	}
	if err == nil {
		err = cfg.Kafka.Validate()
	}
	if err != nil {
		return Config{}, apperr.Config(err)
	}
	return cfg, nil
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	pool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return apperr.Database(err)
	}
	defer pool.Close()

	producer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer producer.Close()

	client := db.NewClient(pool)
	stop := relay.NewService(cfg.Relay, logger, client, repository.NewOutboxRepository(client), producer).Run(ctx)
	logger.InfoContext(ctx, "relay started",
		slog.Duration("interval", cfg.Relay.Interval),
		slog.Uint64("batch_size", uint64(cfg.Relay.BatchSize)),
	)

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "stopping relay")
	stop()
	return nil
}
