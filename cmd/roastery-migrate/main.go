// Command roastery-migrate creates the configured schema and applies the
// record table migrations, then exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/log"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
)

type Config struct {
	Log      config.Log
	Postgres config.Postgres
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "roastery-migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New[Config]()
	if err == nil {
		err = cfg.Postgres.Validate()
	}
	if err != nil {
		return apperr.Config(err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return apperr.Database(err)
	}
	defer pool.Close()

	logger.InfoContext(ctx, "migrating database",
		slog.String("database", cfg.Postgres.DB),
		slog.String("schema", cfg.Postgres.Schema),
	)

	results, err := db.Prepare(ctx, pool, cfg.Postgres)
	for _, res := range results {
		logger.InfoContext(ctx, "migration applied",
			slog.String("source", res.Source.Path),
			slog.Duration("duration", res.Duration),
		)
	}
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return apperr.IO(err)
		}
		return apperr.Database(err)
	}

	logger.InfoContext(ctx, "database is up to date", slog.Int("applied", len(results)))
	return nil
}
