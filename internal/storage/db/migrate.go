package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationsFS returns the migrations shipped with the binary, or the files
// in dir when it is set.
func MigrationsFS(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embeddedMigrations, "migrations")
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	return os.DirFS(dir), nil
}

// Migrate applies every pending migration in fsys, in file name order.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) ([]*goose.MigrationResult, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up: %w", err)
	}

	return results, nil
}

// EnsureSchema creates schema if it does not exist yet, so a fresh namespace
// can be migrated.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	if schema == "" {
		return nil
	}

	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	return nil
}

// Prepare creates the configured schema and applies the pending migrations.
// Failing to read the migrations is reported as an *fs.PathError.
func Prepare(ctx context.Context, pool *pgxpool.Pool, cfg config.Postgres) ([]*goose.MigrationResult, error) {
	if err := EnsureSchema(ctx, pool, cfg.Schema); err != nil {
		return nil, err
	}

	fsys, err := MigrationsFS(cfg.MigrationsDir)
	if err != nil {
		return nil, err
	}

	return Migrate(ctx, pool, fsys)
}
