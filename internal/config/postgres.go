package config

import (
	"errors"
	"time"
)

type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB"`
	// Schema is the namespace records live in; it becomes the search_path.
	Schema  string `env:"POSTGRES_SCHEMA" envDefault:"public"`
	SSLMode string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	MaxConns        int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"POSTGRES_MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"POSTGRES_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"POSTGRES_MAX_CONN_IDLE_TIME" envDefault:"30m"`

	// MigrationsDir overrides the embedded migrations with files on disk.
	MigrationsDir string `env:"POSTGRES_MIGRATIONS_DIR"`
}

// Validate reports settings that have no usable default.
func (p Postgres) Validate() error {
	var errs []error
	if p.User == "" {
		errs = append(errs, errors.New("POSTGRES_USER is required"))
	}
	if p.Password == "" {
		errs = append(errs, errors.New("POSTGRES_PASSWORD is required"))
	}
	if p.DB == "" {
		errs = append(errs, errors.New("POSTGRES_DB is required"))
	}
	return errors.Join(errs...)
}
