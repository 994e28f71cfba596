package config

import "time"

// Relay configures publishing of record change events through the outbox.
type Relay struct {
	Enabled   bool          `env:"OUTBOX_ENABLED" envDefault:"false"`
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
}
