package config

import (
	"fmt"
	"strings"
)

type Storage struct {
	Driver StorageDriver `env:"STORAGE_DRIVER" envDefault:"memory"`
}

// StorageDriver selects the record store backing the API.
type StorageDriver uint8

const (
	StorageDriverMemory StorageDriver = iota
	StorageDriverPostgres
)

func (d StorageDriver) String() string {
	switch d {
	case StorageDriverPostgres:
		return "postgres"
	default:
		return "memory"
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StorageDriver) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "memory", "mem":
		*d = StorageDriverMemory
	case "postgres", "postgresql":
		*d = StorageDriverPostgres
	default:
		return fmt.Errorf("unknown storage driver: %s", text)
	}
	return nil
}

func (d StorageDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
