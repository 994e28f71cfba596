package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collections holding each entity type.
const (
	GreenCoffeeTable = "green_coffee"
	RoastTable       = "roast"
	ProductTable     = "product"
)

var ErrInvalidRecordID = errors.New("invalid record id")

// RecordID addresses one record: the collection it lives in plus its key.
// Its text form is "<table>:<key>"; clients round-trip it and never build it.
type RecordID struct {
	Table string
	Key   string
}

func NewRecordID(table, key string) RecordID {
	return RecordID{Table: table, Key: key}
}

// ParseRecordID parses the "<table>:<key>" form.
func ParseRecordID(s string) (RecordID, error) {
	table, key, ok := strings.Cut(s, ":")
	if !ok || table == "" || key == "" {
		return RecordID{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, s)
	}
	return RecordID{Table: table, Key: key}, nil
}

func (id RecordID) String() string {
	return id.Table + ":" + id.Key
}

func (id RecordID) IsZero() bool {
	return id.Table == "" && id.Key == ""
}

// MarshalText implements [encoding.TextMarshaler].
func (id RecordID) MarshalText() ([]byte, error) {
	if id.Table == "" || id.Key == "" {
		return nil, fmt.Errorf("%w: empty table or key", ErrInvalidRecordID)
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (id *RecordID) UnmarshalText(text []byte) error {
	parsed, err := ParseRecordID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// KeyFor resolves a client-supplied identifier to a key within table.
// Both the full "<table>:<key>" form and a bare key are accepted; a full
// form naming a different table resolves to nothing.
func KeyFor(table, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	prefix, key, ok := strings.Cut(raw, ":")
	if !ok {
		return raw, true
	}
	if prefix != table || key == "" {
		return "", false
	}
	return key, true
}

// Meta holds the storage-owned part of every record. It is absent until the
// record is persisted.
type Meta struct {
	ID        *RecordID  `json:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// RecordMeta gives storage access to the embedded Meta of any entity.
func (m *Meta) RecordMeta() *Meta { return m }
