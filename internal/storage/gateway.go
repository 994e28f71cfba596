// Package storage defines the contract between request operations and the
// record store.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
)

// Document is one stored record. Content is the record's JSON without its
// storage-owned fields (id and timestamps).
type Document struct {
	ID        model.RecordID
	Content   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gateway is the storage collaborator shared by every request. A nil
// *Document with a nil error means no such record, which is not a failure.
// Implementations must be safe for concurrent use.
type Gateway interface {
	// List returns every document in collection in no particular order.
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, key string) (*Document, error)
	// Create persists content under a new key and stamps both timestamps.
	Create(ctx context.Context, collection string, content json.RawMessage) (*Document, error)
	// Update replaces the content stored at key. CreatedAt is never changed.
	Update(ctx context.Context, collection, key string, content json.RawMessage, updatedAt time.Time) (*Document, error)
	// Delete removes the document at key and returns its last value.
	Delete(ctx context.Context, collection, key string) (*Document, error)
}

// Operation names a mutation, as published in change events.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// NewKey returns a fresh time-ordered record key.
func NewKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	return id.String(), nil
}
