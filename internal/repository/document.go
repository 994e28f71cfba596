package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/event"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/outbox"
)

var _ storage.Gateway = (*DocumentRepository)(nil)

// DocumentRepository stores each collection as a table of JSONB documents.
// With an outbox configured, every mutation also records a change event in
// the same transaction.
type DocumentRepository struct {
	db     db.DB
	outbox OutboxRepository
}

type DocumentOption func(*DocumentRepository)

// WithOutbox enables record change events.
func WithOutbox(repo OutboxRepository) DocumentOption {
	return func(r *DocumentRepository) {
		r.outbox = repo
	}
}

func NewDocumentRepository(db db.DB, opts ...DocumentOption) *DocumentRepository {
	r := &DocumentRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type documentRow struct {
	Key       string    `db:"key"`
	Content   []byte    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r documentRow) toDocument(collection string) storage.Document {
	return storage.Document{
		ID:        model.NewRecordID(collection, r.Key),
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]storage.Document, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT key, content, created_at, updated_at
		FROM %s
	`, table(collection)))
	if err != nil {
		return nil, fmt.Errorf("document list: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[documentRow])
	if err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}

	docs := make([]storage.Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, item.toDocument(collection))
	}
	return docs, nil
}

func (r *DocumentRepository) Get(ctx context.Context, collection, key string) (*storage.Document, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT key, content, created_at, updated_at
		FROM %s
		WHERE key = @key
	`, table(collection)), pgx.NamedArgs{
		"key": key,
	})
	if err != nil {
		return nil, fmt.Errorf("document get: %w", err)
	}

	return collectOptional(rows, collection)
}

func (r *DocumentRepository) Create(ctx context.Context, collection string, content json.RawMessage) (*storage.Document, error) {
	key, err := storage.NewKey()
	if err != nil {
		return nil, err
	}

	return r.mutate(ctx, collection, storage.OperationCreate, fmt.Sprintf(`
		INSERT INTO %s (key, content, created_at, updated_at)
		VALUES (@key, @content, NOW(), NOW())
		RETURNING key, content, created_at, updated_at
	`, table(collection)), pgx.NamedArgs{
		"key":     key,
		"content": []byte(content),
	})
}

func (r *DocumentRepository) Update(ctx context.Context, collection, key string, content json.RawMessage, updatedAt time.Time) (*storage.Document, error) {
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return r.mutate(ctx, collection, storage.OperationUpdate, fmt.Sprintf(`
		UPDATE %s
		SET content = @content, updated_at = @updated_at
		WHERE key = @key
		RETURNING key, content, created_at, updated_at
	`, table(collection)), pgx.NamedArgs{
		"key":        key,
		"content":    []byte(content),
		"updated_at": updatedAt,
	})
}

func (r *DocumentRepository) Delete(ctx context.Context, collection, key string) (*storage.Document, error) {
	return r.mutate(ctx, collection, storage.OperationDelete, fmt.Sprintf(`
		DELETE FROM %s
		WHERE key = @key
		RETURNING key, content, created_at, updated_at
	`, table(collection)), pgx.NamedArgs{
		"key": key,
	})
}

// mutate runs a statement returning at most one document and, when a
// document was affected and the outbox is enabled, records the change.
func (r *DocumentRepository) mutate(ctx context.Context, collection string, op storage.Operation, sql string, args pgx.NamedArgs) (*storage.Document, error) {
	if r.outbox == nil {
		rows, err := r.db.Query(ctx, sql, args)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", op, err)
		}
		return collectOptional(rows, collection)
	}

	var doc *storage.Document
	if err := r.db.WithTx(ctx, func(tx db.DB) error {
		rows, err := tx.Query(ctx, sql, args)
		if err != nil {
			return fmt.Errorf("document %s: %w", op, err)
		}

		doc, err = collectOptional(rows, collection)
		if err != nil || doc == nil {
			return err
		}

		return r.recordChange(ctx, tx, op, *doc)
	}); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *DocumentRepository) recordChange(ctx context.Context, tx db.DB, op storage.Operation, doc storage.Document) error {
	id := doc.ID.String()
	occurredAt := doc.UpdatedAt
	if op == storage.OperationDelete {
		occurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event.RecordChangedEvent{
		Collection: doc.ID.Table,
		ID:         id,
		Operation:  op,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal record changed event: %w", err)
	}

	return r.outbox.WithDB(tx).Enqueue(ctx, OutboxMsg{
		Topic:        event.TopicRecordChanged,
		Headers:      outbox.HeadersFromContext(ctx),
		Payload:      payload,
		PartitionKey: &id,
	})
}

func collectOptional(rows pgx.Rows, collection string) (*storage.Document, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[documentRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("collect document: %w", err)
	}

	doc := row.toDocument(collection)
	return &doc, nil
}

func table(collection string) string {
	return pgx.Identifier{collection}.Sanitize()
}
