package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/outbox"
)

// OutboxMsg is a broker message stored until the relay publishes it.
// Messages sharing a PartitionKey are published in order.
type OutboxMsg struct {
	ID           uuid.UUID       `db:"id"`
	Topic        string          `db:"topic"`
	Headers      outbox.Headers  `db:"headers"`
	Payload      json.RawMessage `db:"payload"`
	PartitionKey *string         `db:"partition_key"`
}

// Delivery is the outcome of publishing one message. A nil Err means it was
// published.
type Delivery struct {
	ID  uuid.UUID
	Err error
}

type OutboxRepository interface {
	// WithDB returns a repository bound to db, typically a transaction.
	WithDB(db db.DB) OutboxRepository
	// Enqueue stores msg under a fresh id. msg.ID is ignored.
	Enqueue(ctx context.Context, msg OutboxMsg) error
	// ClaimPending returns up to limit unprocessed messages, oldest first,
	// locked until the surrounding transaction ends. Messages locked by
	// another relay are skipped.
	ClaimPending(ctx context.Context, limit int32) ([]OutboxMsg, error)
	// Acknowledge marks messages processed, keeping the error of failed ones.
	Acknowledge(ctx context.Context, deliveries []Delivery) error
}

type outboxRepository struct {
	db db.DB
}

func NewOutboxRepository(db db.DB) OutboxRepository {
	return outboxRepository{db: db}
}

func (r outboxRepository) WithDB(db db.DB) OutboxRepository {
	return outboxRepository{db: db}
}

func (r outboxRepository) Enqueue(ctx context.Context, msg OutboxMsg) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate outbox msg id: %w", err)
	}

	headers, err := json.Marshal(msg.Headers)
	if err != nil {
		return fmt.Errorf("marshal outbox headers: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO outbox_messages (id, topic, headers, payload, partition_key, created_at)
		VALUES (@id, @topic, @headers, @payload, @partition_key, @created_at)
	`, pgx.NamedArgs{
		"id":            id,
		"topic":         msg.Topic,
		"headers":       headers,
		"payload":       []byte(msg.Payload),
		"partition_key": msg.PartitionKey,
		"created_at":    time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("enqueue outbox msg: %w", err)
	}
	return nil
}

func (r outboxRepository) ClaimPending(ctx context.Context, limit int32) ([]OutboxMsg, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, topic, COALESCE(headers, '{}'::jsonb) AS headers, payload, partition_key
		FROM outbox_messages
		WHERE processed_at IS NULL
		ORDER BY created_at
		LIMIT @limit
		FOR UPDATE SKIP LOCKED
	`, pgx.NamedArgs{
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("claim outbox msgs: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, pgx.RowToStructByName[OutboxMsg])
	if err != nil {
		return nil, fmt.Errorf("collect outbox msgs: %w", err)
	}
	return msgs, nil
}

func (r outboxRepository) Acknowledge(ctx context.Context, deliveries []Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(deliveries))
	errs := make([]*string, len(deliveries))
	for i, d := range deliveries {
		ids[i] = d.ID
		if d.Err != nil {
			msg := d.Err.Error()
			errs[i] = &msg
		}
	}

	if _, err := r.db.Exec(ctx, `
		UPDATE outbox_messages AS o
		SET processed_at = NOW(), error = d.error
		FROM UNNEST(@ids::uuid[], @errors::text[]) AS d(id, error)
		WHERE o.id = d.id
	`, pgx.NamedArgs{
		"ids":    ids,
		"errors": errs,
	}); err != nil {
		return fmt.Errorf("acknowledge outbox msgs: %w", err)
	}
	return nil
}
