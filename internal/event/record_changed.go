package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
)

const TopicRecordChanged = "roastery.record.changed"

// RecordChangedEvent is published after a record is created, updated or
// deleted. ID is the full "table:key" record id.
type RecordChangedEvent struct {
	Collection string            `json:"collection"`
	ID         string            `json:"id"`
	Operation  storage.Operation `json:"operation"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func (s *Service) handleRecordChangedEvent(ctx context.Context, ev RecordChangedEvent) error {
	s.logger.InfoContext(ctx, "record changed",
		slog.String("collection", ev.Collection),
		slog.String("id", ev.ID),
		slog.String("operation", string(ev.Operation)),
		slog.Time("occurred_at", ev.OccurredAt),
	)
	return nil
}
