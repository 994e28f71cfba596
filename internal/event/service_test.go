package event

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	ran      bool
	cleaned  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(_ context.Context) (mq.CleanupFunc, error) {
	c.ran = true
	return func() { c.cleaned = true }, nil
}

func TestService_Run(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	consumer := &fakeConsumer{}

	cleanup, err := New(logger, consumer).Run(t.Context())
	require.NoError(t, err)
	assert.True(t, consumer.ran)

	handler, ok := consumer.handlers[TopicRecordChanged]
	require.True(t, ok)

	t.Run("Should log record changed event", func(t *testing.T) {
		payload, err := json.Marshal(RecordChangedEvent{
			Collection: "roast",
			ID:         "roast:abc",
			Operation:  storage.OperationUpdate,
			OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		require.NoError(t, handler(t.Context(), TopicRecordChanged, payload))
		assert.Contains(t, buf.String(), `"id":"roast:abc"`)
		assert.Contains(t, buf.String(), `"operation":"update"`)
	})

	t.Run("Should reject malformed payload", func(t *testing.T) {
		assert.Error(t, handler(t.Context(), TopicRecordChanged, []byte("{")))
	})

	cleanup()
	assert.True(t, consumer.cleaned)
}
