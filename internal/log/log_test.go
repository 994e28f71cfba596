package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/log"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/correlationid"
)

func TestNew(t *testing.T) {
	t.Run("Should add correlation id to JSON records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})

		ctx := correlationid.NewContext(context.Background(), "corr-1")
		logger.With(slog.String("service", "http")).InfoContext(ctx, "record created", slog.String("collection", "roast"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "record created", rec["msg"])
		assert.Equal(t, "corr-1", rec["correlation_id"])
		assert.Equal(t, "http", rec["service"])
		assert.Equal(t, "roast", rec["collection"])
		assert.NotContains(t, rec, "trace_id")
	})

	t.Run("Should honour level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn})

		logger.Info("hidden")
		assert.Empty(t, buf.String())

		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestNew_TraceIDs(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	var buf bytes.Buffer
	logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})
	logger.WithGroup("req").InfoContext(ctx, "traced")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	group, ok := rec["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, traceID.String(), group["trace_id"])
	assert.Equal(t, spanID.String(), group["span_id"])
}
