package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
)

// errorColor is the ANSI color tint uses for error attributes.
const errorColor = 9

// NewSlogLogger creates a logger writing to stdout and installs it as the
// default logger.
func NewSlogLogger(cfg config.Log) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

// New creates a logger writing to w. Records are enriched with correlation
// and trace ids found in the context.
func New(w io.Writer, cfg config.Log) *slog.Logger {
	return slog.New(contextHandler{next: handlerFor(w, cfg)})
}

func handlerFor(w io.Writer, cfg config.Log) slog.Handler {
	if cfg.Format == config.LogFormatText {
		return tint.NewHandler(w, &tint.Options{
			Level:       cfg.Level,
			AddSource:   cfg.AddSource,
			TimeFormat:  time.RFC3339,
			ReplaceAttr: highlightErrors,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	})
}

func highlightErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	if _, ok := a.Value.Any().(error); ok {
		return tint.Attr(errorColor, a)
	}
	return a
}
