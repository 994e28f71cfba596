// Package event consumes record change events from the broker.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/mq"
)

// Service consumes record change events and writes them to the audit log.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

func New(logger *slog.Logger, mqConsumer mq.Consumer) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

// Run subscribes to every known topic and starts consuming. The returned
// cleanup stops the consumer.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	for topic, handler := range s.handlers() {
		if err := s.mqConsumer.RegisterHandler(topic, handler); err != nil {
			return nil, fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

func (s *Service) handlers() map[string]mq.HandlerFunc {
	return map[string]mq.HandlerFunc{
		TopicRecordChanged: decoded(s.handleRecordChangedEvent),
	}
}

// decoded adapts a typed event handler to a raw payload handler.
func decoded[E any](fn func(context.Context, E) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev E
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}
		return fn(ctx, ev)
	}
}
