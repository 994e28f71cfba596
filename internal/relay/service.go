// Package relay publishes pending outbox messages to the message broker.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/repository"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/mq"
)

// shutdownGrace bounds how long cleanup waits for an in-flight batch.
const shutdownGrace = 5 * time.Second

type Service struct {
	cfg        config.Relay
	logger     *slog.Logger
	db         db.DB
	outbox     repository.OutboxRepository
	mqProducer mq.Producer
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outbox repository.OutboxRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     logger.With(slog.String("service", "relay")),
		db:         db,
		outbox:     outbox,
		mqProducer: mqProducer,
	}
}

type CleanupFunc func()

// Run flushes the outbox every configured interval until the returned
// cleanup is called.
func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)
	stop := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		s.loop(ctx, stop)
	}()

	return func() {
		close(stop)
		select {
		case <-stopped:
		case <-time.After(shutdownGrace):
			s.logger.Warn("relay did not stop in time, cancelling batch")
		}
		cancel()
	}
}

func (s *Service) loop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := s.Flush(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error flushing outbox", slog.Any("error", err))
			}
		}
	}
}

// Flush publishes one batch of pending messages and acknowledges all of
// them, failed ones included, in a single transaction. It returns the
// number of messages acknowledged.
func (s *Service) Flush(ctx context.Context) (int, error) {
	var count int
	err := s.db.WithTx(ctx, func(tx db.DB) error {
		outbox := s.outbox.WithDB(tx)

		//nolint:gosec
		msgs, err := outbox.ClaimPending(ctx, int32(s.cfg.BatchSize))
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}

		s.logger.DebugContext(ctx, "flushing outbox", slog.Int("count", len(msgs)))

		deliveries := s.publishAll(ctx, msgs)
		if err := outbox.Acknowledge(ctx, deliveries); err != nil {
			return err
		}

		count = len(deliveries)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("flush outbox: %w", err)
	}
	return count, nil
}

// publishAll publishes messages sharing a partition key one after another,
// in claim order, and distinct keys concurrently.
func (s *Service) publishAll(ctx context.Context, msgs []repository.OutboxMsg) []repository.Delivery {
	deliveries := make([]repository.Delivery, len(msgs))

	var wg sync.WaitGroup
	for _, group := range byPartitionKey(msgs) {
		wg.Go(func() {
			for _, i := range group {
				deliveries[i] = repository.Delivery{ID: msgs[i].ID, Err: s.publish(ctx, msgs[i])}
			}
		})
	}
	wg.Wait()

	return deliveries
}

// byPartitionKey groups message indexes by partition key, keeping their
// order. A message without a key forms a group of its own.
func byPartitionKey(msgs []repository.OutboxMsg) [][]int {
	var groups [][]int
	groupOf := map[string]int{}

	for i, msg := range msgs {
		if msg.PartitionKey == nil {
			groups = append(groups, []int{i})
			continue
		}

		g, ok := groupOf[*msg.PartitionKey]
		if !ok {
			g = len(groups)
			groupOf[*msg.PartitionKey] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func (s *Service) publish(ctx context.Context, msg repository.OutboxMsg) error {
	// Continue the trace of the request that wrote the message.
	ctx = msg.Headers.Context(ctx)

	err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "error publishing outbox msg",
			slog.String("outbox_msg_id", msg.ID.String()),
			slog.String("topic", msg.Topic),
			slog.Any("error", err),
		)
		return fmt.Errorf("produce: %w", err)
	}
	return nil
}
