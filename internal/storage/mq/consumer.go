package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/correlationid"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/outbox"
)

var errNoHandler = errors.New("no handler registered for topic")

type HandlerFunc func(ctx context.Context, topic string, payload []byte) error

type CleanupFunc func()

type Consumer interface {
	RegisterHandler(topic string, handler HandlerFunc) error
	Run(ctx context.Context) (CleanupFunc, error)
}

var _ Consumer = (*KafkaConsumer)(nil)

// KafkaConsumer dispatches records to a handler per topic. Offsets are
// committed after each polled batch has been handled, so a crash replays
// the batch.
type KafkaConsumer struct {
	cl       *kgo.Client
	handlers map[string]HandlerFunc
	log      *slog.Logger
}

func NewKafkaConsumer(ctx context.Context, cfg config.Kafka, logger *slog.Logger) (*KafkaConsumer, error) {
	cl, err := newClient(ctx, cfg,
		kgo.ConsumerGroup(cfg.Group),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}

	return &KafkaConsumer{
		cl:       cl,
		handlers: make(map[string]HandlerFunc),
		log:      logger.With(slog.String("component", "kafka_consumer")),
	}, nil
}

// RegisterHandler must be called before Run.
func (c *KafkaConsumer) RegisterHandler(topic string, handler HandlerFunc) error {
	if _, exists := c.handlers[topic]; exists {
		return fmt.Errorf("handler for topic %s already registered", topic)
	}

	c.handlers[topic] = handler
	if c.cl != nil {
		c.cl.AddConsumeTopics(topic)
	}
	return nil
}

// Run polls in the background until the returned cleanup is called. Cleanup
// waits for the batch being handled and closes the client.
func (c *KafkaConsumer) Run(ctx context.Context) (CleanupFunc, error) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		c.poll(ctx)
	}()

	return func() {
		cancel()
		<-done
		c.cl.Close()
	}, nil
}

func (c *KafkaConsumer) poll(ctx context.Context) {
	for {
		fetches := c.cl.PollFetches(ctx)
		if ctx.Err() != nil || fetches.IsClientClosed() {
			return
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.log.ErrorContext(ctx, "error fetching messages",
				slog.String("topic", topic),
				slog.Int("partition", int(partition)),
				slog.Any("error", err),
			)
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			c.process(ctx, rec)
		})

		if err := c.cl.CommitUncommittedOffsets(ctx); err != nil {
			c.log.ErrorContext(ctx, "error committing offsets", slog.Any("error", err))
		}
	}
}

// process handles one record inside a kotel process span. Handler errors
// and panics are logged and never stop the poll loop.
func (c *KafkaConsumer) process(ctx context.Context, rec *kgo.Record) {
	recCtx, span := kTracer.WithProcessSpan(rec)
	defer span.End()

	// recCtx carries the producer's span; ctx keeps the poll loop's
	// cancellation.
	ctx = contextWithSpan(ctx, recCtx)
	if id, ok := outbox.HeadersFromRecord(rec).CorrelationID(); ok {
		ctx = correlationid.NewContext(ctx, id)
	}
	span.SetAttributes(attribute.String("messaging.kafka.message.key", string(rec.Key)))

	defer func() {
		if rvr := recover(); rvr != nil {
			span.SetStatus(codes.Error, "panic in handler")
			c.log.ErrorContext(ctx, "panic in message handler",
				slog.String("topic", rec.Topic),
				slog.Any("recover", rvr),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	err := c.dispatch(ctx, rec)
	switch {
	case err == nil:
	case errors.Is(err, errNoHandler):
		c.log.WarnContext(ctx, err.Error(), slog.String("topic", rec.Topic))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "handle message")
		c.log.ErrorContext(ctx, "error handling message",
			slog.String("topic", rec.Topic),
			slog.String("key", string(rec.Key)),
			slog.Any("error", err),
		)
	}
}

func (c *KafkaConsumer) dispatch(ctx context.Context, rec *kgo.Record) error {
	fn, ok := c.handlers[rec.Topic]
	if !ok {
		return errNoHandler
	}
	return fn(ctx, rec.Topic, rec.Value)
}

func (c *KafkaConsumer) Close() {
	c.cl.Close()
}
