package mq

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/config"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/outbox"
)

// ProduceMsg is one message for the broker. Messages sharing a PartitionKey
// land on the same partition.
type ProduceMsg struct {
	Topic        string
	Headers      outbox.Headers
	Payload      []byte
	PartitionKey *string
}

type Producer interface {
	Produce(ctx context.Context, msg ProduceMsg) error
}

var _ Producer = (*KafkaProducer)(nil)

type KafkaProducer struct {
	cl *kgo.Client
}

func NewKafkaProducer(ctx context.Context, cfg config.Kafka) (*KafkaProducer, error) {
	cl, err := newClient(ctx, cfg,
		kgo.ProducerBatchCompression(kgo.SnappyCompression(), kgo.NoCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaProducer{cl: cl}, nil
}

// Produce blocks until the broker acknowledges msg.
func (p *KafkaProducer) Produce(ctx context.Context, msg ProduceMsg) error {
	ctx, span := tracer.Start(ctx, "produce "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.name", msg.Topic)),
	)
	defer span.End()

	if err := p.cl.ProduceSync(ctx, msg.record()).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce failed")
		return fmt.Errorf("produce to %s: %w", msg.Topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() {
	p.cl.Close()
}

func (m ProduceMsg) record() *kgo.Record {
	rec := &kgo.Record{
		Topic:   m.Topic,
		Value:   m.Payload,
		Headers: m.Headers.RecordHeaders(),
	}
	if m.PartitionKey != nil {
		rec.Key = []byte(*m.PartitionKey)
	}
	return rec
}
