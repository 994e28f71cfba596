// Package outbox carries request context through outbox messages.
package outbox

import (
	"context"
	"maps"
	"slices"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/coffee-roastery/pkg/correlationid"
)

// Headers are the string headers stored with an outbox message and sent
// with the broker record.
type Headers map[string]string

// HeadersFromContext captures the trace context and correlation ID of ctx.
func HeadersFromContext(ctx context.Context) Headers {
	h := Headers{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(h))
	if id, ok := correlationid.FromContext(ctx); ok {
		h[correlationid.Header] = id
	}
	return h
}

// HeadersFromRecord reads the headers of a consumed record. A repeated key
// keeps its last value.
func HeadersFromRecord(rec *kgo.Record) Headers {
	h := make(Headers, len(rec.Headers))
	for _, rh := range rec.Headers {
		h[rh.Key] = string(rh.Value)
	}
	return h
}

// Context returns ctx carrying the trace context and correlation ID of h.
func (h Headers) Context(ctx context.Context) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(h))
	if id, ok := h.CorrelationID(); ok {
		ctx = correlationid.NewContext(ctx, id)
	}
	return ctx
}

func (h Headers) CorrelationID() (string, bool) {
	id := h[correlationid.Header]
	return id, id != ""
}

// RecordHeaders converts h to record headers sorted by key.
func (h Headers) RecordHeaders() []kgo.RecordHeader {
	out := make([]kgo.RecordHeader, 0, len(h))
	for _, k := range slices.Sorted(maps.Keys(h)) {
		out = append(out, kgo.RecordHeader{Key: k, Value: []byte(h[k])})
	}
	return out
}
