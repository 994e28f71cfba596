package mq

import (
	"context"

	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer  = otel.Tracer("internal/storage/mq")
	kTracer = kotel.NewTracer()
)

func contextWithSpan(ctx, spanCtx context.Context) context.Context {
	return trace.ContextWithSpan(ctx, trace.SpanFromContext(spanCtx))
}
