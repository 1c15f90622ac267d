package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run wraps fn in a span named name. An error returned by fn is recorded on
// the span and returned unchanged. A nil tracer runs fn without a span.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := fn(ctx)
	Finish(span, err)
	return err
}

// Finish sets the span status from err.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
