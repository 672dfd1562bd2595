package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "animalfarm"

// StartOperationSpan starts a span for one operation on a named animal.
func StartOperationSpan(ctx context.Context, op, animalName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "animal."+op,
		trace.WithAttributes(
			attribute.String("animal.operation", op),
			attribute.String("animal.name", animalName),
		),
	)
}

// StartPublishSpan starts a producer span for an outgoing event.
func StartPublishSpan(ctx context.Context, subject string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "publish "+subject,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.name", subject)),
	)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
