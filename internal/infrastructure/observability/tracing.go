package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "warung-server/order-api"

// GetTracer returns the tracer for the order-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartNegotiationSpan starts a span for one negotiation operation. The
// conversation id may be empty for log-wide reads.
func StartNegotiationSpan(ctx context.Context, operation, conversationID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("negotiation.operation", operation),
	}
	if conversationID != "" {
		attrs = append(attrs, attribute.String("negotiation.conversation_id", conversationID))
	}
	return GetTracer().Start(ctx, "negotiation."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
