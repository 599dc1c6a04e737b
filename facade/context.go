package facade

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Field keys added by Handle.WithContext.
const (
	TraceIDKey = "trace_id"
	SpanIDKey  = "span_id"
)

// traceFields extracts the span context of ctx. A missing or invalid span yields no fields.
func traceFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}

	return []Field{
		F(TraceIDKey, sc.TraceID().String()),
		F(SpanIDKey, sc.SpanID().String()),
	}
}
