package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "rendr"

// Tracer wraps an OpenTelemetry tracer. A nil *Tracer produces no spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer backed by the global tracer provider.
// An empty name selects the default "rendr" tracer.
func NewTracer(name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// NewTracerFrom returns a Tracer backed by the given provider.
func NewTracerFrom(provider trace.TracerProvider, name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: provider.Tracer(name)}
}

// Start starts a span. On a nil Tracer it returns ctx and the span already
// carried by ctx (a no-op span when there is none).
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
