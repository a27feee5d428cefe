package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing with render pass span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a span for one render pass of a controller.
	StartSpan(ctx context.Context, meta SubtreeMeta) (context.Context, trace.Span)

	// EndSpan annotates the span with the resolved subtree and outcome and
	// ends it.
	EndSpan(span trace.Span, meta SubtreeMeta, outcome Outcome)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts an internal span named after the controller.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SubtreeMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if meta.Controller != "" {
		attrs = append(attrs, attribute.String("keepalive.controller", meta.Controller))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan records the outcome and subtree identity, then ends the span.
func (t *tracerImpl) EndSpan(span trace.Span, meta SubtreeMeta, outcome Outcome) {
	attrs := []attribute.KeyValue{
		attribute.String("keepalive.outcome", string(outcome)),
	}
	if meta.Key != "" {
		attrs = append(attrs, attribute.String("keepalive.key", meta.Key))
	}
	if meta.Name != "" {
		attrs = append(attrs, attribute.String("keepalive.name", meta.Name))
	}
	if meta.Tag != "" {
		attrs = append(attrs, attribute.String("keepalive.tag", meta.Tag))
	}

	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SubtreeMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, meta SubtreeMeta, outcome Outcome) {
	span.End()
}
