package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer() (Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return NewTracer(tp.Tracer("test")), sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestSubtreeMeta_SpanName(t *testing.T) {
	tests := []struct {
		meta SubtreeMeta
		want string
	}{
		{SubtreeMeta{Controller: "tabs"}, "keepalive.render.tabs"},
		{SubtreeMeta{}, "keepalive.render"},
	}

	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.want {
			t.Errorf("SpanName() = %q, want %q", got, tt.want)
		}
	}
}

func TestSubtreeMeta_ID(t *testing.T) {
	if got := (SubtreeMeta{Controller: "tabs", Key: "1::home"}).ID(); got != "tabs/1::home" {
		t.Errorf("ID() = %q", got)
	}
	if got := (SubtreeMeta{Key: "1::home"}).ID(); got != "1::home" {
		t.Errorf("ID() = %q", got)
	}
}

// TestTracer_SpanCarriesOutcome verifies span name, kind and attributes.
func TestTracer_SpanCarriesOutcome(t *testing.T) {
	tracer, sr := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), SubtreeMeta{Controller: "tabs"})
	tracer.EndSpan(span, SubtreeMeta{Key: "1::home", Name: "Home", Tag: "component-1-Home"}, OutcomeHit)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]

	if got.Name() != "keepalive.render.tabs" {
		t.Errorf("span name = %q", got.Name())
	}
	if got.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", got.Status().Code)
	}

	want := map[string]string{
		"keepalive.controller": "tabs",
		"keepalive.outcome":    "hit",
		"keepalive.key":        "1::home",
		"keepalive.name":       "Home",
		"keepalive.tag":        "component-1-Home",
	}
	for k, v := range want {
		val, ok := spanAttr(got, k)
		if !ok || val.AsString() != v {
			t.Errorf("attribute %s = %v, want %q", k, val.Emit(), v)
		}
	}
}

// TestTracer_PassthroughOmitsIdentity verifies empty identity is not recorded.
func TestTracer_PassthroughOmitsIdentity(t *testing.T) {
	tracer, sr := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), SubtreeMeta{})
	tracer.EndSpan(span, SubtreeMeta{}, OutcomePassthrough)

	got := sr.Ended()[0]
	for _, k := range []string{"keepalive.key", "keepalive.name", "keepalive.tag", "keepalive.controller"} {
		if _, ok := spanAttr(got, k); ok {
			t.Errorf("unexpected attribute %s", k)
		}
	}
}
