package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecorder_PassRecordsAllSignals(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() = %v", err)
	}
	var buf bytes.Buffer

	rec := NewRecorder(NewTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter("debug", &buf))

	pass := rec.StartPass(context.Background(), "tabs")
	if pass.Context() == nil {
		t.Fatal("pass context is nil")
	}
	pass.End(SubtreeMeta{Key: "1::home", Name: "Home"}, OutcomeMiss)

	if len(sr.Ended()) != 1 {
		t.Errorf("expected 1 ended span, got %d", len(sr.Ended()))
	}

	rm := collect(t, reader)
	if lookups := findMetric(rm, "keepalive.lookups"); lookups == nil {
		t.Error("lookup not recorded")
	}

	out := buf.String()
	if !strings.Contains(out, `"outcome":"miss"`) || !strings.Contains(out, `"keepalive.controller":"tabs"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestRecorder_RemovedLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		reason    Reason
		disposed  bool
		wantLevel string
	}{
		{"disposed eviction", ReasonCapacity, true, `"level":"debug"`},
		{"retained eviction", ReasonCapacity, false, `"level":"warn"`},
		{"retained prune", ReasonPrune, false, `"level":"warn"`},
		{"teardown", ReasonTeardown, false, `"level":"debug"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := NewRecorder(nil, nil, NewLoggerWithWriter("debug", &buf))

			rec.Removed(context.Background(), SubtreeMeta{Key: "k"}, tt.reason, tt.disposed)

			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("expected %s in %s", tt.wantLevel, buf.String())
			}
		})
	}
}

func TestRecorder_Filled(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(nil, nil, NewLoggerWithWriter("debug", &buf))

	rec.Filled(context.Background(), SubtreeMeta{Key: "k"}, false)

	if !strings.Contains(buf.String(), `"overwrite":true`) {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestRecorderFromObserver_Nil(t *testing.T) {
	if _, err := RecorderFromObserver(nil); err != ErrNilObserver {
		t.Errorf("RecorderFromObserver(nil) = %v, want ErrNilObserver", err)
	}
}

func TestNopRecorder(t *testing.T) {
	rec := NopRecorder()
	pass := rec.StartPass(context.Background(), "")
	pass.End(SubtreeMeta{}, OutcomePassthrough)
	rec.Removed(context.Background(), SubtreeMeta{}, ReasonTeardown, true)
}
