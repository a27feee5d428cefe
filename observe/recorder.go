package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Recorder reports keep-alive controller activity to tracing, metrics and
// logging.
//
// Contract:
//   - Concurrency: safe for concurrent use if its components are.
//   - Errors: never fails; telemetry is best-effort.
//   - A nil *Recorder is valid and records nothing.
type Recorder struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewRecorder creates a Recorder. Nil components are replaced with no-ops.
func NewRecorder(tracer Tracer, metrics Metrics, logger Logger) *Recorder {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Recorder{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopRecorder returns a Recorder that records nothing.
func NopRecorder() *Recorder {
	return NewRecorder(nil, nil, nil)
}

// RecorderFromObserver creates a Recorder from an Observer.
func RecorderFromObserver(obs Observer) (*Recorder, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewRecorder(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Pass is one in-flight render pass.
type Pass struct {
	rec        *Recorder
	ctx        context.Context
	span       trace.Span
	start      time.Time
	controller string
}

// StartPass opens a render pass span for the named controller.
func (r *Recorder) StartPass(ctx context.Context, controller string) *Pass {
	if r == nil {
		return &Pass{ctx: ctx, controller: controller}
	}

	ctx, span := r.tracer.StartSpan(ctx, SubtreeMeta{Controller: controller})
	return &Pass{
		rec:        r,
		ctx:        ctx,
		span:       span,
		start:      time.Now(),
		controller: controller,
	}
}

// Context returns the context carrying the pass span.
func (p *Pass) Context() context.Context {
	return p.ctx
}

// End closes the pass with the resolved subtree and outcome.
func (p *Pass) End(meta SubtreeMeta, outcome Outcome) {
	if p.rec == nil {
		return
	}

	meta.Controller = p.controller
	duration := time.Since(p.start)

	p.rec.tracer.EndSpan(p.span, meta, outcome)
	p.rec.metrics.RecordLookup(p.ctx, meta, outcome, duration)

	p.rec.logger.WithSubtree(meta).Debug(p.ctx, "keepalive render resolved",
		Field{Key: "outcome", Value: string(outcome)},
		Field{Key: "duration_us", Value: duration.Microseconds()},
	)
}

// Filled records a committed cache fill.
func (r *Recorder) Filled(ctx context.Context, meta SubtreeMeta, added bool) {
	if r == nil {
		return
	}

	r.metrics.RecordFill(ctx, meta, added)
	r.logger.WithSubtree(meta).Debug(ctx, "keepalive entry cached",
		Field{Key: "overwrite", Value: !added},
	)
}

// Removed records an entry leaving the cache. Retaining the displayed
// instance is logged at warn level so unexpected retention stays visible.
func (r *Recorder) Removed(ctx context.Context, meta SubtreeMeta, reason Reason, disposed bool) {
	if r == nil {
		return
	}

	r.metrics.RecordRemoval(ctx, meta, reason, disposed)

	logger := r.logger.WithSubtree(meta)
	fields := []Field{
		{Key: "reason", Value: string(reason)},
		{Key: "disposed", Value: disposed},
	}
	if !disposed && reason != ReasonTeardown {
		logger.Warn(ctx, "keepalive entry dropped without disposal", fields...)
		return
	}
	logger.Debug(ctx, "keepalive entry removed", fields...)
}

// Logger returns the Recorder's logger.
func (r *Recorder) Logger() Logger {
	if r == nil {
		return &noopLogger{}
	}
	return r.logger
}
