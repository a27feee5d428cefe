package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records keep-alive cache metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records one render pass and how long resolution took.
	RecordLookup(ctx context.Context, meta SubtreeMeta, outcome Outcome, duration time.Duration)

	// RecordFill records a committed cache fill. added is false when an
	// existing entry was overwritten.
	RecordFill(ctx context.Context, meta SubtreeMeta, added bool)

	// RecordRemoval records an entry leaving the cache.
	RecordRemoval(ctx context.Context, meta SubtreeMeta, reason Reason, disposed bool)
}

type metricsImpl struct {
	lookups      metric.Int64Counter
	removals     metric.Int64Counter
	entries      metric.Int64UpDownCounter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with instruments on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	lookups, err := meter.Int64Counter(
		"keepalive.lookups",
		metric.WithDescription("Render passes resolved by keep-alive controllers"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, err
	}

	removals, err := meter.Int64Counter(
		"keepalive.evictions",
		metric.WithDescription("Entries removed from keep-alive caches"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	entries, err := meter.Int64UpDownCounter(
		"keepalive.entries",
		metric.WithDescription("Entries currently held by keep-alive caches"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"keepalive.render.duration_us",
		metric.WithDescription("Render pass resolution time in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		lookups:      lookups,
		removals:     removals,
		entries:      entries,
		durationHist: durationHist,
	}, nil
}

func controllerAttrs(meta SubtreeMeta) []attribute.KeyValue {
	if meta.Controller == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String("keepalive.controller", meta.Controller)}
}

// RecordLookup increments the lookup counter and records the duration.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta SubtreeMeta, outcome Outcome, duration time.Duration) {
	attrs := append(controllerAttrs(meta), attribute.String("outcome", string(outcome)))
	opt := metric.WithAttributes(attrs...)

	m.lookups.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Microseconds()), opt)
}

// RecordFill tracks cache occupancy.
func (m *metricsImpl) RecordFill(ctx context.Context, meta SubtreeMeta, added bool) {
	if !added {
		return
	}
	m.entries.Add(ctx, 1, metric.WithAttributes(controllerAttrs(meta)...))
}

// RecordRemoval increments the eviction counter and decrements occupancy.
func (m *metricsImpl) RecordRemoval(ctx context.Context, meta SubtreeMeta, reason Reason, disposed bool) {
	base := controllerAttrs(meta)
	attrs := append(base,
		attribute.String("reason", string(reason)),
		attribute.Bool("disposed", disposed),
	)

	m.removals.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.entries.Add(ctx, -1, metric.WithAttributes(controllerAttrs(meta)...))
}

type noopMetrics struct{}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta SubtreeMeta, outcome Outcome, duration time.Duration) {
}

func (m *noopMetrics) RecordFill(ctx context.Context, meta SubtreeMeta, added bool) {}

func (m *noopMetrics) RecordRemoval(ctx context.Context, meta SubtreeMeta, reason Reason, disposed bool) {
}
