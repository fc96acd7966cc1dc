package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instrument names.
const (
	MetricCompileTotal    = "pattern.compile.total"
	MetricCompileErrors   = "pattern.compile.errors"
	MetricCompileDuration = "pattern.compile.duration_ms"
	MetricCacheHits       = "pattern.cache.hits"
	MetricCacheMisses     = "pattern.cache.misses"
	MetricCacheEvictions  = "pattern.cache.evictions"
)

// Metrics records compile and cache metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCompile records one engine build with its duration and outcome.
	RecordCompile(ctx context.Context, meta PatternMeta, duration time.Duration, err error)

	// RecordLookup records a cache lookup as a hit or a miss.
	RecordLookup(ctx context.Context, hit bool)

	// RecordEviction records one LRU eviction.
	RecordEviction(ctx context.Context)
}

type metricsImpl struct {
	compileTotal    metric.Int64Counter
	compileErrors   metric.Int64Counter
	compileDuration metric.Float64Histogram
	hits            metric.Int64Counter
	misses          metric.Int64Counter
	evictions       metric.Int64Counter
}

// NewMetrics creates the metric instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	m := &metricsImpl{}
	var err error

	if m.compileTotal, err = meter.Int64Counter(MetricCompileTotal,
		metric.WithDescription("Total number of pattern compilations"),
		metric.WithUnit("{compile}"),
	); err != nil {
		return nil, err
	}
	if m.compileErrors, err = meter.Int64Counter(MetricCompileErrors,
		metric.WithDescription("Total number of failed pattern compilations"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.compileDuration, err = meter.Float64Histogram(MetricCompileDuration,
		metric.WithDescription("Pattern compilation duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.hits, err = meter.Int64Counter(MetricCacheHits,
		metric.WithDescription("Pattern cache lookups served from the cache"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}
	if m.misses, err = meter.Int64Counter(MetricCacheMisses,
		metric.WithDescription("Pattern cache lookups that required a compile"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}
	if m.evictions, err = meter.Int64Counter(MetricCacheEvictions,
		metric.WithDescription("Patterns evicted from the cache"),
		metric.WithUnit("{pattern}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metricsImpl) RecordCompile(ctx context.Context, meta PatternMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("pattern.engine", string(meta.Engine)),
	}
	opt := metric.WithAttributes(attrs...)

	m.compileTotal.Add(ctx, 1, opt)
	if err != nil {
		m.compileErrors.Add(ctx, 1, opt)
	}
	m.compileDuration.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

func (m *metricsImpl) RecordLookup(ctx context.Context, hit bool) {
	if hit {
		m.hits.Add(ctx, 1)
		return
	}
	m.misses.Add(ctx, 1)
}

func (m *metricsImpl) RecordEviction(ctx context.Context) {
	m.evictions.Add(ctx, 1)
}

type noopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordCompile(context.Context, PatternMeta, time.Duration, error) {}
func (noopMetrics) RecordLookup(context.Context, bool)                              {}
func (noopMetrics) RecordEviction(context.Context)                                  {}
