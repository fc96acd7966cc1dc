package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/rxcache/pattern"
)

// Middleware wraps a pattern.Compiler with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a Compiler that is safe for concurrent use
//     when the wrapped Compiler is.
//   - Errors: errors from the wrapped Compiler are recorded and returned
//     unchanged.
//   - Ownership: sources and artifacts pass through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from its components. Nil components are
// replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Metrics returns the middleware's Metrics, for sharing with a cache.
func (m *Middleware) Metrics() Metrics { return m.metrics }

// Logger returns the middleware's Logger.
func (m *Middleware) Logger() Logger { return m.logger }

// Wrap returns c instrumented with the middleware. engine labels the
// telemetry; when "" the engine of the built Regex is used for metrics and
// logs.
func (m *Middleware) Wrap(c pattern.Compiler, engine pattern.Engine) pattern.Compiler {
	return &instrumentedCompiler{next: c, engine: engine, mw: m}
}

type instrumentedCompiler struct {
	next   pattern.Compiler
	engine pattern.Engine
	mw     *Middleware
}

func (c *instrumentedCompiler) Validate(source string, opts pattern.Options) error {
	return c.next.Validate(source, opts)
}

func (c *instrumentedCompiler) Compile(source string, opts pattern.Options) (*pattern.Regex, error) {
	meta := PatternMeta{Source: source, Engine: c.engine, Options: opts}
	ctx, span := c.mw.tracer.StartSpan(context.Background(), meta)

	start := time.Now()
	re, err := c.next.Compile(source, opts)
	duration := time.Since(start)
	if meta.Engine == "" && re != nil {
		meta.Engine = re.Engine()
	}

	c.mw.tracer.EndSpan(span, err)
	c.mw.metrics.RecordCompile(ctx, meta, duration, err)

	logger := c.mw.logger.WithPattern(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Warn(ctx, "pattern compile failed", fields...)
	} else {
		logger.Debug(ctx, "pattern compiled", fields...)
	}

	return re, err
}
