package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/rxcache/pattern"
)

// SpanName is the name of the span opened around each engine build.
const SpanName = "pattern.compile"

// maxSourceAttr bounds the pattern source recorded in spans and logs.
const maxSourceAttr = 256

// PatternMeta describes a compile for telemetry purposes.
type PatternMeta struct {
	Source  string
	Engine  pattern.Engine
	Options pattern.Options
}

// TruncatedSource returns Source cut to a bounded length for attributes.
func (m PatternMeta) TruncatedSource() string {
	if len(m.Source) <= maxSourceAttr {
		return m.Source
	}
	return m.Source[:maxSourceAttr] + "..."
}

// Flags returns the inline flags of Options, with "x" appended when
// whitespace is ignored.
func (m PatternMeta) Flags() string {
	flags := m.Options.Flags()
	if m.Options.IgnoreWhitespace {
		flags += "x"
	}
	return flags
}

func (m PatternMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("pattern.source", m.TruncatedSource()),
		attribute.Bool("pattern.unicode", m.Options.Unicode),
	}
	if m.Engine != "" {
		attrs = append(attrs, attribute.String("pattern.engine", string(m.Engine)))
	}
	if flags := m.Flags(); flags != "" {
		attrs = append(attrs, attribute.String("pattern.flags", flags))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with compile span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a compile span.
	StartSpan(ctx context.Context, meta PatternMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta PatternMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("pattern.error", false))
	return t.tracer.Start(ctx, SpanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("pattern.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, _ PatternMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, SpanName)
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
