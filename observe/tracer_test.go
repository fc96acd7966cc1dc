package observe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/rxcache/pattern"
)

func newRecordingTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp.Tracer("test")), recorder
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[string]attribute.Value {
	m := make(map[string]attribute.Value)
	for _, a := range s.Attributes() {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestPatternMeta_Flags(t *testing.T) {
	tests := []struct {
		name string
		opts pattern.Options
		want string
	}{
		{"none", pattern.Options{}, ""},
		{"case", pattern.Options{CaseInsensitive: true}, "(?i)"},
		{"all", pattern.Options{CaseInsensitive: true, MultiLine: true, DotMatchesNewline: true, SwapGreed: true, IgnoreWhitespace: true}, "(?imsU)x"},
		{"extended only", pattern.Options{IgnoreWhitespace: true}, "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := (PatternMeta{Options: tc.opts}).Flags(); got != tc.want {
				t.Errorf("Flags() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPatternMeta_TruncatedSource(t *testing.T) {
	short := PatternMeta{Source: "abc"}
	if got := short.TruncatedSource(); got != "abc" {
		t.Errorf("expected short source unchanged, got %q", got)
	}

	long := PatternMeta{Source: strings.Repeat("a", maxSourceAttr+10)}
	got := long.TruncatedSource()
	if len(got) != maxSourceAttr+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated source with ellipsis, got len %d", len(got))
	}
}

func TestTracer_SpanAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()
	meta := PatternMeta{
		Source:  `\d+`,
		Engine:  pattern.EngineCoregex,
		Options: pattern.Options{CaseInsensitive: true, Unicode: true},
	}

	_, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanName {
		t.Errorf("expected span name %q, got %q", SpanName, s.Name())
	}

	attrs := spanAttrs(s)
	if v, ok := attrs["pattern.source"]; !ok || v.AsString() != `\d+` {
		t.Errorf("expected pattern.source='\\d+', got %v", v)
	}
	if v, ok := attrs["pattern.engine"]; !ok || v.AsString() != "coregex" {
		t.Errorf("expected pattern.engine='coregex', got %v", v)
	}
	if v, ok := attrs["pattern.unicode"]; !ok || !v.AsBool() {
		t.Errorf("expected pattern.unicode=true, got %v", v)
	}
	if v, ok := attrs["pattern.error"]; !ok || v.AsBool() {
		t.Errorf("expected pattern.error=false, got %v", v)
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("expected ok status, got %v", s.Status().Code)
	}
}

func TestTracer_SpanAttributesMinimal(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), PatternMeta{Source: "a"})
	tr.EndSpan(span, nil)

	attrs := spanAttrs(recorder.Ended()[0])
	if _, ok := attrs["pattern.engine"]; ok {
		t.Error("expected no pattern.engine attribute")
	}
	if _, ok := attrs["pattern.flags"]; ok {
		t.Error("expected no pattern.flags attribute")
	}
}

func TestTracer_ContextPropagation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otelTracer := tp.Tracer("test")
	tr := NewTracer(otelTracer)

	parentCtx, parentSpan := otelTracer.Start(context.Background(), "parent")
	_, childSpan := tr.StartSpan(parentCtx, PatternMeta{Source: "child"})
	tr.EndSpan(childSpan, nil)
	parentSpan.End()

	var child sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == SpanName {
			child = s
		}
	}
	if child == nil {
		t.Fatal("child span not found")
	}
	if child.Parent().TraceID() != parentSpan.SpanContext().TraceID() {
		t.Error("child span should have same trace ID as parent")
	}
	if !child.Parent().SpanID().IsValid() {
		t.Error("child span should have valid parent span ID")
	}
}

func TestTracer_ErrorRecording(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), PatternMeta{Source: "("})
	tr.EndSpan(span, errors.New("missing closing )"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}
	if v := spanAttrs(s)["pattern.error"]; !v.AsBool() {
		t.Error("expected pattern.error=true")
	}
	if len(s.Events()) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}
