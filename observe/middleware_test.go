package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/rxcache/pattern"
)

type testHarness struct {
	spans   *tracetest.SpanRecorder
	metrics *sdkmetric.ManualReader
	logs    *bytes.Buffer
	mw      *Middleware
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	m, reader := newTestMetrics(t)
	logs := &bytes.Buffer{}

	return &testHarness{
		spans:   spans,
		metrics: reader,
		logs:    logs,
		mw:      NewMiddleware(NewTracer(tp.Tracer("test")), m, NewLoggerWithWriter("debug", logs)),
	}
}

// stubCompiler counts calls and fails when err is set.
type stubCompiler struct {
	calls int
	err   error
}

func (s *stubCompiler) Validate(string, pattern.Options) error { return s.err }

func (s *stubCompiler) Compile(source string, opts pattern.Options) (*pattern.Regex, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return pattern.Default().Compile(source, opts)
}

func TestMiddleware_SuccessPath(t *testing.T) {
	h := newHarness(t)
	c := h.mw.Wrap(pattern.Default(), pattern.EngineCoregex)

	re, err := c.Compile(`[a-z]+\d`, pattern.DefaultOptions())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !re.MatchString("abc1") {
		t.Error("expected compiled pattern to match")
	}
	if re.String() != `[a-z]+\d` {
		t.Errorf("expected verbatim source, got %q", re.String())
	}

	spans := h.spans.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != SpanName {
		t.Errorf("expected span name %q, got %q", SpanName, spans[0].Name())
	}

	rm := collect(t, h.metrics)
	if got := counterValue(t, rm, MetricCompileTotal); got != 1 {
		t.Errorf("expected %s=1, got %d", MetricCompileTotal, got)
	}

	var entry map[string]any
	if err := json.Unmarshal(h.logs.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v\n%s", err, h.logs.String())
	}
	if entry["msg"] != "pattern compiled" || entry["level"] != "debug" {
		t.Errorf("unexpected log entry: %v", entry)
	}
	if _, ok := entry["duration_ms"].(float64); !ok {
		t.Errorf("expected numeric duration_ms, got %v", entry["duration_ms"])
	}
}

func TestMiddleware_ErrorPath(t *testing.T) {
	h := newHarness(t)
	c := h.mw.Wrap(pattern.Default(), pattern.EngineCoregex)

	re, err := c.Compile(`(unclosed`, pattern.DefaultOptions())
	if re != nil {
		t.Error("expected nil regex on failure")
	}
	if !errors.Is(err, pattern.ErrSyntax) {
		t.Fatalf("expected syntax error to pass through, got %v", err)
	}

	rm := collect(t, h.metrics)
	if got := counterValue(t, rm, MetricCompileErrors); got != 1 {
		t.Errorf("expected %s=1, got %d", MetricCompileErrors, got)
	}
	if v := spanAttrs(h.spans.Ended()[0])["pattern.error"]; !v.AsBool() {
		t.Error("expected pattern.error=true on span")
	}
	if !strings.Contains(h.logs.String(), `"pattern compile failed"`) {
		t.Errorf("expected warn log, got %s", h.logs.String())
	}
}

func TestMiddleware_ReturnsErrorUnchanged(t *testing.T) {
	sentinel := errors.New("engine unavailable")
	stub := &stubCompiler{err: sentinel}
	c := NewMiddleware(nil, nil, nil).Wrap(stub, "")

	if _, err := c.Compile("a", pattern.DefaultOptions()); err != sentinel {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("expected 1 call, got %d", stub.calls)
	}
}

func TestMiddleware_ValidateNotInstrumented(t *testing.T) {
	h := newHarness(t)
	c := h.mw.Wrap(pattern.Default(), pattern.EngineCoregex)

	if err := c.Validate(`a|b`, pattern.DefaultOptions()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if n := len(h.spans.Ended()); n != 0 {
		t.Errorf("expected no spans for Validate, got %d", n)
	}
}

func TestMiddleware_PropagatesOptions(t *testing.T) {
	h := newHarness(t)
	c := h.mw.Wrap(pattern.Default(), pattern.EngineCoregex)

	opts := pattern.DefaultOptions()
	opts.CaseInsensitive = true
	re, err := c.Compile("abc", opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.MatchString("ABC") {
		t.Error("expected case-insensitive match")
	}
	if v := spanAttrs(h.spans.Ended()[0])["pattern.flags"]; v.AsString() != "(?i)" {
		t.Errorf("expected pattern.flags=(?i), got %v", v)
	}
}

func TestMiddleware_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "rxcache"})
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}
	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver: %v", err)
	}

	re, err := mw.Wrap(pattern.Default(), pattern.EngineCoregex).Compile("x+", pattern.DefaultOptions())
	if err != nil || !re.MatchString("xx") {
		t.Fatalf("expected compile through noop middleware, got %v", err)
	}
}
