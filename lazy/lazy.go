package lazy

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/rxcache/observe"
	"github.com/jonwraymond/rxcache/pattern"
)

// State is the lifecycle stage of a Pattern.
type State int

const (
	// StateValidated means the syntax was checked and nothing is compiled.
	StateValidated State = iota
	// StateBuilt means the shared artifact has been realized.
	StateBuilt
)

func (s State) String() string {
	switch s {
	case StateValidated:
		return "validated"
	case StateBuilt:
		return "built"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pattern is a validated pattern compiled on first use.
//
// Contract:
//   - Concurrency: safe for concurrent use. The shared artifact is built at
//     most once.
//   - Errors: construction reports syntax errors. A build that fails after
//     validation is returned by Load and makes Get panic.
type Pattern struct {
	source   string
	opts     pattern.Options
	compiler pattern.Compiler
	logger   observe.Logger

	once sync.Once
	re   atomic.Pointer[pattern.Regex]
	err  error
}

// New validates source under pattern.DefaultOptions.
func New(source string) (*Pattern, error) {
	return NewBuilder(source).Build()
}

// NewWithOptions validates source under opts.
func NewWithOptions(source string, opts pattern.Options) (*Pattern, error) {
	return NewBuilder(source).Options(opts).Build()
}

// MustNew is like New but panics on error. It is meant for package-level
// pattern variables.
func MustNew(source string) *Pattern {
	p, err := New(source)
	if err != nil {
		panic(err)
	}
	return p
}

// build compiles a fresh artifact.
func (p *Pattern) build() (*pattern.Regex, error) {
	re, err := p.compiler.Compile(p.source, p.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildAfterValidation, err)
	}
	return re, nil
}

func (p *Pattern) realize() {
	re, err := p.build()
	if err != nil {
		p.err = err
		return
	}
	p.re.Store(re)
}

// Load returns the shared artifact, building it on the first call.
func (p *Pattern) Load() (*pattern.Regex, error) {
	if re := p.re.Load(); re != nil {
		return re, nil
	}
	p.once.Do(p.realize)
	if p.err != nil {
		return nil, p.err
	}
	return p.re.Load(), nil
}

// Get returns the shared artifact, building it on the first call. It panics
// if the build fails.
func (p *Pattern) Get() *pattern.Regex {
	re, err := p.Load()
	if err != nil {
		p.fail(err)
	}
	return re
}

func (p *Pattern) fail(err error) {
	p.logger.WithPattern(observe.PatternMeta{Source: p.source, Options: p.opts}).
		Error(context.Background(), "lazy: build failed after validation", observe.Field{Key: "error", Value: err.Error()})
	panic(err)
}

// Realized reports whether the shared artifact has been built.
func (p *Pattern) Realized() bool { return p.re.Load() != nil }

// State reports StateBuilt once the shared artifact exists.
func (p *Pattern) State() State {
	if p.Realized() {
		return StateBuilt
	}
	return StateValidated
}

// Clone returns an unrealized Pattern with the same source and options.
func (p *Pattern) Clone() *Pattern {
	return &Pattern{
		source:   p.source,
		opts:     p.opts,
		compiler: p.compiler,
		logger:   p.logger,
	}
}

// Local returns a new slot holding a private artifact. See Local.
func (p *Pattern) Local() *Local {
	return &Local{p: p}
}

// Source returns the source exactly as given.
func (p *Pattern) Source() string { return p.source }

// String returns the source exactly as given.
func (p *Pattern) String() string { return p.source }

// Options returns the options the Pattern compiles with.
func (p *Pattern) Options() pattern.Options { return p.opts }

// MatchString reports whether s contains a match.
func (p *Pattern) MatchString(s string) bool { return p.Get().MatchString(s) }

// FindString returns the leftmost match in s.
func (p *Pattern) FindString(s string) string { return p.Get().FindString(s) }
