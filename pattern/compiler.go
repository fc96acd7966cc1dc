package pattern

import (
	"fmt"
	"regexp"

	"github.com/coregx/coregex"
)

// Compiler turns a pattern source into a Regex.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Validate returns *SyntaxError for malformed sources. Compile
// returns *SyntaxError or *ResourceLimitError and a nil Regex on failure.
// - Ownership: the returned Regex reports source verbatim from String.
type Compiler interface {
	// Validate checks the syntax of source under opts without building it.
	Validate(source string, opts Options) error

	// Compile builds source under opts.
	Compile(source string, opts Options) (*Regex, error)
}

// Engine names a matching engine.
type Engine string

const (
	// EngineCoregex is github.com/coregx/coregex.
	EngineCoregex Engine = "coregex"
	// EngineStd is the standard library regexp package.
	EngineStd Engine = "std"
)

// ParseEngine parses an engine name. The empty string selects EngineCoregex.
func ParseEngine(name string) (Engine, error) {
	switch Engine(name) {
	case EngineCoregex, "":
		return EngineCoregex, nil
	case EngineStd:
		return EngineStd, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// NewCompiler returns the Compiler for engine.
func NewCompiler(engine Engine) (Compiler, error) {
	switch engine {
	case EngineCoregex, "":
		return coregexCompiler{}, nil
	case EngineStd:
		return stdCompiler{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Default returns the default Compiler, backed by coregex.
func Default() Compiler { return coregexCompiler{} }

// Validate checks the syntax of source under opts.
func Validate(source string, opts Options) error {
	_, _, err := parse(source, opts)
	return err
}

// Compile compiles source with DefaultOptions using the default Compiler.
func Compile(source string) (*Regex, error) {
	return Default().Compile(source, DefaultOptions())
}

// CompileWithOptions compiles source with opts using the default Compiler.
func CompileWithOptions(source string, opts Options) (*Regex, error) {
	return Default().Compile(source, opts)
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Regex {
	re, err := Compile(source)
	if err != nil {
		panic(err.Error())
	}
	return re
}

type coregexCompiler struct{}

func (coregexCompiler) Validate(source string, opts Options) error {
	return Validate(source, opts)
}

func (coregexCompiler) Compile(source string, opts Options) (*Regex, error) {
	p, err := prepare(source, opts)
	if err != nil {
		return nil, err
	}

	cfg := coregex.DefaultConfig()
	cfg.MaxDFAStates = uint32(dfaStates(p.prog, opts.DFASizeLimit))

	m, err := coregex.CompileWithConfig(p.expr, cfg)
	if err != nil {
		return nil, &SyntaxError{Source: source, Err: err}
	}
	return p.regex(m, EngineCoregex), nil
}

type stdCompiler struct{}

func (stdCompiler) Validate(source string, opts Options) error {
	return Validate(source, opts)
}

func (stdCompiler) Compile(source string, opts Options) (*Regex, error) {
	p, err := prepare(source, opts)
	if err != nil {
		return nil, err
	}

	m, err := regexp.Compile(p.expr)
	if err != nil {
		return nil, &SyntaxError{Source: source, Err: err}
	}
	return p.regex(m, EngineStd), nil
}

func (p *prepared) regex(m Matcher, engine Engine) *Regex {
	return &Regex{
		Matcher: m,
		source:  p.source,
		expr:    p.expr,
		opts:    p.opts,
		engine:  engine,
	}
}

var (
	_ Compiler = coregexCompiler{}
	_ Compiler = stdCompiler{}
)
