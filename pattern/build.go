package pattern

import (
	"regexp/syntax"
	"unsafe"
)

const (
	// instBytes approximates the footprint of one program instruction.
	instBytes = int(unsafe.Sizeof(syntax.Inst{}))

	// dfaStateBytes approximates one lazy DFA state: a transition per byte
	// plus a word per NFA instruction in the state set.
	dfaStateBytes = 256 * 4

	// maxDFAStates is the upper bound coregex accepts for MaxDFAStates.
	maxDFAStates = 1_000_000
)

// prepared is a validated pattern ready to be handed to an engine.
type prepared struct {
	source string
	opts   Options

	// expr is the flag-prefixed, whitespace-stripped text given to the engine.
	expr string

	prog *syntax.Prog
}

// parse runs the validation half of the pipeline: whitespace stripping and
// syntax checking with option-derived flags.
func parse(source string, opts Options) (string, *syntax.Regexp, error) {
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}

	expr := source
	if opts.IgnoreWhitespace {
		expr = stripWhitespace(expr)
	}

	re, err := syntax.Parse(expr, opts.parseFlags())
	if err != nil {
		return "", nil, &SyntaxError{Source: source, Err: err}
	}
	return expr, re, nil
}

// prepare validates source and checks both size limits.
func prepare(source string, opts Options) (*prepared, error) {
	expr, re, err := parse(source, opts)
	if err != nil {
		return nil, err
	}

	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil, &SyntaxError{Source: source, Err: err}
	}

	if size := programSize(prog); size > opts.SizeLimit {
		return nil, &ResourceLimitError{
			Source: source,
			Limit:  LimitProgramSize,
			Size:   size,
			Max:    opts.SizeLimit,
		}
	}

	// A small DFA cache only slows matching down; it fails the build only
	// when not even one state fits.
	if need := stateBytes(prog); opts.DFASizeLimit < need {
		return nil, &ResourceLimitError{
			Source: source,
			Limit:  LimitDFASize,
			Size:   need,
			Max:    opts.DFASizeLimit,
		}
	}

	return &prepared{
		source: source,
		opts:   opts,
		expr:   opts.Flags() + expr,
		prog:   prog,
	}, nil
}

func programSize(prog *syntax.Prog) int {
	size := 0
	for i := range prog.Inst {
		size += instBytes + 4*len(prog.Inst[i].Rune)
	}
	return size
}

func stateBytes(prog *syntax.Prog) int {
	return dfaStateBytes + 4*len(prog.Inst)
}

// dfaStates returns how many lazy DFA states fit in limit bytes, clamped to
// [1, maxDFAStates].
func dfaStates(prog *syntax.Prog, limit int) int {
	return max(1, min(limit/stateBytes(prog), maxDFAStates))
}
