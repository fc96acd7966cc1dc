package pattern

import (
	"fmt"
	"regexp/syntax"
	"strings"
)

const (
	// DefaultSizeLimit is the default compiled program size limit (10 MiB).
	DefaultSizeLimit = 10 * (1 << 20)

	// DefaultDFASizeLimit is the default lazy DFA cache limit (2 MiB).
	DefaultDFASizeLimit = 2 * (1 << 20)
)

// Options configures how a pattern source is compiled.
//
// The zero value is not the default: Unicode is false and both limits are
// zero, which rejects every pattern. Start from DefaultOptions.
type Options struct {
	// CaseInsensitive sets the i flag.
	CaseInsensitive bool

	// MultiLine sets the m flag: ^ and $ also match at line boundaries.
	MultiLine bool

	// DotMatchesNewline sets the s flag: . also matches \n.
	DotMatchesNewline bool

	// SwapGreed sets the U flag: x* is lazy and x*? is greedy.
	SwapGreed bool

	// IgnoreWhitespace sets the x flag: unescaped whitespace and
	// #-comments outside character classes are ignored.
	IgnoreWhitespace bool

	// Unicode enables Unicode class escapes such as \pL and \p{Greek}.
	// When false they are rejected as syntax errors. It does not switch
	// matching to ASCII: . still consumes a whole UTF-8 rune and
	// CaseInsensitive still uses Unicode simple folding, so (?i)k matches
	// U+212A KELVIN SIGN. ASCII-only folding and byte-wise . are not
	// supported.
	// Default: true
	Unicode bool

	// SizeLimit is the approximate maximum size in bytes of the compiled
	// program.
	// Default: 10 MiB
	SizeLimit int

	// DFASizeLimit is the approximate maximum size in bytes of the lazy DFA
	// state cache used while matching.
	// Default: 2 MiB
	DFASizeLimit int
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{
		Unicode:      true,
		SizeLimit:    DefaultSizeLimit,
		DFASizeLimit: DefaultDFASizeLimit,
	}
}

// Validate checks that the limits are not negative.
func (o Options) Validate() error {
	if o.SizeLimit < 0 {
		return fmt.Errorf("%w: size limit must not be negative, got %d", ErrInvalidOptions, o.SizeLimit)
	}
	if o.DFASizeLimit < 0 {
		return fmt.Errorf("%w: dfa size limit must not be negative, got %d", ErrInvalidOptions, o.DFASizeLimit)
	}
	return nil
}

// Flags returns the inline flag group for the boolean options, for example
// "(?imsU)". It returns "" when none of them is set.
//
// IgnoreWhitespace and Unicode have no inline form in Go syntax; they are
// applied while preparing the source.
func (o Options) Flags() string {
	var b strings.Builder
	if o.CaseInsensitive {
		b.WriteByte('i')
	}
	if o.MultiLine {
		b.WriteByte('m')
	}
	if o.DotMatchesNewline {
		b.WriteByte('s')
	}
	if o.SwapGreed {
		b.WriteByte('U')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}

// parseFlags maps the options onto regexp/syntax parse flags.
func (o Options) parseFlags() syntax.Flags {
	flags := syntax.Perl
	if o.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	if o.MultiLine {
		flags &^= syntax.OneLine
	}
	if o.DotMatchesNewline {
		flags |= syntax.DotNL
	}
	if o.SwapGreed {
		flags |= syntax.NonGreedy
	}
	if !o.Unicode {
		flags &^= syntax.UnicodeGroups
	}
	return flags
}
