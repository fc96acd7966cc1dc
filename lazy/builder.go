package lazy

import (
	"github.com/jonwraymond/rxcache/observe"
	"github.com/jonwraymond/rxcache/pattern"
)

// Builder configures a Pattern. Setters return the Builder so calls chain.
// A Builder is not safe for concurrent use; the Patterns it builds are.
type Builder struct {
	source   string
	opts     pattern.Options
	compiler pattern.Compiler
	logger   observe.Logger
}

// NewBuilder returns a Builder for source with pattern.DefaultOptions.
// Syntax errors are reported by Build.
func NewBuilder(source string) *Builder {
	return &Builder{
		source:   source,
		opts:     pattern.DefaultOptions(),
		compiler: pattern.Default(),
		logger:   observe.NopLogger(),
	}
}

// CaseInsensitive sets the i flag.
func (b *Builder) CaseInsensitive(yes bool) *Builder {
	b.opts.CaseInsensitive = yes
	return b
}

// MultiLine sets the m flag.
func (b *Builder) MultiLine(yes bool) *Builder {
	b.opts.MultiLine = yes
	return b
}

// DotMatchesNewline sets the s flag.
func (b *Builder) DotMatchesNewline(yes bool) *Builder {
	b.opts.DotMatchesNewline = yes
	return b
}

// SwapGreed sets the U flag.
func (b *Builder) SwapGreed(yes bool) *Builder {
	b.opts.SwapGreed = yes
	return b
}

// IgnoreWhitespace sets the x flag.
func (b *Builder) IgnoreWhitespace(yes bool) *Builder {
	b.opts.IgnoreWhitespace = yes
	return b
}

// Unicode enables or disables Unicode class escapes.
func (b *Builder) Unicode(yes bool) *Builder {
	b.opts.Unicode = yes
	return b
}

// SizeLimit sets the approximate compiled program size limit in bytes.
func (b *Builder) SizeLimit(limit int) *Builder {
	b.opts.SizeLimit = limit
	return b
}

// DFASizeLimit sets the approximate lazy DFA cache size in bytes. Every
// realized artifact, shared or Local, gets its own cache of this size.
func (b *Builder) DFASizeLimit(limit int) *Builder {
	b.opts.DFASizeLimit = limit
	return b
}

// Options replaces the whole option set.
func (b *Builder) Options(opts pattern.Options) *Builder {
	b.opts = opts
	return b
}

// Compiler sets the compiler used for validation and the deferred build.
func (b *Builder) Compiler(c pattern.Compiler) *Builder {
	if c != nil {
		b.compiler = c
	}
	return b
}

// Logger sets the logger that reports deferred build failures.
func (b *Builder) Logger(l observe.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Build validates the source under the current options and returns a new
// unrealized Pattern. The Builder can keep being used; later changes do not
// affect Patterns already built.
func (b *Builder) Build() (*Pattern, error) {
	if err := b.compiler.Validate(b.source, b.opts); err != nil {
		return nil, err
	}
	return &Pattern{
		source:   b.source,
		opts:     b.opts,
		compiler: b.compiler,
		logger:   b.logger,
	}, nil
}
