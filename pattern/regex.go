package pattern

import (
	"regexp"

	"github.com/coregx/coregex"
)

// Matcher is the matching surface shared by the supported engines.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: returned slices belong to the caller.
type Matcher interface {
	Match(b []byte) bool
	MatchString(s string) bool
	Find(b []byte) []byte
	FindString(s string) string
	FindIndex(b []byte) []int
	FindStringIndex(s string) []int
	FindAll(b []byte, n int) [][]byte
	FindAllString(s string, n int) []string
	FindAllStringIndex(s string, n int) [][]int
	FindSubmatch(b []byte) [][]byte
	FindStringSubmatch(s string) []string
	FindStringSubmatchIndex(s string) []int
	FindAllStringSubmatch(s string, n int) [][]string
	NumSubexp() int
	SubexpNames() []string
	ReplaceAll(src, repl []byte) []byte
	ReplaceAllString(src, repl string) string
	ReplaceAllLiteralString(src, repl string) string
	ReplaceAllStringFunc(src string, repl func(string) string) string
	Split(s string, n int) []string
}

var (
	_ Matcher = (*regexp.Regexp)(nil)
	_ Matcher = (*coregex.Regex)(nil)
)

// Regex is a compiled pattern. It is immutable and safe for concurrent use.
//
// The engine's matching methods are promoted from the embedded Matcher.
// String returns the source exactly as it was given to the compiler, without
// the inline flags or whitespace stripping derived from Options.
type Regex struct {
	Matcher

	source string
	expr   string
	opts   Options
	engine Engine
}

// String returns the verbatim pattern source.
func (r *Regex) String() string { return r.source }

// Source returns the verbatim pattern source.
func (r *Regex) Source() string { return r.source }

// Expr returns the text handed to the engine after applying Options.
func (r *Regex) Expr() string { return r.expr }

// Options returns the options the pattern was compiled with.
func (r *Regex) Options() Options { return r.opts }

// Engine returns the engine that compiled the pattern.
func (r *Regex) Engine() Engine { return r.engine }
