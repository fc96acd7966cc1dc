package pattern

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern compilation.
var (
	// ErrSyntax matches any *SyntaxError.
	ErrSyntax = errors.New("pattern: invalid syntax")

	// ErrResourceLimit matches any *ResourceLimitError.
	ErrResourceLimit = errors.New("pattern: resource limit exceeded")

	// ErrInvalidOptions indicates negative size limits.
	ErrInvalidOptions = errors.New("pattern: invalid options")

	// ErrUnknownEngine indicates an engine name ParseEngine does not know.
	ErrUnknownEngine = errors.New("pattern: unknown engine")
)

// SyntaxError reports a pattern source that is not well-formed.
type SyntaxError struct {
	Source string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern: invalid syntax in %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying parser or engine error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// Limit names the resource a ResourceLimitError refers to.
type Limit string

const (
	// LimitProgramSize is the compiled program size (Options.SizeLimit).
	LimitProgramSize Limit = "size_limit"
	// LimitDFASize is the lazy DFA state cache (Options.DFASizeLimit).
	LimitDFASize Limit = "dfa_size_limit"
)

// ResourceLimitError reports a pattern whose compiled form would exceed a
// configured limit. Size and Max are in bytes.
type ResourceLimitError struct {
	Source string
	Limit  Limit
	Size   int
	Max    int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("pattern: %s exceeded for %q: needs %d bytes, limit is %d", e.Limit, e.Source, e.Size, e.Max)
}

// Is reports whether target is ErrResourceLimit.
func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }
