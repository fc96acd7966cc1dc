// Package pattern defines the compile capability that rxcache caches.
//
// It provides the Options value describing how a pattern source is compiled,
// the immutable Regex artifact, and the Compiler interface with two engines:
// coregex (the default) and the standard library regexp package.
//
// Every Compiler shares one build pipeline: optional whitespace stripping,
// syntax validation with flags derived from Options, and size checks against
// SizeLimit and DFASizeLimit. A Regex always reports the source it was built
// from verbatim, independent of the options applied to it.
package pattern
