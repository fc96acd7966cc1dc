package cache

import (
	"github.com/jonwraymond/rxcache/observe"
	"github.com/jonwraymond/rxcache/pattern"
)

// Option configures a PatternCache.
type Option func(*PatternCache)

// WithCompiler sets the compiler used on misses. Default: pattern.Default().
func WithCompiler(c pattern.Compiler) Option {
	return func(pc *PatternCache) {
		if c != nil {
			pc.compiler = c
		}
	}
}

// WithKeyer sets the key derivation. Default: SourceKeyer.
func WithKeyer(k Keyer) Option {
	return func(pc *PatternCache) {
		if k != nil {
			pc.keyer = k
		}
	}
}

// WithMetrics records lookups and evictions to m.
func WithMetrics(m observe.Metrics) Option {
	return func(pc *PatternCache) {
		if m != nil {
			pc.metrics = m
		}
	}
}

// WithLogger logs evictions at debug and compile failures at warn.
func WithLogger(l observe.Logger) Option {
	return func(pc *PatternCache) {
		if l != nil {
			pc.logger = l
		}
	}
}

// WithObserver instruments the cache from mw: its metrics and logger are used
// by the cache, and the compiler in effect is wrapped with mw. Apply it after
// WithCompiler.
func WithObserver(mw *observe.Middleware) Option {
	return func(pc *PatternCache) {
		if mw == nil {
			return
		}
		pc.metrics = mw.Metrics()
		pc.logger = mw.Logger()
		pc.compiler = mw.Wrap(pc.compiler, "")
	}
}

// WithOnEvict registers fn to be called when capacity pressure evicts an
// entry. It is not called for Remove or Purge.
func WithOnEvict(fn func(key string, re *pattern.Regex)) Option {
	return func(pc *PatternCache) {
		pc.onEvict = fn
	}
}
