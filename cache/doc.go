// Package cache provides a bounded, least-recently-used cache of compiled
// patterns keyed by their source text.
//
// PatternCache is the single-owner form: it performs no internal locking and
// callers that share one across goroutines must serialize access. Shared wraps
// a PatternCache behind a mutex, collapses concurrent misses on one key into a
// single compile, and hands out Handles that resolve through the cache.
//
// By default the cache key is the source alone, so the first option set used
// for a source is the one that stays cached. Use KeyModeOptions (OptionsKeyer)
// to keep a separate artifact per option set.
package cache
