package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/jonwraymond/rxcache/observe"
	"github.com/jonwraymond/rxcache/pattern"
)

// Sentinel errors for cache operations.
var (
	ErrNilCache        = errors.New("cache: cache is nil")
	ErrNilPattern      = errors.New("cache: pattern is nil")
	ErrInvalidCapacity = errors.New("cache: capacity must be at least 1")
	ErrInvalidKeyMode  = errors.New("cache: unknown key mode")
)

// CompileError reports a failed compile on a cache miss. Err is the
// *pattern.SyntaxError or *pattern.ResourceLimitError from the compiler.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cache: compile %q: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Stats counts cache activity since construction.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	CompileErrors uint64
}

// PatternCache is a bounded LRU cache of compiled patterns.
//
// Contract:
//   - Concurrency: not safe for concurrent use; see Shared.
//   - Capacity: Len never exceeds Cap. Inserting a new key into a full cache
//     evicts the least recently used entry first.
//   - Errors: a failed compile returns *CompileError and leaves the cache
//     unchanged apart from Stats.
type PatternCache struct {
	lru      *simplelru.LRU[string, *pattern.Regex]
	capacity int
	compiler pattern.Compiler
	keyer    Keyer
	metrics  observe.Metrics
	logger   observe.Logger
	onEvict  func(key string, re *pattern.Regex)
	stats    Stats
}

// New creates a PatternCache holding at most capacity patterns.
func New(capacity int, opts ...Option) (*PatternCache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got: %d", ErrInvalidCapacity, capacity)
	}

	// Evictions are driven by insert, so the LRU gets no callback and Remove
	// or Purge are not reported as evictions.
	lru, err := simplelru.NewLRU[string, *pattern.Regex](capacity, nil)
	if err != nil {
		return nil, err
	}

	c := &PatternCache{
		lru:      lru,
		capacity: capacity,
		compiler: pattern.Default(),
		keyer:    SourceKeyer{},
		metrics:  observe.NopMetrics(),
		logger:   observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Compile returns the cached pattern for source, compiling it with
// pattern.DefaultOptions on a miss.
func (c *PatternCache) Compile(source string) (*pattern.Regex, error) {
	return c.compile(source, pattern.DefaultOptions())
}

// Configure is like Compile but lets fn adjust the options used on a miss.
//
// With the default SourceKeyer the key ignores options: if source is already
// cached, the cached pattern is returned whatever fn sets.
func (c *PatternCache) Configure(source string, fn func(*pattern.Options)) (*pattern.Regex, error) {
	opts := pattern.DefaultOptions()
	if fn != nil {
		fn(&opts)
	}
	return c.compile(source, opts)
}

func (c *PatternCache) compile(source string, opts pattern.Options) (*pattern.Regex, error) {
	key := c.keyer.Key(source, opts)
	if re, ok := c.lookup(key); ok {
		return re, nil
	}

	re, err := c.build(source, opts)
	if err != nil {
		return nil, err
	}
	c.insert(key, re)
	return re, nil
}

// lookup is Get with hit and miss accounting.
func (c *PatternCache) lookup(key string) (*pattern.Regex, bool) {
	re, ok := c.lru.Get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.metrics.RecordLookup(context.Background(), ok)
	return re, ok
}

func (c *PatternCache) build(source string, opts pattern.Options) (*pattern.Regex, error) {
	re, err := c.compiler.Compile(source, opts)
	if err != nil {
		return nil, c.failed(source, opts, err)
	}
	return re, nil
}

// failed records a compile failure and wraps err.
func (c *PatternCache) failed(source string, opts pattern.Options, err error) error {
	c.stats.CompileErrors++
	c.logger.WithPattern(observe.PatternMeta{Source: source, Options: opts}).
		Warn(context.Background(), "cache: compile failed", observe.Field{Key: "error", Value: err.Error()})
	return &CompileError{Source: source, Err: err}
}

// Save inserts a pattern compiled elsewhere under the key of its source and
// options. If that key is already cached, the cached pattern is promoted and
// returned instead.
func (c *PatternCache) Save(re *pattern.Regex) (*pattern.Regex, error) {
	if re == nil {
		return nil, ErrNilPattern
	}
	return c.store(c.Key(re.Source(), re.Options()), re), nil
}

// store inserts re under key unless key is already cached, and returns the
// pattern now cached under key.
func (c *PatternCache) store(key string, re *pattern.Regex) *pattern.Regex {
	if cached, ok := c.lru.Get(key); ok {
		return cached
	}
	c.insert(key, re)
	return re
}

func (c *PatternCache) insert(key string, re *pattern.Regex) {
	if c.lru.Len() >= c.capacity && !c.lru.Contains(key) {
		if k, old, ok := c.lru.RemoveOldest(); ok {
			c.evicted(k, old)
		}
	}
	c.lru.Add(key, re)
}

func (c *PatternCache) evicted(key string, re *pattern.Regex) {
	c.stats.Evictions++
	ctx := context.Background()
	c.metrics.RecordEviction(ctx)
	c.logger.WithPattern(observe.PatternMeta{Source: re.Source(), Engine: re.Engine(), Options: re.Options()}).
		Debug(ctx, "cache: evicted", observe.Field{Key: "key", Value: key})
	if c.onEvict != nil {
		c.onEvict(key, re)
	}
}

// Key returns the cache key for source compiled under opts.
func (c *PatternCache) Key(source string, opts pattern.Options) string {
	return c.keyer.Key(source, opts)
}

// Get returns the pattern cached under key and marks it most recently used.
func (c *PatternCache) Get(key string) (*pattern.Regex, bool) {
	return c.lru.Get(key)
}

// Peek returns the pattern cached under key without updating recency.
func (c *PatternCache) Peek(key string) (*pattern.Regex, bool) {
	return c.lru.Peek(key)
}

// Contains reports whether key is cached, without updating recency.
func (c *PatternCache) Contains(key string) bool {
	return c.lru.Contains(key)
}

// Remove drops key from the cache and reports whether it was present.
func (c *PatternCache) Remove(key string) bool {
	return c.lru.Remove(key)
}

// Oldest returns the least recently used entry.
func (c *PatternCache) Oldest() (key string, re *pattern.Regex, ok bool) {
	return c.lru.GetOldest()
}

// Keys returns the cached keys from oldest to newest.
func (c *PatternCache) Keys() []string {
	return c.lru.Keys()
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	return c.lru.Len()
}

// Cap returns the capacity fixed at construction.
func (c *PatternCache) Cap() int {
	return c.capacity
}

// Purge removes every entry. Stats are kept.
func (c *PatternCache) Purge() {
	c.lru.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *PatternCache) Stats() Stats {
	return c.stats
}
