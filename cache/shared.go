package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/rxcache/pattern"
)

// Shared is a PatternCache that is safe for concurrent use.
//
// Lookups and inserts run under a mutex; compilation runs outside it.
// Concurrent misses on the same key share a single compile.
type Shared struct {
	mu    sync.Mutex
	cache *PatternCache
	group singleflight.Group
}

// NewShared creates a Shared cache holding at most capacity patterns.
func NewShared(capacity int, opts ...Option) (*Shared, error) {
	c, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Shared{cache: c}, nil
}

// NewSharedFrom wraps an existing PatternCache. The caller must not use c
// directly afterwards.
func NewSharedFrom(c *PatternCache) (*Shared, error) {
	if c == nil {
		return nil, ErrNilCache
	}
	return &Shared{cache: c}, nil
}

// Compile returns the cached pattern for source, compiling it with
// pattern.DefaultOptions on a miss.
func (s *Shared) Compile(source string) (*pattern.Regex, error) {
	return s.compile(source, pattern.DefaultOptions())
}

// Configure is like Compile but lets fn adjust the options used on a miss.
// The keying caveat of PatternCache.Configure applies.
func (s *Shared) Configure(source string, fn func(*pattern.Options)) (*pattern.Regex, error) {
	opts := pattern.DefaultOptions()
	if fn != nil {
		fn(&opts)
	}
	return s.compile(source, opts)
}

func (s *Shared) compile(source string, opts pattern.Options) (*pattern.Regex, error) {
	s.mu.Lock()
	key := s.cache.Key(source, opts)
	re, ok := s.cache.lookup(key)
	s.mu.Unlock()
	if ok {
		return re, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(key, source, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.(*pattern.Regex), nil
}

// resolve runs one flight for key. A flight that finished after the caller's
// lookup may already have stored the pattern; that hit is promoted.
func (s *Shared) resolve(key, source string, opts pattern.Options) (*pattern.Regex, error) {
	s.mu.Lock()
	re, ok := s.cache.Get(key)
	s.mu.Unlock()
	if ok {
		return re, nil
	}

	re, err := s.cache.compiler.Compile(source, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return nil, s.cache.failed(source, opts, err)
	}
	return s.cache.store(key, re), nil
}

// Save inserts a pattern compiled elsewhere; see PatternCache.Save.
func (s *Shared) Save(re *pattern.Regex) (*pattern.Regex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Save(re)
}

// Len returns the number of cached patterns.
func (s *Shared) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Cap returns the capacity fixed at construction.
func (s *Shared) Cap() int {
	return s.cache.Cap()
}

// Stats returns a snapshot of the cache counters.
func (s *Shared) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}

// Do runs fn with exclusive access to the underlying PatternCache. fn must
// not retain c or call back into s.
func (s *Shared) Do(fn func(c *PatternCache)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cache)
}

// Handle returns a Handle for source compiled with pattern.DefaultOptions.
func (s *Shared) Handle(source string) (*Handle, error) {
	return s.HandleWithOptions(source, nil)
}

// HandleWithOptions returns a Handle for source with options adjusted by fn.
// The pattern is compiled through the cache before returning, so every
// error a Handle could hit is reported here.
func (s *Shared) HandleWithOptions(source string, fn func(*pattern.Options)) (*Handle, error) {
	opts := pattern.DefaultOptions()
	if fn != nil {
		fn(&opts)
	}
	if _, err := s.compile(source, opts); err != nil {
		return nil, err
	}
	return &Handle{shared: s, source: source, opts: opts}, nil
}

// Handle is a pattern whose compiled form lives in a Shared cache. Each use
// looks the pattern up, recompiling it if it was evicted.
//
// A Handle is safe for concurrent use.
type Handle struct {
	shared *Shared
	source string
	opts   pattern.Options
}

// Regex returns the compiled pattern, recompiling it on a cache miss.
func (h *Handle) Regex() (*pattern.Regex, error) {
	return h.shared.compile(h.source, h.opts)
}

// must resolves the pattern. The source compiled when the Handle was made,
// so a failure here means the compiler is not deterministic.
func (h *Handle) must() *pattern.Regex {
	re, err := h.Regex()
	if err != nil {
		panic(fmt.Sprintf("cache: handle for %q failed to recompile: %v", h.source, err))
	}
	return re
}

// String returns the source exactly as given.
func (h *Handle) String() string { return h.source }

// Options returns the options the Handle compiles with.
func (h *Handle) Options() pattern.Options { return h.opts }

// MatchString reports whether s contains a match.
func (h *Handle) MatchString(s string) bool { return h.must().MatchString(s) }

// FindString returns the leftmost match in s.
func (h *Handle) FindString(s string) string { return h.must().FindString(s) }

// FindStringSubmatch returns the leftmost match in s and its submatches.
func (h *Handle) FindStringSubmatch(s string) []string { return h.must().FindStringSubmatch(s) }

// ReplaceAllString replaces matches in src with repl, expanding $ references.
func (h *Handle) ReplaceAllString(src, repl string) string {
	return h.must().ReplaceAllString(src, repl)
}
