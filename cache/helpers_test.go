package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/rxcache/pattern"
)

// countingCompiler counts Compile calls per source.
type countingCompiler struct {
	next  pattern.Compiler
	delay time.Duration

	mu    sync.Mutex
	calls map[string]int
	total atomic.Int64
}

func newCountingCompiler() *countingCompiler {
	return &countingCompiler{next: pattern.Default(), calls: map[string]int{}}
}

func (c *countingCompiler) Validate(source string, opts pattern.Options) error {
	return c.next.Validate(source, opts)
}

func (c *countingCompiler) Compile(source string, opts pattern.Options) (*pattern.Regex, error) {
	c.total.Add(1)
	c.mu.Lock()
	c.calls[source]++
	c.mu.Unlock()
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.next.Compile(source, opts)
}

func (c *countingCompiler) count(source string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[source]
}
