package lazy

import "github.com/jonwraymond/rxcache/pattern"

// Local is a private slot for one worker goroutine. It compiles its own
// artifact on first use and never synchronizes, so it must not be shared
// between goroutines. A set of M Locals costs at most M builds.
type Local struct {
	p  *Pattern
	re *pattern.Regex
}

// Load returns the slot's artifact, building it on the first call. A failed
// build leaves the slot empty.
func (l *Local) Load() (*pattern.Regex, error) {
	if l.re != nil {
		return l.re, nil
	}
	re, err := l.p.build()
	if err != nil {
		return nil, err
	}
	l.re = re
	return re, nil
}

// Get is like Load but panics if the build fails.
func (l *Local) Get() *pattern.Regex {
	re, err := l.Load()
	if err != nil {
		l.p.fail(err)
	}
	return re
}

// Realized reports whether the slot holds an artifact.
func (l *Local) Realized() bool { return l.re != nil }

// Pattern returns the Pattern the slot belongs to.
func (l *Local) Pattern() *Pattern { return l.p }

// MatchString reports whether s contains a match.
func (l *Local) MatchString(s string) bool { return l.Get().MatchString(s) }

// FindString returns the leftmost match in s.
func (l *Local) FindString(s string) string { return l.Get().FindString(s) }
