package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/jonwraymond/rxcache/pattern"
)

// Keyer derives the cache key for a source compiled under an option set.
//
// Contract:
// - Determinism: same inputs must produce same key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(source string, opts pattern.Options) string
}

// SourceKeyer keys entries by source text only. Options are ignored, so a
// source compiled once stays cached with the options of that first compile.
type SourceKeyer struct{}

// Key returns source unchanged.
func (SourceKeyer) Key(source string, _ pattern.Options) string { return source }

// OptionsKeyer keys entries by source and option set.
// Format: <hash>:<source>
// where hash is the first 16 hex characters of SHA-256(JSON(options)).
type OptionsKeyer struct{}

// Key returns the option digest joined to source.
func (OptionsKeyer) Key(source string, opts pattern.Options) string {
	// Options is a flat struct of bools and ints; encoding cannot fail and
	// field order is fixed.
	data, _ := json.Marshal(opts)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8]) + ":" + source
}

var (
	_ Keyer = SourceKeyer{}
	_ Keyer = OptionsKeyer{}
)
