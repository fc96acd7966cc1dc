package cache

import "fmt"

// KeyMode selects how cache keys are derived.
type KeyMode string

const (
	// KeyModeSource keys by source text only (SourceKeyer).
	KeyModeSource KeyMode = "source"
	// KeyModeOptions keys by source and option set (OptionsKeyer).
	KeyModeOptions KeyMode = "options"
)

// DefaultCapacity is the capacity used by DefaultConfig.
const DefaultCapacity = 128

// Config configures a PatternCache.
type Config struct {
	// Capacity is the maximum number of cached patterns. Must be at least 1.
	Capacity int

	// KeyMode selects the Keyer. Empty means KeyModeSource.
	KeyMode KeyMode
}

// DefaultConfig returns the default cache configuration.
// Capacity: 128, KeyMode: source
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		KeyMode:  KeyModeSource,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidCapacity, c.Capacity)
	}
	if _, err := c.keyer(); err != nil {
		return err
	}
	return nil
}

func (c Config) keyer() (Keyer, error) {
	switch c.KeyMode {
	case KeyModeSource, "":
		return SourceKeyer{}, nil
	case KeyModeOptions:
		return OptionsKeyer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyMode, c.KeyMode)
	}
}

// NewFromConfig creates a PatternCache from cfg. Options are applied after
// the configuration, so WithKeyer overrides KeyMode.
func NewFromConfig(cfg Config, opts ...Option) (*PatternCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	keyer, _ := cfg.keyer()
	return New(cfg.Capacity, append([]Option{WithKeyer(keyer)}, opts...)...)
}
