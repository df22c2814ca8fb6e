package gocycle

import "fmt"

// -----------------------------------------------------------------------------
// Exported constants (magic numbers made visible)
// -----------------------------------------------------------------------------
const (
	// DefaultUnstablePeriod is the extra warm-up padding prepended to every
	// scan. Zero matches the classic lookbacks (32 for the adaptive average,
	// 63 for the cycle phase).
	DefaultUnstablePeriod = 0

	// DefaultMaxHistory is how many produced values the streaming consumers
	// retain for getters and plotting.
	DefaultMaxHistory = 256
)

// -----------------------------------------------------------------------------
// Config – central place for the engine's tunable parameters
// -----------------------------------------------------------------------------
type Config struct {
	// UnstablePeriod widens the warm-up window of both producers. The first
	// reported value moves back by this many samples, which pushes the
	// exponential carry-over further toward its settled state before any
	// output is emitted.
	UnstablePeriod int

	// MaxHistory caps the value history kept by the streaming consumers.
	// The batch operations ignore it.
	MaxHistory int
}

// DefaultConfig returns a sensible set of defaults for both producers.
func DefaultConfig() Config {
	return Config{
		UnstablePeriod: DefaultUnstablePeriod,
		MaxHistory:     DefaultMaxHistory,
	}
}

// -------------------------------------------------------------------
// Validate – checks that the configuration values are sensible.
// -------------------------------------------------------------------
func (c Config) Validate() error {
	if c.UnstablePeriod < 0 {
		return fmt.Errorf("UnstablePeriod must not be negative, got %d", c.UnstablePeriod)
	}

	// Upper-bound sanity check – any value that is absurdly large is treated
	// as an error (covers the wrap-around case when a negative literal is
	// forced into an unsigned type elsewhere).
	const maxReasonablePeriod = 1_000_000
	if c.UnstablePeriod > maxReasonablePeriod {
		return fmt.Errorf(
			"UnstablePeriod is unreasonably large (%d); must be ≤ %d",
			c.UnstablePeriod,
			maxReasonablePeriod,
		)
	}
	if c.MaxHistory < 1 {
		return fmt.Errorf("MaxHistory must be at least 1, got %d", c.MaxHistory)
	}
	if c.MaxHistory > maxReasonablePeriod {
		return fmt.Errorf(
			"MaxHistory is unreasonably large (%d); must be ≤ %d",
			c.MaxHistory,
			maxReasonablePeriod,
		)
	}
	return nil
}
