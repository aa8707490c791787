package round

import "time"

// Timings are the three pauses of a round. They only pace the display;
// nothing is computed while waiting.
type Timings struct {
	Suspense time.Duration // guess submitted -> card drawn
	Reveal   time.Duration // card shown -> outcome
	Pause    time.Duration // win shown -> next round
}

type Config struct {
	Timings Timings

	// RNG seed for the shuffle (0 => crypto seeded)
	Seed int64
}

func DefaultTimings() Timings {
	return Timings{
		Suspense: 800 * time.Millisecond,
		Reveal:   800 * time.Millisecond,
		Pause:    1200 * time.Millisecond,
	}
}

func DefaultConfig() Config {
	return Config{Timings: DefaultTimings()}
}

func (c Config) validate() error {
	if c.Timings.Suspense < 0 || c.Timings.Reveal < 0 || c.Timings.Pause < 0 {
		return ErrInvalidConfig("timings must be >= 0")
	}
	return nil
}
