package simulation

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// SampleMode selects which hand classes a run iterates
type SampleMode string

const (
	// SampleAll iterates all 169 canonical classes
	SampleAll SampleMode = "all"

	// SampleBounded50 iterates a random subset of 50 classes
	SampleBounded50 SampleMode = "bounded-50"
)

const boundedSampleSize = 50

// Config holds the parameters for a simulation run
type Config struct {
	// SimsPerMatchup sets the sampling effort. It is the per-class trial
	// count at full 169-class coverage, scaled up when fewer classes are
	// sampled and clamped so total work stays bounded.
	SimsPerMatchup int

	// Pot arithmetic for the flat single-street model
	PotSize   float64
	RaiseSize float64
	CallSize  float64

	// SampleMode defaults to SampleAll when empty
	SampleMode SampleMode

	// Seed drives all randomness in the run. Identical seeds with
	// identical inputs and worker counts give identical results.
	Seed int64

	// Workers is the number of parallel class shards. Zero or one runs
	// single-threaded.
	Workers int

	// Logger receives per-class progress at debug level; nil disables
	Logger *log.Logger
}

// Validate checks the configuration invariants
func (c Config) Validate() error {
	if c.SimsPerMatchup < 1 {
		return fmt.Errorf("sims per matchup must be at least 1, got %d", c.SimsPerMatchup)
	}
	if c.PotSize <= 0 {
		return fmt.Errorf("pot size must be positive, got %g", c.PotSize)
	}
	if c.RaiseSize <= 0 {
		return fmt.Errorf("raise size must be positive, got %g", c.RaiseSize)
	}
	if c.CallSize <= 0 {
		return fmt.Errorf("call size must be positive, got %g", c.CallSize)
	}
	switch c.SampleMode {
	case "", SampleAll, SampleBounded50:
	default:
		return fmt.Errorf("unknown sample mode %q", c.SampleMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be nonnegative, got %d", c.Workers)
	}
	return nil
}

const (
	minTrialsPerClass = 40
	maxTrialsPerClass = 400

	minShowdownSamples = 80
	maxShowdownSamples = 500
)

// trialsPerClass derives the per-class trial budget: the configured
// effort scaled inversely with the number of classes sampled, so total
// work is roughly constant across sample modes, clamped to
// [40, 400] to bound configuration extremes.
func trialsPerClass(simsPerMatchup, classCount int) int {
	trials := simsPerMatchup * 169 / classCount
	return clamp(trials, minTrialsPerClass, maxTrialsPerClass)
}

// showdownSamples derives the equity estimation sample count per trial
func showdownSamples(simsPerMatchup int) int {
	return clamp(simsPerMatchup/2, minShowdownSamples, maxShowdownSamples)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
