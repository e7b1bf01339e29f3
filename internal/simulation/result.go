package simulation

import (
	"github.com/lox/rangeval/internal/handclass"
)

// EV holds the expected value of each preflop action
type EV struct {
	Fold  float64
	Call  float64
	Raise float64
}

// Best returns the action with the highest expected value
func (ev EV) Best() Action {
	best, value := Fold, ev.Fold
	if ev.Call > value {
		best, value = Call, ev.Call
	}
	if ev.Raise > value {
		best = Raise
	}
	return best
}

// Result aggregates a simulation run: the global per-action average EV
// across all trials and a per-class EV triple.
type Result struct {
	Global  EV
	Classes map[handclass.Class]EV

	// Mixed holds, per class, the hero's EV when playing their
	// submitted mixed strategy rather than any single action. A class
	// the hero strategy folds entirely scores zero.
	Mixed       map[handclass.Class]float64
	GlobalMixed float64

	// Trials is the total trial count across all completed classes
	Trials int

	// Partial is true when the run was cancelled before covering every
	// class in the sample set. Classes holds only completed classes.
	Partial bool
}

// evSums accumulates running EV totals for a set of trials
type evSums struct {
	fold   float64
	call   float64
	raise  float64
	mixed  float64
	trials int
}

func (s *evSums) add(fold, call, raise, mixed float64) {
	s.fold += fold
	s.call += call
	s.raise += raise
	s.mixed += mixed
	s.trials++
}

func (s *evSums) merge(other evSums) {
	s.fold += other.fold
	s.call += other.call
	s.raise += other.raise
	s.mixed += other.mixed
	s.trials += other.trials
}

func (s evSums) average() EV {
	if s.trials == 0 {
		return EV{}
	}
	n := float64(s.trials)
	return EV{Fold: s.fold / n, Call: s.call / n, Raise: s.raise / n}
}

func (s evSums) averageMixed() float64 {
	if s.trials == 0 {
		return 0
	}
	return s.mixed / float64(s.trials)
}
