package simulation

import (
	"github.com/lox/rangeval/internal/handclass"
)

// Action is a preflop decision
type Action int

const (
	Fold Action = iota
	Call
	Raise
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	default:
		return "Unknown"
	}
}

// ActionWeights holds the relative frequencies of each action for one
// hand class. Weights are nonnegative and need not sum to one; the
// probability of an action is its weight divided by the total.
type ActionWeights struct {
	Fold  float64
	Call  float64
	Raise float64
}

// Total returns the sum of the three weights
func (w ActionWeights) Total() float64 {
	return w.Fold + w.Call + w.Raise
}

// FoldProbability returns the fold weight as a fraction of the total,
// or defaultFoldProbability when the weights carry no mass.
func (w ActionWeights) FoldProbability() float64 {
	total := w.Total()
	if total <= 0 {
		return defaultFoldProbability
	}
	return w.Fold / total
}

// defaultFoldProbability stands in for an opponent class with no
// strategy entry. A modeling shortcut, matching the engine's treatment
// of unknown classes as mostly continuing.
const defaultFoldProbability = 0.2

// StrategyMap maps hand classes to action weights. A class that is
// absent, or present with zero total weight, is treated as 100% fold.
// The engine never mutates a caller-supplied map.
type StrategyMap map[handclass.Class]ActionWeights

// TotalMass returns the summed action weight across all classes
func (m StrategyMap) TotalMass() float64 {
	var total float64
	for _, w := range m {
		total += w.Total()
	}
	return total
}
