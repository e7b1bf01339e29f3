package simulation

import (
	rand "math/rand/v2"
	"sort"

	"github.com/lox/rangeval/internal/handclass"
)

// classSelector draws opponent hand classes by weighted random choice,
// weight = the class's total action mass. This approximates "likelihood
// of holding this class" by how often the strategy acts with it, not by
// a range-conditioned posterior; a documented modeling simplification.
type classSelector struct {
	classes []handclass.Class
	prefix  []float64 // cumulative weights, same length as classes
	total   float64
}

// newClassSelector builds the prefix-sum table over every class the
// strategy gives nonzero mass, in canonical class order so seeded runs
// are stable across map iteration orders.
func newClassSelector(strategy StrategyMap) *classSelector {
	s := &classSelector{}
	var cum float64
	for _, class := range handclass.All() {
		w, ok := strategy[class]
		if !ok {
			continue
		}
		total := w.Total()
		if total <= 0 {
			continue
		}
		cum += total
		s.classes = append(s.classes, class)
		s.prefix = append(s.prefix, cum)
	}
	s.total = cum
	return s
}

func (s *classSelector) empty() bool {
	return len(s.classes) == 0
}

// pick returns a class drawn with probability proportional to its
// weight: binary search for the smallest index whose cumulative weight
// is >= the draw.
func (s *classSelector) pick(rng *rand.Rand) handclass.Class {
	draw := rng.Float64() * s.total
	idx := sort.SearchFloat64s(s.prefix, draw)
	if idx >= len(s.classes) {
		idx = len(s.classes) - 1
	}
	return s.classes[idx]
}
