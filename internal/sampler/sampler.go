// Package sampler draws distinct cards uniformly at random from a deck
// while honouring a blocked-card set.
package sampler

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/lox/rangeval/internal/deck"
)

// ErrInsufficientCards is returned when fewer unblocked cards remain
// than were requested. This is a caller misconfiguration: with a full
// deck and at most nine blocked or drawn cards it cannot occur.
var ErrInsufficientCards = errors.New("insufficient cards")

// Slice pool for reusable candidate allocations across trials
var candidatesPool = sync.Pool{
	New: func() interface{} {
		s := make([]deck.Card, 0, 52)
		return &s
	},
}

// DrawWithoutReplacement draws count distinct cards from cards, excluding
// any card in blocked, such that every legal subset of that size is
// equally likely. The result is freshly allocated; the input slice is
// never mutated.
func DrawWithoutReplacement(rng *rand.Rand, cards []deck.Card, count int, blocked deck.CardSet) ([]deck.Card, error) {
	candidatesPtr := candidatesPool.Get().(*[]deck.Card)
	candidates := (*candidatesPtr)[:0]
	for _, card := range cards {
		if !blocked.Contains(card) {
			candidates = append(candidates, card)
		}
	}

	if len(candidates) < count {
		*candidatesPtr = candidates
		candidatesPool.Put(candidatesPtr)
		return nil, fmt.Errorf("%w: need %d, have %d unblocked", ErrInsufficientCards, count, len(candidates))
	}

	// Partial Fisher-Yates: swap each pick to the tail so it cannot be
	// selected again.
	drawn := make([]deck.Card, count)
	for i := 0; i < count; i++ {
		idx := rng.IntN(len(candidates) - i)
		drawn[i] = candidates[idx]
		last := len(candidates) - 1 - i
		candidates[idx], candidates[last] = candidates[last], candidates[idx]
	}

	*candidatesPtr = candidates
	candidatesPool.Put(candidatesPtr)
	return drawn, nil
}
