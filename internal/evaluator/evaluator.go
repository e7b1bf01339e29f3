// Package evaluator ranks the best five-card poker hand obtainable from
// seven cards. Evaluation works on per-suit rank bitmasks so detecting
// multiples and straights is a handful of mask operations rather than
// sorting.
package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/lox/rangeval/internal/deck"
)

// Category enumerates hand categories ordered from weakest to strongest
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category description
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the outcome of ranking seven cards: the category of
// the best five-card hand plus its tiebreak ranks, most significant
// first. Two hands of equal category compare by tiebreaks element-wise,
// with missing trailing elements treated as zero.
type EvaluatedHand struct {
	Category  Category
	Tiebreaks []deck.Rank
}

// String returns a short description (e.g. "Full House (A over K)")
func (e EvaluatedHand) String() string {
	if len(e.Tiebreaks) == 0 {
		return e.Category.String()
	}
	return fmt.Sprintf("%s (%s high)", e.Category, e.Tiebreaks[0])
}

// Compare returns -1 if a ranks below b, 1 if above, 0 if equal.
// The primary key is the category ordinal, the secondary key is the
// lexicographic order of the tiebreak sequences.
func Compare(a, b EvaluatedHand) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}

	n := len(a.Tiebreaks)
	if len(b.Tiebreaks) > n {
		n = len(b.Tiebreaks)
	}
	for i := 0; i < n; i++ {
		var av, bv deck.Rank
		if i < len(a.Tiebreaks) {
			av = a.Tiebreaks[i]
		}
		if i < len(b.Tiebreaks) {
			bv = b.Tiebreaks[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// rankBit maps a rank to its bit position (deuce = bit 0, ace = bit 12)
func rankBit(r deck.Rank) uint16 {
	return 1 << (r - deck.Two)
}

func rankFromBit(bit int) deck.Rank {
	return deck.Rank(bit) + deck.Two
}

// Evaluate7 ranks the best five-card hand from exactly seven cards.
// Passing any other number of cards is a programming error and panics.
func Evaluate7(cards []deck.Card) EvaluatedHand {
	if len(cards) != 7 {
		panic(fmt.Sprintf("evaluator: Evaluate7 requires exactly 7 cards, got %d", len(cards)))
	}

	var suitMasks [4]uint16
	var rankMask uint16
	for _, card := range cards {
		suitMasks[card.Suit] |= rankBit(card.Rank)
		rankMask |= rankBit(card.Rank)
	}

	// Straight flush: at most one suit can hold five of seven cards
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) >= 5 {
			if high := straightHigh(suitMask); high > 0 {
				return EvaluatedHand{Category: StraightFlush, Tiebreaks: []deck.Rank{high}}
			}
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quadsMask != 0 {
		quad := highestRank(quadsMask)
		kicker := highestRank(rankMask &^ rankBit(quad))
		return EvaluatedHand{Category: FourOfAKind, Tiebreaks: []deck.Rank{quad, kicker}}
	}

	if tripsMask != 0 {
		trip := highestRank(tripsMask)
		// The pair may be a live pair or a second trip rank demoted to a
		// pair; two trips never both play.
		pairCandidates := pairsMask | (tripsMask &^ rankBit(trip))
		if pairCandidates != 0 {
			pair := highestRank(pairCandidates)
			return EvaluatedHand{Category: FullHouse, Tiebreaks: []deck.Rank{trip, pair}}
		}
	}

	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) >= 5 {
			return EvaluatedHand{Category: Flush, Tiebreaks: topRanks(suitMask, 5)}
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return EvaluatedHand{Category: Straight, Tiebreaks: []deck.Rank{high}}
	}

	if tripsMask != 0 {
		trip := highestRank(tripsMask)
		kickers := topRanks(rankMask&^rankBit(trip), 2)
		return EvaluatedHand{Category: ThreeOfAKind, Tiebreaks: append([]deck.Rank{trip}, kickers...)}
	}

	if bits.OnesCount16(pairsMask) >= 2 {
		highPair := highestRank(pairsMask)
		lowPair := highestRank(pairsMask &^ rankBit(highPair))
		kicker := highestRank(rankMask &^ (rankBit(highPair) | rankBit(lowPair)))
		return EvaluatedHand{Category: TwoPair, Tiebreaks: []deck.Rank{highPair, lowPair, kicker}}
	}

	if pairsMask != 0 {
		pair := highestRank(pairsMask)
		kickers := topRanks(rankMask&^rankBit(pair), 3)
		return EvaluatedHand{Category: OnePair, Tiebreaks: append([]deck.Rank{pair}, kickers...)}
	}

	return EvaluatedHand{Category: HighCard, Tiebreaks: topRanks(rankMask, 5)}
}

// straightHigh returns the top rank of the best straight in the mask,
// or 0 when no straight is present. The wheel reports Five as its top.
func straightHigh(mask uint16) deck.Rank {
	const wheelMask = 0x100F // A-2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade identifies five consecutive ranks in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := bits.Len16(seq) - 1
		return rankFromBit(low) + 4
	}

	if mask&wheelMask == wheelMask {
		return deck.Five
	}
	return 0
}

// highestRank returns the highest rank present in the bitmask.
// The mask must be non-empty.
func highestRank(mask uint16) deck.Rank {
	return rankFromBit(bits.Len16(mask) - 1)
}

// topRanks returns the n highest ranks in the mask, descending
func topRanks(mask uint16, n int) []deck.Rank {
	ranks := make([]deck.Rank, 0, n)
	for len(ranks) < n && mask != 0 {
		top := bits.Len16(mask) - 1
		ranks = append(ranks, rankFromBit(top))
		mask &^= 1 << top
	}
	return ranks
}
