// Package handclass implements the 169 canonical preflop starting-hand
// categories: 13 pocket pairs, 78 suited non-pairs and 78 offsuit
// non-pairs. A class key is two rank characters, higher rank first,
// with an 's' (suited) or 'o' (offsuit) suffix; a bare key is a pair
// (e.g. "AA", "AKs", "T9o").
package handclass

import (
	"errors"
	"fmt"

	"github.com/lox/rangeval/internal/deck"
)

// ErrInvalidClass is returned when a key does not match the canonical grammar.
var ErrInvalidClass = errors.New("invalid hand class")

// Class is a canonical starting-hand class key
type Class string

// Combo is an unordered pair of distinct hole cards belonging to one class
type Combo struct {
	Card1 deck.Card
	Card2 deck.Card
}

// String returns the combo in standard notation (e.g. "AsKh")
func (c Combo) String() string {
	return fmt.Sprintf("%s%s", c.Card1, c.Card2)
}

var suits = []deck.Suit{deck.Spades, deck.Hearts, deck.Diamonds, deck.Clubs}

// All returns the 169 canonical classes: pairs first, then for each
// rank pair the suited and offsuit classes, high ranks first.
func All() []Class {
	classes := make([]Class, 0, 169)
	for hi := deck.Ace; hi >= deck.Two; hi-- {
		classes = append(classes, Class(hi.String()+hi.String()))
	}
	for hi := deck.Ace; hi > deck.Two; hi-- {
		for lo := hi - 1; lo >= deck.Two; lo-- {
			classes = append(classes, Class(hi.String()+lo.String()+"s"))
			classes = append(classes, Class(hi.String()+lo.String()+"o"))
		}
	}
	return classes
}

// Parse validates a key against the canonical grammar and returns it as a Class
func Parse(key string) (Class, error) {
	if _, _, _, err := components(key); err != nil {
		return "", err
	}
	return Class(key), nil
}

// components splits a key into its high rank, low rank and suitedness.
// Pairs report suited=false.
func components(key string) (hi, lo deck.Rank, suited bool, err error) {
	if len(key) < 2 || len(key) > 3 {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidClass, key)
	}

	hi, err = rankFromChar(key[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidClass, key)
	}
	lo, err = rankFromChar(key[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidClass, key)
	}

	if len(key) == 2 {
		if hi != lo {
			return 0, 0, false, fmt.Errorf("%w: %q (non-pair needs 's' or 'o' suffix)", ErrInvalidClass, key)
		}
		return hi, lo, false, nil
	}

	if hi <= lo {
		return 0, 0, false, fmt.Errorf("%w: %q (higher rank must come first)", ErrInvalidClass, key)
	}
	switch key[2] {
	case 's':
		suited = true
	case 'o':
		suited = false
	default:
		return 0, 0, false, fmt.Errorf("%w: %q (suffix must be 's' or 'o')", ErrInvalidClass, key)
	}
	return hi, lo, suited, nil
}

// Expand returns every concrete two-card combination belonging to the
// class: 6 for a pair, 4 for a suited class, 12 for an offsuit class.
func Expand(c Class) ([]Combo, error) {
	hi, lo, suited, err := components(string(c))
	if err != nil {
		return nil, err
	}

	if hi == lo {
		// All 2-subsets of the four suits
		combos := make([]Combo, 0, 6)
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				combos = append(combos, Combo{
					Card1: deck.NewCard(suits[i], hi),
					Card2: deck.NewCard(suits[j], hi),
				})
			}
		}
		return combos, nil
	}

	if suited {
		combos := make([]Combo, 0, 4)
		for _, s := range suits {
			combos = append(combos, Combo{
				Card1: deck.NewCard(s, hi),
				Card2: deck.NewCard(s, lo),
			})
		}
		return combos, nil
	}

	// Offsuit: every ordered suit pair with differing suits
	combos := make([]Combo, 0, 12)
	for _, s1 := range suits {
		for _, s2 := range suits {
			if s1 == s2 {
				continue
			}
			combos = append(combos, Combo{
				Card1: deck.NewCard(s1, hi),
				Card2: deck.NewCard(s2, lo),
			})
		}
	}
	return combos, nil
}

// Of returns the class a concrete two-card holding belongs to
func Of(card1, card2 deck.Card) Class {
	hi, lo := card1.Rank, card2.Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return Class(hi.String() + lo.String())
	}
	if card1.Suit == card2.Suit {
		return Class(hi.String() + lo.String() + "s")
	}
	return Class(hi.String() + lo.String() + "o")
}

func rankFromChar(c byte) (deck.Rank, error) {
	switch c {
	case 'A':
		return deck.Ace, nil
	case 'K':
		return deck.King, nil
	case 'Q':
		return deck.Queen, nil
	case 'J':
		return deck.Jack, nil
	case 'T':
		return deck.Ten, nil
	case '9':
		return deck.Nine, nil
	case '8':
		return deck.Eight, nil
	case '7':
		return deck.Seven, nil
	case '6':
		return deck.Six, nil
	case '5':
		return deck.Five, nil
	case '4':
		return deck.Four, nil
	case '3':
		return deck.Three, nil
	case '2':
		return deck.Two, nil
	default:
		return 0, fmt.Errorf("unknown rank '%c'", c)
	}
}
