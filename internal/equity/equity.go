// Package equity estimates showdown equity between two concrete
// hold'em hands by Monte Carlo sampling of random five-card boards.
package equity

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/rangeval/internal/deck"
	"github.com/lox/rangeval/internal/evaluator"
	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/sampler"
)

// ErrZeroSamples is returned when a caller requests an estimate over
// zero trials. Callers must guard the sample count; the estimator never
// silently substitutes a default.
var ErrZeroSamples = errors.New("sample count must be at least 1")

// Result holds win/tie/loss tallies for the hero over sampled boards
type Result struct {
	Wins    int
	Ties    int
	Losses  int
	Samples int

	// Equity is (wins + ties/2) / samples
	Equity float64
}

// Estimate runs simCount independent trials: deal a random five-card
// board excluding the four hole cards, evaluate both seven-card hands
// and tally the comparison for the hero.
func Estimate(rng *rand.Rand, hero, opp handclass.Combo, simCount int) (Result, error) {
	if simCount < 1 {
		return Result{}, ErrZeroSamples
	}

	blocked := deck.NewCardSet([]deck.Card{hero.Card1, hero.Card2, opp.Card1, opp.Card2})
	cards := deck.All()

	heroHand := make([]deck.Card, 7)
	oppHand := make([]deck.Card, 7)
	heroHand[0], heroHand[1] = hero.Card1, hero.Card2
	oppHand[0], oppHand[1] = opp.Card1, opp.Card2

	var res Result
	for i := 0; i < simCount; i++ {
		board, err := sampler.DrawWithoutReplacement(rng, cards, 5, blocked)
		if err != nil {
			return Result{}, fmt.Errorf("dealing board: %w", err)
		}

		copy(heroHand[2:], board)
		copy(oppHand[2:], board)

		switch evaluator.Compare(evaluator.Evaluate7(heroHand), evaluator.Evaluate7(oppHand)) {
		case 1:
			res.Wins++
		case 0:
			res.Ties++
		default:
			res.Losses++
		}
	}

	res.Samples = simCount
	res.Equity = (float64(res.Wins) + float64(res.Ties)/2.0) / float64(simCount)
	return res, nil
}
