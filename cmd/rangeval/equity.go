package main

import (
	"fmt"
	"time"

	"github.com/lox/rangeval/internal/deck"
	"github.com/lox/rangeval/internal/equity"
	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/randutil"
)

type EquityCmd struct {
	Hero     string `arg:"" help:"Hero hole cards (e.g. 'AsKs')"`
	Opponent string `arg:"" help:"Opponent hole cards (e.g. '2h2d')"`
	Samples  int    `short:"n" default:"10000" help:"Number of sampled boards"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
}

func (c *EquityCmd) Run() error {
	hero, err := parseCombo(c.Hero)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	opp, err := parseCombo(c.Opponent)
	if err != nil {
		return fmt.Errorf("opponent: %w", err)
	}

	for _, pair := range [][2]deck.Card{
		{hero.Card1, opp.Card1}, {hero.Card1, opp.Card2},
		{hero.Card2, opp.Card1}, {hero.Card2, opp.Card2},
	} {
		if pair[0] == pair[1] {
			return fmt.Errorf("hands share card %s", pair[0])
		}
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res, err := equity.Estimate(randutil.New(seed), hero, opp, c.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) vs %s (%s), %d boards\n",
		hero, handclass.Of(hero.Card1, hero.Card2),
		opp, handclass.Of(opp.Card1, opp.Card2), res.Samples)
	fmt.Printf("Win: %.2f%%  Tie: %.2f%%  Lose: %.2f%%\n",
		pct(res.Wins, res.Samples), pct(res.Ties, res.Samples), pct(res.Losses, res.Samples))
	fmt.Printf("Equity: %.2f%%\n", res.Equity*100)
	return nil
}

func parseCombo(s string) (handclass.Combo, error) {
	cards, err := deck.ParseCards(s)
	if err != nil {
		return handclass.Combo{}, err
	}
	if len(cards) != 2 {
		return handclass.Combo{}, fmt.Errorf("expected exactly 2 cards, got %d", len(cards))
	}
	if cards[0] == cards[1] {
		return handclass.Combo{}, fmt.Errorf("duplicate card %s", cards[0])
	}
	return handclass.Combo{Card1: cards[0], Card2: cards[1]}, nil
}

func pct(n, total int) float64 {
	return float64(n) / float64(total) * 100
}
