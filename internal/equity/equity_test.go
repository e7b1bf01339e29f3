package equity

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/rangeval/internal/deck"
	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/randutil"
)

func combo(t *testing.T, cards string) handclass.Combo {
	t.Helper()
	parsed := deck.MustParseCards(cards)
	if len(parsed) != 2 {
		t.Fatalf("combo %q must be two cards", cards)
	}
	return handclass.Combo{Card1: parsed[0], Card2: parsed[1]}
}

func TestEstimateKnownMatchups(t *testing.T) {
	tests := []struct {
		name     string
		hero     string
		opp      string
		expected float64 // approximate hero equity
	}{
		{name: "AKs vs 22 coinflip", hero: "AsKs", opp: "2h2d", expected: 0.52},
		{name: "AA vs KK dominates", hero: "AsAh", opp: "KsKh", expected: 0.82},
		{name: "72o vs AA crushed", hero: "7h2c", opp: "AsAd", expected: 0.12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := randutil.New(12345)
			res, err := Estimate(rng, combo(t, tt.hero), combo(t, tt.opp), 2000)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(res.Equity-tt.expected) > 0.03 {
				t.Errorf("equity = %.3f, want %.3f ± 0.03", res.Equity, tt.expected)
			}
		})
	}
}

func TestEstimateTalliesConsistent(t *testing.T) {
	rng := randutil.New(7)
	res, err := Estimate(rng, combo(t, "AsKs"), combo(t, "QhQd"), 500)
	if err != nil {
		t.Fatal(err)
	}
	if res.Wins+res.Ties+res.Losses != res.Samples {
		t.Errorf("tallies %d+%d+%d do not sum to %d samples", res.Wins, res.Ties, res.Losses, res.Samples)
	}
	if res.Samples != 500 {
		t.Errorf("samples = %d, want 500", res.Samples)
	}
	want := (float64(res.Wins) + float64(res.Ties)/2) / 500
	if math.Abs(res.Equity-want) > 1e-12 {
		t.Errorf("equity %.6f inconsistent with tallies (want %.6f)", res.Equity, want)
	}
}

func TestEstimateMirrorMatchupIsFair(t *testing.T) {
	// Same class, disjoint suits: equity should hover around 50%.
	rng := randutil.New(99)
	res, err := Estimate(rng, combo(t, "AsKs"), combo(t, "AhKh"), 2000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Equity-0.5) > 0.03 {
		t.Errorf("mirror matchup equity = %.3f, want ~0.5", res.Equity)
	}
}

func TestEstimateZeroSamples(t *testing.T) {
	rng := randutil.New(1)
	_, err := Estimate(rng, combo(t, "AsKs"), combo(t, "2h2d"), 0)
	if !errors.Is(err, ErrZeroSamples) {
		t.Fatalf("expected ErrZeroSamples, got %v", err)
	}
}
