package simulation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/randutil"
)

func uniformStrategy(w ActionWeights) StrategyMap {
	m := make(StrategyMap, 169)
	for _, class := range handclass.All() {
		m[class] = w
	}
	return m
}

func testConfig() Config {
	return Config{
		SimsPerMatchup: 1,
		PotSize:        3,
		RaiseSize:      6,
		CallSize:       2,
		SampleMode:     SampleBounded50,
		Seed:           12345,
	}
}

func TestRunAllRaiseFoldEVIsZero(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Raise: 1})
	opp := uniformStrategy(ActionWeights{Raise: 1})

	engine, err := NewEngine(hero, opp, testConfig())
	require.NoError(t, err)

	res, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.False(t, res.Partial)
	require.Len(t, res.Classes, 50)

	assert.Zero(t, res.Global.Fold)
	for class, ev := range res.Classes {
		assert.Zero(t, ev.Fold, "class %s", class)
	}
}

func TestRunMixedEVFollowsHeroStrategy(t *testing.T) {
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})

	// A pure-raise hero plays raise every trial, so the mixed EV must
	// equal the raise EV per class; a pure-fold hero always scores zero.
	raiser, err := NewEngine(uniformStrategy(ActionWeights{Raise: 1}), opp, testConfig())
	require.NoError(t, err)
	res, err := raiser.Run(context.Background())
	require.NoError(t, err)
	for class, ev := range res.Classes {
		assert.InDelta(t, ev.Raise, res.Mixed[class], 1e-9, "class %s", class)
	}

	folder, err := NewEngine(uniformStrategy(ActionWeights{Fold: 1}), opp, testConfig())
	require.NoError(t, err)
	res, err = folder.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.GlobalMixed)
	for class, mixed := range res.Mixed {
		assert.Zero(t, mixed, "class %s", class)
	}
}

func TestRunGlobalEVMatchesClassAverage(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})

	engine, err := NewEngine(hero, opp, testConfig())
	require.NoError(t, err)

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	// Every class runs the same trial count, so the global average must
	// equal the mean of the class averages.
	var sumCall float64
	for _, ev := range res.Classes {
		sumCall += ev.Call
	}
	assert.InDelta(t, sumCall/float64(len(res.Classes)), res.Global.Call, 1e-9)
	assert.Equal(t, 50*trialsPerClass(1, 50), res.Trials)
}

func TestRunStrongClassesBeatWeakOnes(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Call: 1})
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})

	cfg := testConfig()
	cfg.SampleMode = SampleAll
	cfg.SimsPerMatchup = 10

	engine, err := NewEngine(hero, opp, cfg)
	require.NoError(t, err)

	res, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Classes, 169)

	assert.Greater(t, res.Classes["AA"].Call, res.Classes["72o"].Call,
		"aces should out-earn seven-deuce")
	assert.Greater(t, res.Classes["AA"].Raise, res.Classes["32o"].Raise)
}

func TestRunCancelledContextReturnsPartial(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Call: 1})
	opp := uniformStrategy(ActionWeights{Call: 1})

	engine, err := NewEngine(hero, opp, testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Less(t, len(res.Classes), 50)
}

func TestRunParallelMatchesClassCoverage(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Call: 1, Raise: 1})
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1})

	cfg := testConfig()
	cfg.Workers = 4

	engine, err := NewEngine(hero, opp, cfg)
	require.NoError(t, err)

	res, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.False(t, res.Partial)
	assert.Len(t, res.Classes, 50)
	assert.Equal(t, 50*trialsPerClass(1, 50), res.Trials)
}

func TestRunSeededRunsAreReproducible(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Call: 1})
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 2, Raise: 1})

	run := func() *Result {
		engine, err := NewEngine(hero, opp, testConfig())
		require.NoError(t, err)
		res, err := engine.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	first, second := run(), run()
	assert.Equal(t, first.Global, second.Global)
	assert.Equal(t, first.Classes, second.Classes)
}

func TestRunEmptyOpponentRange(t *testing.T) {
	hero := uniformStrategy(ActionWeights{Call: 1})
	_, err := NewEngine(hero, StrategyMap{}, testConfig())
	assert.ErrorIs(t, err, ErrEmptyOpponentRange)

	// Zero-weight entries carry no mass either
	_, err = NewEngine(hero, uniformStrategy(ActionWeights{}), testConfig())
	assert.ErrorIs(t, err, ErrEmptyOpponentRange)
}

func TestSampleOpponentNeverCollides(t *testing.T) {
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})
	engine, err := NewEngine(opp, opp, testConfig())
	require.NoError(t, err)

	rng := randutil.New(42)
	heroCombos, err := handclass.Expand("AKs")
	require.NoError(t, err)

	legal := make([]handclass.Combo, 0, 12)
	for trial := 0; trial < 5000; trial++ {
		hero := heroCombos[rng.IntN(len(heroCombos))]
		_, oppCombo, err := engine.sampleOpponent(rng, hero, legal)
		require.NoError(t, err)
		assert.False(t, collides(oppCombo, hero),
			"opponent %s shares a card with hero %s", oppCombo, hero)
	}
}

func TestHigherEffortReducesVariance(t *testing.T) {
	if testing.Short() {
		t.Skip("variance comparison is expensive")
	}

	hero := uniformStrategy(ActionWeights{Call: 1})
	opp := uniformStrategy(ActionWeights{Fold: 1, Call: 1, Raise: 1})

	spread := func(sims int) float64 {
		var values []float64
		for seed := int64(1); seed <= 4; seed++ {
			cfg := testConfig()
			cfg.SimsPerMatchup = sims
			cfg.Seed = seed
			engine, err := NewEngine(hero, opp, cfg)
			require.NoError(t, err)
			res, err := engine.Run(context.Background())
			require.NoError(t, err)
			values = append(values, res.Global.Call)
		}

		var mean float64
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))
		var variance float64
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		return math.Sqrt(variance / float64(len(values)))
	}

	assert.Less(t, spread(120), spread(1), "more sampling effort should tighten the global EV")
}
