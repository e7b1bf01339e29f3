// Package simulation estimates per-class preflop EV by Monte Carlo:
// for each starting-hand class it samples concrete matchups against a
// weighted opponent range, estimates showdown equity, and applies a
// flat single-street pot model.
package simulation

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/rangeval/internal/equity"
	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/randutil"
)

// ErrEmptyOpponentRange is returned when the opponent strategy carries
// no action mass at all, leaving nothing to sample holdings from.
var ErrEmptyOpponentRange = errors.New("opponent strategy has no action mass")

// maxClassRetries bounds the blocker-collision resample loop. With two
// hero blockers every class keeps at least one legal combo, so the
// bound exists only to turn an impossible state into a clear error.
const maxClassRetries = 1000

// Engine runs EV simulations for a fixed pair of strategies
type Engine struct {
	hero       StrategyMap
	opp        StrategyMap
	cfg        Config
	selector   *classSelector
	expansions map[handclass.Class][]handclass.Combo
	showdown   int
}

// NewEngine validates the configuration and precomputes the combo
// expansions and the opponent prefix-sum table.
func NewEngine(hero, opp StrategyMap, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.SampleMode == "" {
		cfg.SampleMode = SampleAll
	}

	selector := newClassSelector(opp)
	if selector.empty() {
		return nil, ErrEmptyOpponentRange
	}

	expansions := make(map[handclass.Class][]handclass.Combo, 169)
	for _, class := range handclass.All() {
		combos, err := handclass.Expand(class)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", class, err)
		}
		expansions[class] = combos
	}

	return &Engine{
		hero:       hero,
		opp:        opp,
		cfg:        cfg,
		selector:   selector,
		expansions: expansions,
		showdown:   showdownSamples(cfg.SimsPerMatchup),
	}, nil
}

// Run executes the simulation. Cancellation is honoured between hand
// classes: a cancelled run returns the classes completed so far with
// Partial set, never a silently truncated full result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	classes := e.sampleClasses()
	trials := trialsPerClass(e.cfg.SimsPerMatchup, len(classes))

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(classes) {
		workers = len(classes)
	}

	perClass := make(map[handclass.Class]evSums, len(classes))
	var global evSums

	if workers == 1 {
		rng := randutil.Fork(e.cfg.Seed, 0)
		for _, class := range classes {
			if ctx.Err() != nil {
				break
			}
			sums, err := e.runClass(rng, class, trials)
			if err != nil {
				return nil, err
			}
			perClass[class] = sums
			global.merge(sums)
			e.logClass(class, sums)
		}
	} else {
		// Shard classes round-robin; each worker owns a private
		// accumulator and an independently derived generator, combined
		// by a final reduction.
		type workerAccum struct {
			classes map[handclass.Class]evSums
		}
		accums := make([]workerAccum, workers)

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				rng := randutil.Fork(e.cfg.Seed, w)
				acc := workerAccum{classes: make(map[handclass.Class]evSums)}
				for i := w; i < len(classes); i += workers {
					if gctx.Err() != nil {
						break
					}
					sums, err := e.runClass(rng, classes[i], trials)
					if err != nil {
						return err
					}
					acc.classes[classes[i]] = sums
					e.logClass(classes[i], sums)
				}
				accums[w] = acc
				return nil
			})
		}
		if err := g.Wait(); err != nil && ctx.Err() == nil {
			return nil, err
		}

		for _, acc := range accums {
			for class, sums := range acc.classes {
				perClass[class] = sums
				global.merge(sums)
			}
		}
	}

	res := &Result{
		Global:      global.average(),
		GlobalMixed: global.averageMixed(),
		Classes:     make(map[handclass.Class]EV, len(perClass)),
		Mixed:       make(map[handclass.Class]float64, len(perClass)),
		Trials:      global.trials,
		Partial:     ctx.Err() != nil && len(perClass) < len(classes),
	}
	for class, sums := range perClass {
		res.Classes[class] = sums.average()
		res.Mixed[class] = sums.averageMixed()
	}
	return res, nil
}

// sampleClasses returns the classes this run covers, either the full
// canonical set or a seeded random subset of 50.
func (e *Engine) sampleClasses() []handclass.Class {
	all := handclass.All()
	if e.cfg.SampleMode != SampleBounded50 {
		return all
	}

	rng := randutil.New(e.cfg.Seed)
	perm := rng.Perm(len(all))
	subset := make([]handclass.Class, boundedSampleSize)
	for i := range subset {
		subset[i] = all[perm[i]]
	}
	return subset
}

// runClass runs the trial loop for one hero hand class
func (e *Engine) runClass(rng *rand.Rand, class handclass.Class, trials int) (evSums, error) {
	var sums evSums
	heroCombos := e.expansions[class]
	legal := make([]handclass.Combo, 0, 12)

	for trial := 0; trial < trials; trial++ {
		hero := heroCombos[rng.IntN(len(heroCombos))]

		oppClass, oppCombo, err := e.sampleOpponent(rng, hero, legal)
		if err != nil {
			return evSums{}, err
		}

		eq, err := equity.Estimate(rng, hero, oppCombo, e.showdown)
		if err != nil {
			return evSums{}, fmt.Errorf("class %s: %w", class, err)
		}

		pFold := defaultFoldProbability
		if w, ok := e.opp[oppClass]; ok {
			pFold = w.FoldProbability()
		}

		// Flat single-street pot model. Folding forfeits no further
		// investment, so EV(Fold) is the zero baseline.
		pot, raise, call := e.cfg.PotSize, e.cfg.RaiseSize, e.cfg.CallSize
		evCall := eq.Equity*(pot+2*call) - call
		evRaise := pFold*pot + (1-pFold)*(eq.Equity*(pot+raise+call)-raise)

		// EV of the hero actually playing their mixed strategy for this
		// class; an absent or zero-weight class folds and scores zero.
		var evMixed float64
		if hw, ok := e.hero[class]; ok {
			if total := hw.Total(); total > 0 {
				evMixed = (hw.Call*evCall + hw.Raise*evRaise) / total
			}
		}

		sums.add(0, evCall, evRaise, evMixed)
	}

	return sums, nil
}

// sampleOpponent draws an opponent class by weighted choice and a
// concrete combo from it, uniform among combos not colliding with the
// hero's hole cards. A fully blocked class is redrawn without charging
// the trial budget.
func (e *Engine) sampleOpponent(rng *rand.Rand, hero handclass.Combo, legal []handclass.Combo) (handclass.Class, handclass.Combo, error) {
	for attempt := 0; attempt < maxClassRetries; attempt++ {
		oppClass := e.selector.pick(rng)

		legal = legal[:0]
		for _, combo := range e.expansions[oppClass] {
			if collides(combo, hero) {
				continue
			}
			legal = append(legal, combo)
		}
		if len(legal) == 0 {
			continue
		}

		return oppClass, legal[rng.IntN(len(legal))], nil
	}
	return "", handclass.Combo{}, fmt.Errorf("no legal opponent combo after %d attempts", maxClassRetries)
}

func collides(a, b handclass.Combo) bool {
	return a.Card1 == b.Card1 || a.Card1 == b.Card2 || a.Card2 == b.Card1 || a.Card2 == b.Card2
}

func (e *Engine) logClass(class handclass.Class, sums evSums) {
	if e.cfg.Logger == nil {
		return
	}
	ev := sums.average()
	e.cfg.Logger.Debug("class complete",
		"class", class,
		"trials", sums.trials,
		"evCall", ev.Call,
		"evRaise", ev.Raise,
	)
}
