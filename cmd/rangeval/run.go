package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/simulation"
	"github.com/lox/rangeval/internal/strategy"
)

type RunCmd struct {
	Hero     string  `default:"tag" help:"Hero strategy: an HCL file path or a built-in name (maniac, station, nit, tag, loose)"`
	Opponent string  `default:"loose" help:"Opponent strategy: an HCL file path or a built-in name"`
	Sims     int     `default:"200" help:"Sampling effort per matchup"`
	Pot      float64 `default:"3" help:"Pot size before the decision"`
	Raise    float64 `default:"6" help:"Raise size"`
	Call     float64 `default:"2" help:"Call size"`
	Sample   string  `default:"all" enum:"all,bounded-50" help:"Class sample mode"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	Workers  int     `default:"0" help:"Parallel workers (0 = single-threaded)"`
	Top      int     `default:"20" help:"Per-class rows to display (0 for all)"`
	Verbose  bool    `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	classStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	partialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func (c *RunCmd) Run() error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hero, err := loadStrategy(c.Hero)
	if err != nil {
		return fmt.Errorf("loading hero strategy: %w", err)
	}
	opp, err := loadStrategy(c.Opponent)
	if err != nil {
		return fmt.Errorf("loading opponent strategy: %w", err)
	}

	engine, err := simulation.NewEngine(hero, opp, simulation.Config{
		SimsPerMatchup: c.Sims,
		PotSize:        c.Pot,
		RaiseSize:      c.Raise,
		CallSize:       c.Call,
		SampleMode:     simulation.SampleMode(c.Sample),
		Seed:           seed,
		Workers:        c.Workers,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	// Ctrl-C cancels between hand classes and reports partial results
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting simulation",
		"hero", c.Hero, "opponent", c.Opponent, "seed", seed, "sample", c.Sample)

	start := time.Now()
	res, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	c.printResult(res, time.Since(start), seed)
	return nil
}

// loadStrategy resolves a strategy argument: a path to an HCL file if
// one exists on disk, otherwise a built-in strategy name.
func loadStrategy(arg string) (simulation.StrategyMap, error) {
	if _, err := os.Stat(arg); err == nil {
		return strategy.LoadFile(arg)
	}
	return strategy.Builtin(arg)
}

func (c *RunCmd) printResult(res *simulation.Result, duration time.Duration, seed int64) {
	fmt.Println(headerStyle.Render("=== GLOBAL AVERAGE EV ==="))
	fmt.Printf("Classes: %d  Trials: %d  Time: %v  Seed: %d\n",
		len(res.Classes), res.Trials, duration.Round(time.Millisecond), seed)
	if res.Partial {
		fmt.Println(partialStyle.Render("PARTIAL RESULT: run was cancelled before covering every class"))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Fold\t%s\n", formatEV(res.Global.Fold))
	fmt.Fprintf(w, "Call\t%s\n", formatEV(res.Global.Call))
	fmt.Fprintf(w, "Raise\t%s\n", formatEV(res.Global.Raise))
	fmt.Fprintf(w, "Hero strategy\t%s\n", formatEV(res.GlobalMixed))
	w.Flush()

	classes := sortedByBestEV(res.Classes)
	limit := c.Top
	if limit <= 0 || limit > len(classes) {
		limit = len(classes)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("=== TOP %d CLASSES BY BEST EV ===", limit)))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Class\tFold\tCall\tRaise\tStrategy\tBest")
	for _, class := range classes[:limit] {
		ev := res.Classes[class]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			classStyle.Render(string(class)),
			formatEV(ev.Fold), formatEV(ev.Call), formatEV(ev.Raise),
			formatEV(res.Mixed[class]), ev.Best())
	}
	w.Flush()
}

// sortedByBestEV orders classes by their best action's EV, descending
func sortedByBestEV(classes map[handclass.Class]simulation.EV) []handclass.Class {
	best := func(ev simulation.EV) float64 {
		v := ev.Fold
		if ev.Call > v {
			v = ev.Call
		}
		if ev.Raise > v {
			v = ev.Raise
		}
		return v
	}

	sorted := make([]handclass.Class, 0, len(classes))
	for class := range classes {
		sorted = append(sorted, class)
	}
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := best(classes[sorted[i]]), best(classes[sorted[j]])
		if bi != bj {
			return bi > bj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

func formatEV(v float64) string {
	s := fmt.Sprintf("%+.3f", v)
	if v > 0 {
		return positiveStyle.Render(s)
	}
	if v < 0 {
		return negativeStyle.Render(s)
	}
	return s
}
