// Package strategy loads preflop strategy maps, either from HCL files
// or from a small set of built-in archetypes.
package strategy

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/rangeval/internal/handclass"
	"github.com/lox/rangeval/internal/simulation"
)

// file is the HCL document shape:
//
//	hand "AKs" {
//	  fold  = 0.1
//	  call  = 0.3
//	  raise = 0.6
//	}
type file struct {
	Hands []handBlock `hcl:"hand,block"`
}

type handBlock struct {
	Class string  `hcl:"class,label"`
	Fold  float64 `hcl:"fold,optional"`
	Call  float64 `hcl:"call,optional"`
	Raise float64 `hcl:"raise,optional"`
}

// LoadFile parses an HCL strategy file into a StrategyMap. Classes not
// mentioned in the file are absent from the map, which the engine
// treats as 100% fold.
func LoadFile(filename string) (simulation.StrategyMap, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return fromBlocks(f.Hands)
}

// LoadBytes parses an in-memory HCL strategy document
func LoadBytes(src []byte, filename string) (simulation.StrategyMap, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var f file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return fromBlocks(f.Hands)
}

func fromBlocks(blocks []handBlock) (simulation.StrategyMap, error) {
	m := make(simulation.StrategyMap, len(blocks))
	for _, block := range blocks {
		class, err := handclass.Parse(block.Class)
		if err != nil {
			return nil, err
		}
		if _, exists := m[class]; exists {
			return nil, fmt.Errorf("duplicate hand block %q", block.Class)
		}
		if block.Fold < 0 || block.Call < 0 || block.Raise < 0 {
			return nil, fmt.Errorf("hand %q: weights must be nonnegative", block.Class)
		}
		m[class] = simulation.ActionWeights{
			Fold:  block.Fold,
			Call:  block.Call,
			Raise: block.Raise,
		}
	}
	return m, nil
}

// Builtin returns one of the named built-in strategies, derived from
// the hand percentile rankings.
func Builtin(name string) (simulation.StrategyMap, error) {
	switch name {
	case "maniac":
		// Raises the entire grid
		return uniform(simulation.ActionWeights{Raise: 1}), nil
	case "station":
		// Calls the entire grid
		return uniform(simulation.ActionWeights{Call: 1}), nil
	case "nit":
		// Plays only the top of the grid, raise-heavy
		return thresholds(0.94, 0.85), nil
	case "tag":
		// Tight-aggressive: wider than a nit, still fold-dominant
		return thresholds(0.85, 0.70), nil
	case "loose":
		// Continues proportionally to hand strength
		return percentileWeighted(), nil
	default:
		return nil, fmt.Errorf("unknown built-in strategy %q (have: maniac, station, nit, tag, loose)", name)
	}
}

// BuiltinNames lists the recognised built-in strategy names
func BuiltinNames() []string {
	return []string{"maniac", "station", "nit", "tag", "loose"}
}

func uniform(w simulation.ActionWeights) simulation.StrategyMap {
	m := make(simulation.StrategyMap, 169)
	for _, class := range handclass.All() {
		m[class] = w
	}
	return m
}

// thresholds raises above raiseAt, calls between callAt and raiseAt,
// and folds the rest.
func thresholds(raiseAt, callAt float64) simulation.StrategyMap {
	m := make(simulation.StrategyMap, 169)
	for _, class := range handclass.All() {
		p := handRankings[class]
		switch {
		case p >= raiseAt:
			m[class] = simulation.ActionWeights{Raise: 1}
		case p >= callAt:
			m[class] = simulation.ActionWeights{Call: 1}
		default:
			m[class] = simulation.ActionWeights{Fold: 1}
		}
	}
	return m
}

// percentileWeighted splits each class's mass by its percentile:
// strong hands mostly raise, weak hands mostly fold.
func percentileWeighted() simulation.StrategyMap {
	m := make(simulation.StrategyMap, 169)
	for _, class := range handclass.All() {
		p := handRankings[class]
		m[class] = simulation.ActionWeights{
			Fold:  1 - p,
			Call:  p * (1 - p),
			Raise: p * p,
		}
	}
	return m
}
