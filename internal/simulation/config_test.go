package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialsPerClassClamps(t *testing.T) {
	// Full coverage: effort maps through directly inside the clamp
	assert.Equal(t, 100, trialsPerClass(100, 169))

	// Extremes are bounded regardless of configuration
	assert.Equal(t, 40, trialsPerClass(1, 169))
	assert.Equal(t, 400, trialsPerClass(100000, 169))

	// Fewer classes scale the per-class budget up
	assert.Equal(t, 338, trialsPerClass(100, 50))
	assert.Equal(t, 400, trialsPerClass(200, 50))
}

func TestShowdownSamplesClamps(t *testing.T) {
	assert.Equal(t, 80, showdownSamples(1))
	assert.Equal(t, 80, showdownSamples(160))
	assert.Equal(t, 250, showdownSamples(500))
	assert.Equal(t, 500, showdownSamples(9999))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{SimsPerMatchup: 100, PotSize: 3, RaiseSize: 6, CallSize: 2}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sims", func(c *Config) { c.SimsPerMatchup = 0 }},
		{"zero pot", func(c *Config) { c.PotSize = 0 }},
		{"negative raise", func(c *Config) { c.RaiseSize = -1 }},
		{"zero call", func(c *Config) { c.CallSize = 0 }},
		{"bad sample mode", func(c *Config) { c.SampleMode = "some" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestActionWeightsFoldProbability(t *testing.T) {
	assert.InDelta(t, 0.25, ActionWeights{Fold: 1, Call: 1, Raise: 2}.FoldProbability(), 1e-9)
	assert.InDelta(t, 1.0, ActionWeights{Fold: 3}.FoldProbability(), 1e-9)
	assert.InDelta(t, defaultFoldProbability, ActionWeights{}.FoldProbability(), 1e-9)
}

func TestEVBest(t *testing.T) {
	assert.Equal(t, Raise, EV{Fold: 0, Call: 1, Raise: 2}.Best())
	assert.Equal(t, Call, EV{Fold: 0, Call: 1, Raise: -1}.Best())
	assert.Equal(t, Fold, EV{Fold: 0, Call: -0.5, Raise: -1}.Best())
}
