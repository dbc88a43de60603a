package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shizukutanaka/Hayate/internal/bench"
)

// TestDefaultConfigCoversEverySuiteName checks that the reference table has a
// dedicated coefficient for all 20 benchmarks, so the category defaults only
// ever apply to names from outside the suite.
func TestDefaultConfigCoversEverySuiteName(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.Len(t, cfg.Coefficients, 20)

	for _, w := range bench.Workloads {
		for _, c := range []bench.Category{bench.CategorySingle, bench.CategoryMulti} {
			name := w.Name(c)
			coeff, ok := cfg.Coefficients[name]
			assert.True(t, ok, "missing coefficient for %s", name)
			assert.Greater(t, coeff, 0.0, "coefficient for %s must be positive", name)
		}
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultConfig().Validate())
}

func TestCoefficientFor(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name      string
		benchName string
		want      float64
	}{
		{"single core table hit", "Single-Core Prime Generation", 0.00000001},
		{"multi core table hit", "Multi-Core Prime Generation", 0.0000002},
		{"fibonacci single", "Single-Core Fibonacci Recursive", 0.00012},
		{"fibonacci multi", "Multi-Core Fibonacci Memoized", 0.0024},
		{"nqueens single", "Single-Core N-Queens", 0.0007},
		{"nqueens multi", "Multi-Core N-Queens", 0.000035},
		{"monte carlo pi multi", "Multi-Core Monte Carlo π", 0.0000035},
		{"unknown single name", "Single-Core Quantum Annealing", 0.0001},
		{"unknown multi name", "Multi-Core Quantum Annealing", 0.00005},
		{"unknown without category prefix", "Unknown-Core Foo", 0.0001},
		{"empty name", "", 0.0001},
		{"multi prefix anywhere in name", "Experimental Multi-Core Foo", 0.00005},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfg.CoefficientFor(tt.benchName))
		})
	}
}

// Overrides replace table entries; the lookup must prefer the table over the
// prefix fallback even when an override targets a multi-core name.
func TestCoefficientForOverride(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Coefficients["Multi-Core Prime Generation"] = 0.5

	assert.Equal(t, 0.5, cfg.CoefficientFor("Multi-Core Prime Generation"))
	assert.Equal(t, 0.0000002, DefaultConfig().CoefficientFor("Multi-Core Prime Generation"))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"reference config", func(c *Config) {}, false},
		{"negative coefficient", func(c *Config) {
			c.Coefficients["Single-Core Prime Generation"] = -1
		}, true},
		{"negative default", func(c *Config) { c.DefaultMultiCoefficient = -0.1 }, true},
		{"negative weight", func(c *Config) { c.SingleCoreWeight = -0.35 }, true},
		{"zero normalization factor", func(c *Config) { c.NormalizationFactor = 0 }, true},
		{"no bands", func(c *Config) { c.Bands = nil }, true},
		{"unsorted bands", func(c *Config) {
			c.Bands[0], c.Bands[1] = c.Bands[1], c.Bands[0]
		}, true},
		{"weights above one are allowed", func(c *Config) {
			c.SingleCoreWeight = 2
			c.MultiCoreWeight = 3
		}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
