package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{"slow", TierSlow, false},
		{"mid", TierMid, false},
		{"medium", TierMid, false},
		{"flagship", TierFlagship, false},
		{"high", TierFlagship, false},
		{"  Flagship  ", TierFlagship, false},
		{"SLOW", TierSlow, false},
		{"", TierMid, true},
		{"turbo", TierMid, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "slow", TierSlow.String())
	assert.Equal(t, "mid", TierMid.String())
	assert.Equal(t, "flagship", TierFlagship.String())
}

func TestTierRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tier := range []Tier{TierSlow, TierMid, TierFlagship} {
		parsed, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}
}

// Higher tiers never shrink a workload.
func TestParamsForMonotonic(t *testing.T) {
	t.Parallel()

	slow := ParamsFor(TierSlow)
	mid := ParamsFor(TierMid)
	flagship := ParamsFor(TierFlagship)

	type dim struct {
		name                string
		slow, mid, flagship int
	}
	dims := []dim{
		{"prime range", slow.PrimeRange, mid.PrimeRange, flagship.PrimeRange},
		{"fibonacci end", slow.FibonacciEnd, mid.FibonacciEnd, flagship.FibonacciEnd},
		{"matrix size", slow.MatrixSize, mid.MatrixSize, flagship.MatrixSize},
		{"hash data", slow.HashDataSizeMB, mid.HashDataSizeMB, flagship.HashDataSizeMB},
		{"string count", slow.StringCount, mid.StringCount, flagship.StringCount},
		{"ray width", slow.RayTracingWidth, mid.RayTracingWidth, flagship.RayTracingWidth},
		{"ray depth", slow.RayTracingDepth, mid.RayTracingDepth, flagship.RayTracingDepth},
		{"compression data", slow.CompressionDataSizeMB, mid.CompressionDataSizeMB, flagship.CompressionDataSizeMB},
		{"monte carlo samples", slow.MonteCarloSamples, mid.MonteCarloSamples, flagship.MonteCarloSamples},
		{"json data", slow.JSONDataSizeMB, mid.JSONDataSizeMB, flagship.JSONDataSizeMB},
		{"nqueens size", slow.NQueensSize, mid.NQueensSize, flagship.NQueensSize},
	}
	for _, d := range dims {
		assert.LessOrEqual(t, d.slow, d.mid, d.name)
		assert.LessOrEqual(t, d.mid, d.flagship, d.name)
		assert.Greater(t, d.slow, 0, d.name)
	}
}

func TestParamsForUnknownTierFallsBackToMid(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ParamsFor(TierMid), ParamsFor(Tier(99)))
}
