package workload

import (
	"fmt"
	"strings"
)

// Tier classifies a device by expected CPU capability. The tier only scales
// workload sizes; it never changes benchmark identities.
type Tier int

const (
	TierSlow Tier = iota
	TierMid
	TierFlagship
)

// String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierSlow:
		return "slow"
	case TierMid:
		return "mid"
	case TierFlagship:
		return "flagship"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return TierSlow, nil
	case "mid", "medium":
		return TierMid, nil
	case "flagship", "high":
		return TierFlagship, nil
	default:
		return TierMid, fmt.Errorf("invalid device tier %q: must be slow, mid, or flagship", s)
	}
}

// Params sizes every workload for one tier.
type Params struct {
	PrimeRange            int `json:"prime_range"`
	FibonacciStart        int `json:"fibonacci_start"`
	FibonacciEnd          int `json:"fibonacci_end"`
	MatrixSize            int `json:"matrix_size"`
	HashDataSizeMB        int `json:"hash_data_size_mb"`
	StringCount           int `json:"string_count"`
	RayTracingWidth       int `json:"ray_tracing_width"`
	RayTracingHeight      int `json:"ray_tracing_height"`
	RayTracingDepth       int `json:"ray_tracing_depth"`
	CompressionDataSizeMB int `json:"compression_data_size_mb"`
	MonteCarloSamples     int `json:"monte_carlo_samples"`
	JSONDataSizeMB        int `json:"json_data_size_mb"`
	NQueensSize           int `json:"nqueens_size"`
}

// ParamsFor returns the workload sizing table for a tier. Pure data; callers
// must not rely on any relationship between tiers beyond "bigger tier, bigger
// numbers".
func ParamsFor(tier Tier) Params {
	switch tier {
	case TierSlow:
		return Params{
			PrimeRange:            1_000_000,
			FibonacciStart:        30,
			FibonacciEnd:          38,
			MatrixSize:            500,
			HashDataSizeMB:        25,
			StringCount:           250_000,
			RayTracingWidth:       256,
			RayTracingHeight:      256,
			RayTracingDepth:       2,
			CompressionDataSizeMB: 25,
			MonteCarloSamples:     25_000_000,
			JSONDataSizeMB:        2,
			NQueensSize:           12,
		}
	case TierFlagship:
		return Params{
			PrimeRange:            12_000_000,
			FibonacciStart:        38,
			FibonacciEnd:          45,
			MatrixSize:            1000,
			HashDataSizeMB:        100,
			StringCount:           1_250_000,
			RayTracingWidth:       500,
			RayTracingHeight:      500,
			RayTracingDepth:       5,
			CompressionDataSizeMB: 60,
			MonteCarloSamples:     120_000_000,
			JSONDataSizeMB:        10,
			NQueensSize:           15,
		}
	default:
		return Params{
			PrimeRange:            6_000_000,
			FibonacciStart:        32,
			FibonacciEnd:          38,
			MatrixSize:            600,
			HashDataSizeMB:        40,
			StringCount:           500_000,
			RayTracingWidth:       300,
			RayTracingHeight:      300,
			RayTracingDepth:       3,
			CompressionDataSizeMB: 25,
			MonteCarloSamples:     40_000_000,
			JSONDataSizeMB:        4,
			NQueensSize:           13,
		}
	}
}
