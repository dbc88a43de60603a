// Package scoring converts heterogeneous raw benchmark measurements into a
// bounded, comparable composite score.
//
// Everything in this package is a pure function of its inputs plus an
// immutable Config. No global state, no side effects, no error paths: the
// scoring layer must never abort a benchmark run over a single odd
// measurement, so degenerate values (zero, negative, NaN, Inf) are absorbed
// arithmetically and neutralized during aggregation. The same property makes
// a persisted result log re-scorable offline with different coefficients.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/shizukutanaka/Hayate/internal/bench"
)

// Band is one rating step. A composite score at or above Threshold earns at
// least this band; bands are ordered from highest threshold to lowest.
type Band struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Stars     string  `json:"stars" yaml:"stars"`
	Label     string  `json:"label" yaml:"label"`
}

// Config carries every tunable of the scoring engine. Treat values as
// immutable after construction; the scoring functions take Config by value
// and never modify it.
type Config struct {
	// Coefficients maps each canonical benchmark name to the factor that
	// scales its throughput into a unitless score. The per-name table exists
	// because the 20 workloads span roughly six orders of magnitude of
	// throughput; no single divisor can bring a sieve's ops/sec and a ray
	// tracer's rays/sec into the same ~70-point range at once.
	Coefficients map[string]float64

	// Fallbacks for names not present in the table, chosen by category
	// prefix. Multi-core throughput runs roughly 5x higher, so its default
	// is smaller.
	DefaultSingleCoefficient float64
	DefaultMultiCoefficient  float64

	// Category weights for the composite. They happen to sum to 1.0 in the
	// reference values but are not required to.
	SingleCoreWeight float64
	MultiCoreWeight  float64

	// NormalizationFactor rescales the weighted composite. Its reference
	// value is 1.0 because the per-name coefficients already balance the
	// suite, but it stays an explicit knob for retuning as workload
	// parameters evolve.
	NormalizationFactor float64

	// Bands is the rating ladder, highest threshold first.
	Bands []Band
}

// coefficientTable holds the reference {single, multi} coefficient pair per
// workload. Multi-core factors are 4-5x smaller than their single-core
// counterparts because multi-core throughput is that much higher.
var coefficientTable = map[bench.Workload][2]float64{
	bench.WorkloadPrimeGeneration:      {0.00000001, 0.0000002},
	bench.WorkloadFibonacci:            {0.00012, 0.0024},
	bench.WorkloadMatrixMultiplication: {0.000000025, 0.0000001},
	bench.WorkloadHashComputing:        {0.00000001, 0.0000002},
	bench.WorkloadStringSorting:        {0.00000015, 0.0000003},
	bench.WorkloadRayTracing:           {0.0000006, 0.000003},
	bench.WorkloadCompression:          {0.00000007, 0.000000035},
	bench.WorkloadMonteCarloPi:         {0.0000007, 0.0000035},
	bench.WorkloadJSONParsing:          {0.0000004, 0.000002},
	bench.WorkloadNQueens:              {0.0007, 0.000035},
}

// DefaultConfig returns the reference scoring configuration: the 20+2
// coefficient table, 35/65 category weights, identity normalization, and the
// six-band rating ladder.
func DefaultConfig() Config {
	coeffs := make(map[string]float64, 2*len(coefficientTable))
	for w, pair := range coefficientTable {
		coeffs[w.Name(bench.CategorySingle)] = pair[0]
		coeffs[w.Name(bench.CategoryMulti)] = pair[1]
	}
	return Config{
		Coefficients:             coeffs,
		DefaultSingleCoefficient: 0.0001,
		DefaultMultiCoefficient:  0.00005,
		SingleCoreWeight:         0.35,
		MultiCoreWeight:          0.65,
		NormalizationFactor:      1.0,
		Bands: []Band{
			{Threshold: 1800, Stars: "★★★", Label: "Exceptional Performance"},
			{Threshold: 1500, Stars: "★★★★☆", Label: "High Performance"},
			{Threshold: 1000, Stars: "★★★☆☆", Label: "Good Performance"},
			{Threshold: 600, Stars: "★★☆☆☆", Label: "Moderate Performance"},
			{Threshold: 300, Stars: "★☆☆☆", Label: "Basic Performance"},
			{Threshold: 0, Stars: "☆☆☆", Label: "Low Performance"},
		},
	}
}

// Validate checks structural soundness of a (possibly user-tuned) Config.
// The scoring functions themselves do not call this; it exists for the
// configuration boundary.
func (c Config) Validate() error {
	for name, coeff := range c.Coefficients {
		if coeff < 0 || math.IsNaN(coeff) {
			return fmt.Errorf("coefficient for %q is %v, must be non-negative", name, coeff)
		}
	}
	if c.DefaultSingleCoefficient < 0 || c.DefaultMultiCoefficient < 0 {
		return fmt.Errorf("default coefficients must be non-negative")
	}
	if c.SingleCoreWeight < 0 || c.MultiCoreWeight < 0 {
		return fmt.Errorf("category weights must be non-negative")
	}
	if c.NormalizationFactor <= 0 {
		return fmt.Errorf("normalization factor is %v, must be positive", c.NormalizationFactor)
	}
	if len(c.Bands) == 0 {
		return fmt.Errorf("at least one rating band is required")
	}
	for i := 1; i < len(c.Bands); i++ {
		if c.Bands[i].Threshold >= c.Bands[i-1].Threshold {
			return fmt.Errorf("rating bands must have strictly descending thresholds (%v then %v)",
				c.Bands[i-1].Threshold, c.Bands[i].Threshold)
		}
	}
	return nil
}

// CoefficientFor resolves the scaling coefficient for a benchmark name. The
// lookup is total: an unrecognized name falls back to the category default,
// distinguished by the multi-core prefix substring. This string fallback is
// the one place names are inspected; within the suite names always come from
// the typed workload table.
func (c Config) CoefficientFor(name string) float64 {
	if coeff, ok := c.Coefficients[name]; ok {
		return coeff
	}
	if strings.Contains(name, bench.CategoryMulti.Prefix()) {
		return c.DefaultMultiCoefficient
	}
	return c.DefaultSingleCoefficient
}
