package scoring

import "github.com/shizukutanaka/Hayate/internal/bench"

// Score is one benchmark's normalized contribution. Value is unitless and
// engineered so a mid-tier device lands around 70 per benchmark; the raw
// throughput is retained for display.
type Score struct {
	Name         string         `json:"name"`
	Category     bench.Category `json:"category"`
	OpsPerSecond float64        `json:"ops_per_second"`
	Value        float64        `json:"score"`
}

// Normalize scales each raw result's throughput by its per-name coefficient,
// producing exactly one Score per input in input order.
//
// The transformation is total and pure: unknown names resolve to a category
// default coefficient, and degenerate throughput (negative, NaN, Inf)
// propagates arithmetically rather than erroring. Category is copied from the
// result, not re-derived from the name.
func Normalize(cfg Config, results []bench.Result) []Score {
	scores := make([]Score, len(results))
	for i, r := range results {
		scores[i] = Score{
			Name:         r.Name,
			Category:     r.Category,
			OpsPerSecond: r.OpsPerSecond,
			Value:        r.OpsPerSecond * cfg.CoefficientFor(r.Name),
		}
	}
	return scores
}
