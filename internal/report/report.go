// Package report turns scored benchmark results into human- and
// machine-readable output. Presentation only: every number here is computed
// by internal/scoring and copied in.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/shizukutanaka/Hayate/internal/bench"
	"github.com/shizukutanaka/Hayate/internal/scoring"
)

// Report is one complete suite evaluation.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Tier        string    `json:"tier"`

	Results []bench.Result  `json:"results"`
	Scores  []scoring.Score `json:"scores"`

	SingleCoreScore float64 `json:"single_core_score"`
	MultiCoreScore  float64 `json:"multi_core_score"`
	CoreRatio       float64 `json:"core_ratio"`

	WeightedScore  float64        `json:"weighted_score"`
	CompositeScore float64        `json:"composite_score"`
	Rating         scoring.Rating `json:"rating"`

	SingleCoreWeight    float64       `json:"single_core_weight"`
	MultiCoreWeight     float64       `json:"multi_core_weight"`
	NormalizationFactor float64       `json:"normalization_factor"`
	TotalDuration       time.Duration `json:"total_duration_ns"`
}

// Build scores a result set and assembles the report. Partial result sets
// are fine; absent benchmarks simply do not contribute.
func Build(cfg scoring.Config, tier string, results []bench.Result) *Report {
	scores := scoring.Normalize(cfg, results)
	singleSum := scoring.CategorySum(scores, bench.CategorySingle)
	multiSum := scoring.CategorySum(scores, bench.CategoryMulti)
	composite := scoring.Composite(cfg, singleSum, multiSum)

	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}

	return &Report{
		ID:                  uuid.NewString(),
		GeneratedAt:         time.Now().UTC(),
		Tier:                tier,
		Results:             results,
		Scores:              scores,
		SingleCoreScore:     singleSum,
		MultiCoreScore:      multiSum,
		CoreRatio:           scoring.Ratio(multiSum, singleSum),
		WeightedScore:       singleSum*cfg.SingleCoreWeight + multiSum*cfg.MultiCoreWeight,
		CompositeScore:      composite,
		Rating:              scoring.Rate(cfg, composite),
		SingleCoreWeight:    cfg.SingleCoreWeight,
		MultiCoreWeight:     cfg.MultiCoreWeight,
		NormalizationFactor: cfg.NormalizationFactor,
		TotalDuration:       total,
	}
}

// RenderText writes the console report.
func (r *Report) RenderText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString(" CPU BENCHMARK RESULTS\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Run ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Device Tier: %s\n", r.Tier)
	fmt.Fprintf(&b, "Total benchmark time: %s\n", r.TotalDuration.Round(time.Millisecond))

	b.WriteString("\n-- Individual Test Scores --\n")
	for _, s := range r.Scores {
		title := strings.TrimPrefix(s.Name, s.Category.Prefix()+" ")
		label := "Single"
		if s.Category == bench.CategoryMulti {
			label = "Multi"
		}
		fmt.Fprintf(&b, "%s (%s): %.2f  [%s]\n",
			title, label, s.Value, humanize.SIWithDigits(s.OpsPerSecond, 2, "ops/s"))
	}

	b.WriteString("\n-- Category Summary Scores --\n")
	fmt.Fprintf(&b, "Single-Core Score: %.0f\n", r.SingleCoreScore)
	fmt.Fprintf(&b, "Multi-Core Score: %.0f\n", r.MultiCoreScore)
	fmt.Fprintf(&b, "Core Performance Ratio (Multi/Single): %.2fx\n", r.CoreRatio)

	b.WriteString("\n-- Weighted Scoring --\n")
	fmt.Fprintf(&b, "Combined Weighted Score: %.2f\n", r.WeightedScore)

	fmt.Fprintf(&b, "\nFinal Normalized Score: %.2f\n", r.CompositeScore)
	fmt.Fprintf(&b, "Normalization Factor Used: %.6f\n", r.NormalizationFactor)
	fmt.Fprintf(&b, "Rating: %s\n", r.Rating)

	invalid := r.invalidResults()
	if len(invalid) > 0 {
		fmt.Fprintf(&b, "\nWarning: %d benchmark(s) failed their self-check: %s\n",
			len(invalid), strings.Join(invalid, ", "))
	}

	b.WriteString("\nNote: CPU Score is a weighted combination of all benchmarks,\n")
	fmt.Fprintf(&b, "with single-core performance having %.0f%% weight and multi-core %.0f%%.\n",
		100*r.SingleCoreWeight, 100*r.MultiCoreWeight)
	b.WriteString("Higher scores indicate better CPU performance.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) invalidResults() []string {
	var names []string
	for _, res := range r.Results {
		if !res.Valid {
			names = append(names, res.Name)
		}
	}
	return names
}
