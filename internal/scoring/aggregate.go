package scoring

import "github.com/shizukutanaka/Hayate/internal/bench"

// CategorySum adds up the scores belonging to one category, counting only
// strictly positive values. A failed or degenerate measurement is thereby
// excluded rather than subtracted: a pathological run can never depress the
// aggregate below what the remaining benchmarks earn on their own. NaN values
// fail the > 0 comparison and are excluded by the same filter.
func CategorySum(scores []Score, category bench.Category) float64 {
	var sum float64
	for _, s := range scores {
		if s.Category == category && s.Value > 0 {
			sum += s.Value
		}
	}
	return sum
}

// Ratio reports multi-core over single-core scaling, a diagnostic of parallel
// efficiency. It is not an input to the composite score. A non-positive
// single-core sum yields 0 instead of dividing.
func Ratio(multiSum, singleSum float64) float64 {
	if singleSum > 0 {
		return multiSum / singleSum
	}
	return 0
}
