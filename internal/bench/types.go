package bench

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category tells which half of the suite a result belongs to. It is assigned
// when the result is produced and carried through scoring; nothing downstream
// re-derives it from the benchmark name.
type Category int

const (
	CategorySingle Category = iota
	CategoryMulti
)

// String returns the lowercase category name used in reports and on the wire.
func (c Category) String() string {
	if c == CategoryMulti {
		return "multi"
	}
	return "single"
}

// Prefix returns the benchmark-name prefix for the category.
func (c Category) Prefix() string {
	if c == CategoryMulti {
		return "Multi-Core"
	}
	return "Single-Core"
}

// MarshalJSON encodes the category as its string name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category from its string name. Results crossing the
// JSON boundary must declare their category explicitly; an empty or unknown
// value is rejected here rather than surfacing mid-computation.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "single":
		*c = CategorySingle
	case "multi":
		*c = CategoryMulti
	case "":
		return fmt.Errorf("result is missing its category")
	default:
		return fmt.Errorf("unknown category %q", s)
	}
	return nil
}

// Workload identifies one of the ten benchmark algorithms.
type Workload int

const (
	WorkloadPrimeGeneration Workload = iota
	WorkloadFibonacci
	WorkloadMatrixMultiplication
	WorkloadHashComputing
	WorkloadStringSorting
	WorkloadRayTracing
	WorkloadCompression
	WorkloadMonteCarloPi
	WorkloadJSONParsing
	WorkloadNQueens
)

// Workloads lists every workload in suite order.
var Workloads = []Workload{
	WorkloadPrimeGeneration,
	WorkloadFibonacci,
	WorkloadMatrixMultiplication,
	WorkloadHashComputing,
	WorkloadStringSorting,
	WorkloadRayTracing,
	WorkloadCompression,
	WorkloadMonteCarloPi,
	WorkloadJSONParsing,
	WorkloadNQueens,
}

// Title returns the workload's display name within a category. Fibonacci is
// the one workload whose single- and multi-core variants run different
// algorithms (plain recursion vs a shared memo table), so its title differs.
func (w Workload) Title(c Category) string {
	switch w {
	case WorkloadPrimeGeneration:
		return "Prime Generation"
	case WorkloadFibonacci:
		if c == CategoryMulti {
			return "Fibonacci Memoized"
		}
		return "Fibonacci Recursive"
	case WorkloadMatrixMultiplication:
		return "Matrix Multiplication"
	case WorkloadHashComputing:
		return "Hash Computing"
	case WorkloadStringSorting:
		return "String Sorting"
	case WorkloadRayTracing:
		return "Ray Tracing"
	case WorkloadCompression:
		return "Compression"
	case WorkloadMonteCarloPi:
		return "Monte Carlo π"
	case WorkloadJSONParsing:
		return "JSON Parsing"
	case WorkloadNQueens:
		return "N-Queens"
	default:
		return fmt.Sprintf("Workload(%d)", int(w))
	}
}

// Name returns the canonical benchmark name, e.g. "Single-Core Prime
// Generation". These 20 strings are the stable identity the scoring
// coefficient table is keyed on.
func (w Workload) Name(c Category) string {
	return c.Prefix() + " " + w.Title(c)
}

// Result is the raw measurement one benchmark run produces. Throughput units
// vary per workload (ops/sec, bytes/sec, rays/sec, elements/sec) and are not
// comparable across workloads without normalization.
type Result struct {
	Name         string         `json:"name"`
	Category     Category       `json:"category"`
	Duration     time.Duration  `json:"duration_ns"`
	OpsPerSecond float64        `json:"ops_per_second"`
	Valid        bool           `json:"is_valid"`
	Metrics      map[string]any `json:"metrics,omitempty"`
}

// UnmarshalJSON decodes a result, requiring the category key to be present.
// Category's own unmarshaler never runs for an absent key, and the zero
// value would silently pass the result off as single-core, so presence is
// checked here with a pointer.
func (r *Result) UnmarshalJSON(data []byte) error {
	type resultAlias Result
	aux := struct {
		Category *Category `json:"category"`
		*resultAlias
	}{resultAlias: (*resultAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Category == nil {
		return fmt.Errorf("result %q is missing its category", r.Name)
	}
	r.Category = *aux.Category
	return nil
}
