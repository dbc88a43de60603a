package bench

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		workload Workload
		category Category
		want     string
	}{
		{WorkloadPrimeGeneration, CategorySingle, "Single-Core Prime Generation"},
		{WorkloadPrimeGeneration, CategoryMulti, "Multi-Core Prime Generation"},
		{WorkloadFibonacci, CategorySingle, "Single-Core Fibonacci Recursive"},
		{WorkloadFibonacci, CategoryMulti, "Multi-Core Fibonacci Memoized"},
		{WorkloadMatrixMultiplication, CategorySingle, "Single-Core Matrix Multiplication"},
		{WorkloadHashComputing, CategoryMulti, "Multi-Core Hash Computing"},
		{WorkloadStringSorting, CategorySingle, "Single-Core String Sorting"},
		{WorkloadRayTracing, CategoryMulti, "Multi-Core Ray Tracing"},
		{WorkloadCompression, CategorySingle, "Single-Core Compression"},
		{WorkloadMonteCarloPi, CategorySingle, "Single-Core Monte Carlo π"},
		{WorkloadMonteCarloPi, CategoryMulti, "Multi-Core Monte Carlo π"},
		{WorkloadJSONParsing, CategoryMulti, "Multi-Core JSON Parsing"},
		{WorkloadNQueens, CategorySingle, "Single-Core N-Queens"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.workload.Name(tt.category))
	}
}

// The 20 canonical names are the scoring keys; they must stay unique.
func TestWorkloadNamesUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, w := range Workloads {
		for _, c := range []Category{CategorySingle, CategoryMulti} {
			name := w.Name(c)
			assert.False(t, seen[name], "duplicate name %s", name)
			seen[name] = true
		}
	}
	assert.Len(t, seen, 20)
}

func TestCategoryJSON(t *testing.T) {
	t.Parallel()

	single, err := json.Marshal(CategorySingle)
	require.NoError(t, err)
	assert.Equal(t, `"single"`, string(single))

	multi, err := json.Marshal(CategoryMulti)
	require.NoError(t, err)
	assert.Equal(t, `"multi"`, string(multi))

	var c Category
	require.NoError(t, json.Unmarshal([]byte(`"multi"`), &c))
	assert.Equal(t, CategoryMulti, c)
}

func TestCategoryUnmarshalRejectsUnknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"empty string", `""`},
		{"unknown value", `"quad"`},
		{"wrong type", `3`},
		{"case sensitive", `"Single"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c Category
			assert.Error(t, json.Unmarshal([]byte(tt.data), &c))
		})
	}
}

func TestResultJSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := Result{
		Name:         "Multi-Core Hash Computing",
		Category:     CategoryMulti,
		Duration:     1500 * time.Millisecond,
		OpsPerSecond: 123456.78,
		Valid:        true,
		Metrics:      map[string]any{"threads": 8.0},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Result
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

// A result serialized without a category must be rejected at the decode
// boundary, not silently defaulted to single-core.
func TestResultJSONRequiresCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"empty category", `{"name":"Single-Core N-Queens","category":"","ops_per_second":100}`},
		{"category key absent", `{"name":"Multi-Core N-Queens","ops_per_second":100}`},
		{"null category", `{"name":"Multi-Core N-Queens","category":null,"ops_per_second":100}`},
		{"unknown category", `{"name":"Multi-Core N-Queens","category":"quad","ops_per_second":100}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var r Result
			err := json.Unmarshal([]byte(tt.data), &r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "category")
		})
	}
}
