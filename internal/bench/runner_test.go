package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// The suite order is part of the output contract: ten single-core benchmarks
// followed by their ten multi-core counterparts.
func TestSuiteOrder(t *testing.T) {
	t.Parallel()

	require.Len(t, suite, 20)
	for i, entry := range suite {
		wantCategory := CategorySingle
		if i >= 10 {
			wantCategory = CategoryMulti
		}
		assert.Equal(t, wantCategory, entry.Category, "suite[%d]", i)
		assert.Equal(t, Workloads[i%10], entry.Workload, "suite[%d]", i)
		assert.NotNil(t, entry.Fn, "suite[%d]", i)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	t.Parallel()

	r := NewRunner(nil, Options{Tier: workload.TierSlow, Iterations: -3})
	assert.Equal(t, workload.TierSlow, r.Tier())
	assert.Equal(t, 1, r.iterations)
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(zaptest.NewLogger(t), Options{Tier: workload.TierSlow})
	results, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunOneAveragesIterations(t *testing.T) {
	t.Parallel()

	r := NewRunner(zaptest.NewLogger(t), Options{Tier: workload.TierSlow, Iterations: 3})

	calls := 0
	throughputs := []float64{100, 200, 300}
	stub := func(p workload.Params) Result {
		ops := throughputs[calls]
		calls++
		return Result{
			Name:         "Single-Core Stub",
			Category:     CategorySingle,
			Duration:     time.Second,
			OpsPerSecond: ops,
			Valid:        true,
		}
	}

	result := r.runOne(stub)
	assert.Equal(t, 3, calls)
	assert.InDelta(t, 200.0, result.OpsPerSecond, 1e-9)
	assert.Equal(t, time.Second, result.Duration)
	assert.Equal(t, 3, result.Metrics["iterations"])
	assert.InDelta(t, 100.0, result.Metrics["ops_stddev"].(float64), 1e-9)
}

func TestRunOneSingleIterationPassesThrough(t *testing.T) {
	t.Parallel()

	r := NewRunner(zaptest.NewLogger(t), Options{Tier: workload.TierSlow})
	stub := func(p workload.Params) Result {
		return Result{Name: "Single-Core Stub", OpsPerSecond: 42, Valid: true}
	}

	result := r.runOne(stub)
	assert.Equal(t, 42.0, result.OpsPerSecond)
	assert.Nil(t, result.Metrics)
}
