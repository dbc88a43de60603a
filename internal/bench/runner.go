package bench

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// benchmarkFunc runs one workload variant to completion and reports its
// measurement. Implementations are pure with respect to the suite: no shared
// state between benchmarks.
type benchmarkFunc func(p workload.Params) Result

// suite lists every benchmark in run order: the ten single-core variants,
// then the ten multi-core ones.
var suite = []struct {
	Workload Workload
	Category Category
	Fn       benchmarkFunc
}{
	{WorkloadPrimeGeneration, CategorySingle, singleCorePrimeGeneration},
	{WorkloadFibonacci, CategorySingle, singleCoreFibonacci},
	{WorkloadMatrixMultiplication, CategorySingle, singleCoreMatrixMultiplication},
	{WorkloadHashComputing, CategorySingle, singleCoreHashComputing},
	{WorkloadStringSorting, CategorySingle, singleCoreStringSorting},
	{WorkloadRayTracing, CategorySingle, singleCoreRayTracing},
	{WorkloadCompression, CategorySingle, singleCoreCompression},
	{WorkloadMonteCarloPi, CategorySingle, singleCoreMonteCarloPi},
	{WorkloadJSONParsing, CategorySingle, singleCoreJSONParsing},
	{WorkloadNQueens, CategorySingle, singleCoreNQueens},
	{WorkloadPrimeGeneration, CategoryMulti, multiCorePrimeGeneration},
	{WorkloadFibonacci, CategoryMulti, multiCoreFibonacci},
	{WorkloadMatrixMultiplication, CategoryMulti, multiCoreMatrixMultiplication},
	{WorkloadHashComputing, CategoryMulti, multiCoreHashComputing},
	{WorkloadStringSorting, CategoryMulti, multiCoreStringSorting},
	{WorkloadRayTracing, CategoryMulti, multiCoreRayTracing},
	{WorkloadCompression, CategoryMulti, multiCoreCompression},
	{WorkloadMonteCarloPi, CategoryMulti, multiCoreMonteCarloPi},
	{WorkloadJSONParsing, CategoryMulti, multiCoreJSONParsing},
	{WorkloadNQueens, CategoryMulti, multiCoreNQueens},
}

// Options configures a Runner.
type Options struct {
	Tier       workload.Tier
	Iterations int  // measured runs per benchmark; mean throughput is reported
	Warmup     bool // run a short warmup pass before measuring
}

// Runner executes the benchmark suite for one device tier.
type Runner struct {
	logger     *zap.Logger
	tier       workload.Tier
	params     workload.Params
	iterations int
	warmup     bool
}

// NewRunner creates a runner for the given tier.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = 1
	}
	return &Runner{
		logger:     logger.Named("runner"),
		tier:       opts.Tier,
		params:     workload.ParamsFor(opts.Tier),
		iterations: iterations,
		warmup:     opts.Warmup,
	}
}

// Tier returns the tier the runner was built for.
func (r *Runner) Tier() workload.Tier {
	return r.tier
}

// Run executes the full suite: ten single-core benchmarks, then ten
// multi-core ones. On cancellation it returns whatever completed together
// with the context error; a cancelled benchmark simply has no result, which
// downstream scoring treats as excluded rather than zero.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if r.warmup {
		r.runWarmup(ctx)
	}

	results := make([]Result, 0, len(suite))
	for _, entry := range suite {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Benchmark run cancelled",
				zap.Int("completed", len(results)),
				zap.Error(err),
			)
			return results, err
		}

		name := entry.Workload.Name(entry.Category)
		r.logger.Info("Starting benchmark", zap.String("name", name))

		result := r.runOne(entry.Fn)
		results = append(results, result)

		r.logger.Info("Completed benchmark",
			zap.String("name", name),
			zap.Duration("duration", result.Duration),
			zap.Float64("ops_per_second", result.OpsPerSecond),
			zap.Bool("valid", result.Valid),
		)
	}
	return results, nil
}

// runOne executes one benchmark r.iterations times and reports the mean
// throughput. With more than one iteration the spread goes into the metrics
// bag so a noisy host is visible in the report.
func (r *Runner) runOne(fn benchmarkFunc) Result {
	if r.iterations == 1 {
		return fn(r.params)
	}

	samples := make([]float64, 0, r.iterations)
	durations := make([]float64, 0, r.iterations)
	var last Result
	for i := 0; i < r.iterations; i++ {
		last = fn(r.params)
		samples = append(samples, last.OpsPerSecond)
		durations = append(durations, last.Duration.Seconds())
	}

	last.OpsPerSecond = stat.Mean(samples, nil)
	last.Duration = time.Duration(stat.Mean(durations, nil) * float64(time.Second))
	if last.Metrics == nil {
		last.Metrics = make(map[string]any)
	}
	last.Metrics["iterations"] = r.iterations
	last.Metrics["ops_stddev"] = stat.StdDev(samples, nil)
	return last
}

// runWarmup primes caches, the branch predictor, and the scheduler with a
// quick pass of three representative single-core workloads at the slow-tier
// sizing. Results are discarded.
func (r *Runner) runWarmup(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.logger.Info("Running warmup iterations")
	p := workload.ParamsFor(workload.TierSlow)
	start := time.Now()
	_ = singleCorePrimeGeneration(p)
	_ = singleCoreFibonacci(p)
	_ = singleCoreMatrixMultiplication(p)
	r.logger.Info("Warmup completed", zap.Duration("duration", time.Since(start)))
}
