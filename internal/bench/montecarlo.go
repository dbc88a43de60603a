package bench

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

func countInsideCircle(rng *rand.Rand, samples int) uint64 {
	var inside uint64
	for i := 0; i < samples; i++ {
		x := rng.Float64()*2 - 1
		y := rng.Float64()*2 - 1
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return inside
}

func singleCoreMonteCarloPi(p workload.Params) Result {
	samples := p.MonteCarloSamples
	start := time.Now()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	inside := countInsideCircle(rng, samples)
	piEstimate := 4 * float64(inside) / float64(samples)

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadMonteCarloPi.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: float64(samples) / elapsed.Seconds(),
		Valid:        math.Abs(piEstimate-math.Pi) < 0.1,
		Metrics: map[string]any{
			"samples":     samples,
			"pi_estimate": piEstimate,
			"actual_pi":   math.Pi,
			"accuracy":    math.Abs(piEstimate - math.Pi),
		},
	}
}

func multiCoreMonteCarloPi(p workload.Params) Result {
	samples := p.MonteCarloSamples
	threads := runtime.NumCPU()
	start := time.Now()

	perWorker := samples / threads
	counts := make([]uint64, threads)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		n := perWorker
		if w == threads-1 {
			n = samples - perWorker*(threads-1)
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)))
			counts[w] = countInsideCircle(rng, n)
		}(w, n)
	}
	wg.Wait()

	var inside uint64
	for _, c := range counts {
		inside += c
	}
	piEstimate := 4 * float64(inside) / float64(samples)

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadMonteCarloPi.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: float64(samples) / elapsed.Seconds(),
		Valid:        math.Abs(piEstimate-math.Pi) < 0.1,
		Metrics: map[string]any{
			"samples":     samples,
			"pi_estimate": piEstimate,
			"actual_pi":   math.Pi,
			"accuracy":    math.Abs(piEstimate - math.Pi),
			"threads":     threads,
		},
	}
}
