package bench

import (
	"runtime"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

func fibRecursive(n int) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	return fibRecursive(n-1) + fibRecursive(n-2)
}

func singleCoreFibonacci(p workload.Params) Result {
	start := time.Now()

	results := make([]uint64, 0, p.FibonacciEnd-p.FibonacciStart+1)
	for n := p.FibonacciStart; n <= p.FibonacciEnd; n++ {
		results = append(results, fibRecursive(n))
	}

	elapsed := time.Since(start)
	calcs := float64(p.FibonacciEnd - p.FibonacciStart + 1)
	return Result{
		Name:         WorkloadFibonacci.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: calcs / elapsed.Seconds(),
		Valid:        len(results) > 0,
		Metrics: map[string]any{
			"fibonacci_results": results,
			"range":             []int{p.FibonacciStart, p.FibonacciEnd},
		},
	}
}

// fibMemo computes fibonacci numbers against a memo table shared across
// goroutines. sync.Map keeps the recursion lock-free on the hit path.
func fibMemo(n int, memo *sync.Map) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	if v, ok := memo.Load(n); ok {
		return v.(uint64)
	}
	result := fibMemo(n-1, memo) + fibMemo(n-2, memo)
	memo.Store(n, result)
	return result
}

func multiCoreFibonacci(p workload.Params) Result {
	start := time.Now()

	var memo sync.Map
	count := p.FibonacciEnd - p.FibonacciStart + 1
	results := make([]uint64, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = fibMemo(p.FibonacciStart+i, &memo)
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadFibonacci.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: float64(count) / elapsed.Seconds(),
		Valid:        len(results) > 0,
		Metrics: map[string]any{
			"fibonacci_results": results,
			"range":             []int{p.FibonacciStart, p.FibonacciEnd},
			"threads":           runtime.NumCPU(),
		},
	}
}
