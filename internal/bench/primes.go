package bench

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// sieveRange marks composites in isPrime for the half-open range
// [low, high) using the supplied base primes.
func sieveRange(isPrime []bool, low, high int, basePrimes []int) {
	for _, p := range basePrimes {
		start := p * p
		if start < low {
			start = ((low + p - 1) / p) * p
		}
		for m := start; m < high; m += p {
			isPrime[m] = false
		}
	}
}

// basePrimes returns all primes up to limit with a plain sieve.
func basePrimes(limit int) []int {
	if limit < 2 {
		return nil
	}
	isPrime := make([]bool, limit+1)
	for i := 2; i <= limit; i++ {
		isPrime[i] = true
	}
	for p := 2; p*p <= limit; p++ {
		if isPrime[p] {
			for m := p * p; m <= limit; m += p {
				isPrime[m] = false
			}
		}
	}
	primes := make([]int, 0, limit/2)
	for i := 2; i <= limit; i++ {
		if isPrime[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// sieveOps approximates the work a sieve of Eratosthenes performs over n,
// which grows as n·ln(ln(n)). Used as the operation count for throughput.
func sieveOps(n int) float64 {
	return float64(n) * math.Log(math.Log(float64(n)))
}

func singleCorePrimeGeneration(p workload.Params) Result {
	n := p.PrimeRange
	start := time.Now()

	isPrime := make([]bool, n+1)
	for i := 2; i <= n; i++ {
		isPrime[i] = true
	}
	for q := 2; q*q <= n; q++ {
		if isPrime[q] {
			for m := q * q; m <= n; m += q {
				isPrime[m] = false
			}
		}
	}

	primeCount := 0
	for i := 2; i <= n; i++ {
		if isPrime[i] {
			primeCount++
		}
	}

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadPrimeGeneration.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: sieveOps(n) / elapsed.Seconds(),
		Valid:        primeCount > 0,
		Metrics: map[string]any{
			"prime_count": primeCount,
			"range":       n,
		},
	}
}

func multiCorePrimeGeneration(p workload.Params) Result {
	n := p.PrimeRange
	threads := runtime.NumCPU()
	start := time.Now()

	// Segmented sieve: base primes up to sqrt(n) sequentially, then each
	// worker marks composites in its own segment.
	base := basePrimes(int(math.Sqrt(float64(n))) + 1)
	isPrime := make([]bool, n+1)
	for i := 2; i <= n; i++ {
		isPrime[i] = true
	}

	chunk := (n + threads) / threads
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		low := w * chunk
		high := low + chunk
		if high > n+1 {
			high = n + 1
		}
		if low >= high {
			break
		}
		wg.Add(1)
		go func(low, high int) {
			defer wg.Done()
			sieveRange(isPrime, low, high, base)
		}(low, high)
	}
	wg.Wait()

	primeCount := 0
	for i := 2; i <= n; i++ {
		if isPrime[i] {
			primeCount++
		}
	}

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadPrimeGeneration.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: sieveOps(n) / elapsed.Seconds(),
		Valid:        primeCount > 0,
		Metrics: map[string]any{
			"prime_count": primeCount,
			"range":       n,
			"threads":     threads,
		},
	}
}
