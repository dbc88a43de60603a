package bench

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

const randomStringCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomString(rng *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = randomStringCharset[rng.Intn(len(randomStringCharset))]
	}
	return string(b)
}

func randomStrings(count, length int) []string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	strs := make([]string, count)
	for i := range strs {
		strs[i] = randomString(rng, length)
	}
	return strs
}

// sortOps approximates comparison count for an O(n log n) sort.
func sortOps(n int) float64 {
	return float64(n) * math.Log(float64(n))
}

func singleCoreStringSorting(p workload.Params) Result {
	count := p.StringCount
	start := time.Now()

	strs := randomStrings(count, 50)
	sort.Strings(strs)

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadStringSorting.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: sortOps(count) / elapsed.Seconds(),
		Valid:        len(strs) == count,
		Metrics: map[string]any{
			"string_count": count,
			"sorted":       sort.StringsAreSorted(strs),
		},
	}
}

func multiCoreStringSorting(p workload.Params) Result {
	count := p.StringCount
	threads := runtime.NumCPU()
	start := time.Now()

	strs := randomStrings(count, 50)

	// Sort chunks in parallel, then merge pairs until one remains.
	chunkSize := (count + threads - 1) / threads
	var chunks [][]string
	for lo := 0; lo < count; lo += chunkSize {
		hi := lo + chunkSize
		if hi > count {
			hi = count
		}
		chunks = append(chunks, strs[lo:hi])
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(c []string) {
			defer wg.Done()
			sort.Strings(c)
		}(c)
	}
	wg.Wait()

	for len(chunks) > 1 {
		merged := make([][]string, 0, (len(chunks)+1)/2)
		var mergeWg sync.WaitGroup
		results := make([][]string, (len(chunks)+1)/2)
		for i := 0; i < len(chunks); i += 2 {
			if i+1 == len(chunks) {
				results[i/2] = chunks[i]
				continue
			}
			mergeWg.Add(1)
			go func(idx int, a, b []string) {
				defer mergeWg.Done()
				results[idx] = mergeSorted(a, b)
			}(i/2, chunks[i], chunks[i+1])
		}
		mergeWg.Wait()
		merged = append(merged, results...)
		chunks = merged
	}
	sorted := chunks[0]

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadStringSorting.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: sortOps(count) / elapsed.Seconds(),
		Valid:        len(sorted) == count,
		Metrics: map[string]any{
			"string_count": count,
			"sorted":       sort.StringsAreSorted(sorted),
			"threads":      threads,
		},
	}
}

func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
