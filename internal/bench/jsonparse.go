package bench

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// generateComplexJSON builds a nested document of roughly sizeTarget bytes:
// an object with one array of small objects, each with a nested object and a
// short array.
func generateComplexJSON(sizeTarget int) string {
	var b strings.Builder
	b.Grow(sizeTarget + 64)
	b.WriteString(`{"data":[`)
	counter := 0
	for {
		obj := fmt.Sprintf(`{"id":%d,"name":"obj%d","nested":{"value":%d,"array":[1,2,3,4,5]}},`,
			counter, counter, counter%1000)
		if b.Len()+len(obj) > sizeTarget {
			break
		}
		b.WriteString(obj)
		counter++
	}
	s := strings.TrimSuffix(b.String(), ",")
	return s + "]}"
}

// countJSONElements walks a decoded document counting every container and
// primitive, the unit the parsing throughput is measured in.
func countJSONElements(v any) uint64 {
	switch t := v.(type) {
	case map[string]any:
		count := uint64(1)
		for _, child := range t {
			count += countJSONElements(child)
		}
		return count
	case []any:
		count := uint64(1)
		for _, child := range t {
			count += countJSONElements(child)
		}
		return count
	default:
		return 1
	}
}

func singleCoreJSONParsing(p workload.Params) Result {
	dataSize := p.JSONDataSizeMB * 1024 * 1024
	start := time.Now()

	doc := generateComplexJSON(dataSize)

	var parsed any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		parsed = nil
	}
	_, isObject := parsed.(map[string]any)
	elements := countJSONElements(parsed)

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadJSONParsing.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: float64(elements) / elapsed.Seconds(),
		Valid:        isObject,
		Metrics: map[string]any{
			"json_size":       len(doc),
			"elements_parsed": elements,
			"root_type":       "object",
		},
	}
}

func multiCoreJSONParsing(p workload.Params) Result {
	dataSize := p.JSONDataSizeMB * 1024 * 1024
	threads := runtime.NumCPU()
	start := time.Now()

	// One independent document per worker; together they cover the full
	// data size.
	perWorker := dataSize / threads
	elementCounts := make([]uint64, threads)
	parseOK := make([]bool, threads)
	totalSize := 0
	docs := make([]string, threads)
	for w := 0; w < threads; w++ {
		docs[w] = generateComplexJSON(perWorker)
		totalSize += len(docs[w])
	}

	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var parsed any
			if err := json.Unmarshal([]byte(docs[w]), &parsed); err != nil {
				return
			}
			_, parseOK[w] = parsed.(map[string]any)
			elementCounts[w] = countJSONElements(parsed)
		}(w)
	}
	wg.Wait()

	var elements uint64
	okCount := 0
	for w := 0; w < threads; w++ {
		elements += elementCounts[w]
		if parseOK[w] {
			okCount++
		}
	}

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadJSONParsing.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: float64(elements) / elapsed.Seconds(),
		Valid:        okCount > 0,
		Metrics: map[string]any{
			"json_size":       totalSize,
			"elements_parsed": elements,
			"documents":       threads,
			"threads":         threads,
		},
	}
}
