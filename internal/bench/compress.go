package bench

import (
	"bytes"
	"runtime"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// compressRLE encodes data as (count, byte) pairs with runs capped at 255.
func compressRLE(data []byte) []byte {
	compressed := make([]byte, 0, len(data)/2)
	i := 0
	for i < len(data) {
		current := data[i]
		count := 1
		for i+count < len(data) && data[i+count] == current && count < 255 {
			count++
		}
		compressed = append(compressed, byte(count), current)
		i += count
	}
	return compressed
}

func decompressRLE(compressed []byte) []byte {
	decompressed := make([]byte, 0, len(compressed))
	for i := 0; i+1 < len(compressed); i += 2 {
		count := int(compressed[i])
		value := compressed[i+1]
		for k := 0; k < count; k++ {
			decompressed = append(decompressed, value)
		}
	}
	return decompressed
}

func singleCoreCompression(p workload.Params) Result {
	dataSize := p.CompressionDataSizeMB * 1024 * 1024
	start := time.Now()

	data := randomBytes(dataSize)
	compressed := compressRLE(data)
	decompressed := decompressRLE(compressed)

	elapsed := time.Since(start)
	throughput := float64(len(data)) / elapsed.Seconds()
	return Result{
		Name:         WorkloadCompression.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: throughput,
		Valid:        bytes.Equal(data, decompressed),
		Metrics: map[string]any{
			"original_size":     len(data),
			"compressed_size":   len(compressed),
			"compression_ratio": float64(len(data)) / float64(len(compressed)),
			"throughput_bps":    throughput,
		},
	}
}

func multiCoreCompression(p workload.Params) Result {
	dataSize := p.CompressionDataSizeMB * 1024 * 1024
	threads := runtime.NumCPU()
	start := time.Now()

	data := randomBytes(dataSize)
	chunk := dataSize / threads

	// RLE runs never span chunk boundaries here, so each chunk round-trips
	// independently and correctness still checks against the original.
	compressedChunks := make([][]byte, threads)
	decompressedChunks := make([][]byte, threads)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		lo := w * chunk
		hi := lo + chunk
		if w == threads-1 {
			hi = dataSize
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			compressedChunks[w] = compressRLE(data[lo:hi])
			decompressedChunks[w] = decompressRLE(compressedChunks[w])
		}(w, lo, hi)
	}
	wg.Wait()

	compressedSize := 0
	for _, c := range compressedChunks {
		compressedSize += len(c)
	}
	roundTrip := bytes.Join(decompressedChunks, nil)

	elapsed := time.Since(start)
	throughput := float64(dataSize) / elapsed.Seconds()
	return Result{
		Name:         WorkloadCompression.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: throughput,
		Valid:        bytes.Equal(data, roundTrip),
		Metrics: map[string]any{
			"original_size":     dataSize,
			"compressed_size":   compressedSize,
			"compression_ratio": float64(dataSize) / float64(compressedSize),
			"throughput_bps":    throughput,
			"threads":           threads,
		},
	}
}
