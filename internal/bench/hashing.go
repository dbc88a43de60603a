package bench

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

func randomBytes(size int) []byte {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	data := make([]byte, size)
	rng.Read(data)
	return data
}

func singleCoreHashComputing(p workload.Params) Result {
	dataSize := p.HashDataSizeMB * 1024 * 1024
	start := time.Now()

	data := randomBytes(dataSize)

	sha := sha256.Sum256(data)
	md := md5.Sum(data)
	blake := blake2b.Sum256(data)

	elapsed := time.Since(start)
	throughput := float64(len(data)) / elapsed.Seconds()
	return Result{
		Name:         WorkloadHashComputing.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: throughput,
		Valid:        len(sha) > 0 && len(md) > 0 && len(blake) > 0,
		Metrics: map[string]any{
			"data_size_mb":   p.HashDataSizeMB,
			"sha256_result":  hex.EncodeToString(sha[:]),
			"md5_result":     hex.EncodeToString(md[:]),
			"blake2b_result": hex.EncodeToString(blake[:]),
			"throughput_bps": throughput,
		},
	}
}

func multiCoreHashComputing(p workload.Params) Result {
	dataSize := p.HashDataSizeMB * 1024 * 1024
	threads := runtime.NumCPU()
	start := time.Now()

	data := randomBytes(dataSize)
	chunk := dataSize / threads

	digests := make([][32]byte, threads)
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
			// Each worker hashes its chunk with all three digests; the
			// SHA-256 result stands in for the chunk's identity.
			sha := sha256.Sum256(data[lo:hi])
			md5.Sum(data[lo:hi])
			blake2b.Sum256(data[lo:hi])
			digests[w] = sha
		}(w, lo, hi)
	}
	wg.Wait()

	// Combine chunk digests into one suite digest.
	combiner := sha256.New()
	for _, d := range digests {
		combiner.Write(d[:])
	}
	combined := combiner.Sum(nil)

	elapsed := time.Since(start)
	throughput := float64(dataSize) / elapsed.Seconds()
	return Result{
		Name:         WorkloadHashComputing.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: throughput,
		Valid:        len(combined) > 0,
		Metrics: map[string]any{
			"data_size_mb":    p.HashDataSizeMB,
			"combined_sha256": hex.EncodeToString(combined),
			"throughput_bps":  throughput,
			"threads":         threads,
		},
	}
}
