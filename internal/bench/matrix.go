package bench

import (
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

func randomMatrix(rng *rand.Rand, size int) [][]float64 {
	m := make([][]float64, size)
	for i := range m {
		row := make([]float64, size)
		for j := range row {
			row[j] = rng.Float64()
		}
		m[i] = row
	}
	return m
}

func matrixChecksum(m [][]float64) float64 {
	var sum float64
	for _, row := range m {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// matrixOps counts one multiply and one add per inner-loop step.
func matrixOps(size int) float64 {
	return float64(size) * float64(size) * float64(size) * 2
}

func singleCoreMatrixMultiplication(p workload.Params) Result {
	size := p.MatrixSize
	start := time.Now()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := randomMatrix(rng, size)
	b := randomMatrix(rng, size)

	c := make([][]float64, size)
	for i := 0; i < size; i++ {
		row := make([]float64, size)
		for k := 0; k < size; k++ {
			aik := a[i][k]
			for j := 0; j < size; j++ {
				row[j] += aik * b[k][j]
			}
		}
		c[i] = row
	}

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadMatrixMultiplication.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: matrixOps(size) / elapsed.Seconds(),
		Valid:        c[0][0] != 0,
		Metrics: map[string]any{
			"matrix_size":     size,
			"result_checksum": matrixChecksum(c),
		},
	}
}

func multiCoreMatrixMultiplication(p workload.Params) Result {
	size := p.MatrixSize
	threads := runtime.NumCPU()
	start := time.Now()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	a := randomMatrix(rng, size)
	b := randomMatrix(rng, size)
	c := make([][]float64, size)

	var g errgroup.Group
	g.SetLimit(threads)
	for i := 0; i < size; i++ {
		i := i
		g.Go(func() error {
			row := make([]float64, size)
			for k := 0; k < size; k++ {
				aik := a[i][k]
				for j := 0; j < size; j++ {
					row[j] += aik * b[k][j]
				}
			}
			c[i] = row
			return nil
		})
	}
	g.Wait()

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadMatrixMultiplication.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: matrixOps(size) / elapsed.Seconds(),
		Valid:        c[0][0] != 0,
		Metrics: map[string]any{
			"matrix_size":     size,
			"result_checksum": matrixChecksum(c),
			"threads":         threads,
		},
	}
}
