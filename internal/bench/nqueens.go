package bench

import (
	"runtime"
	"sync"
	"time"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// solveNQueensFrom counts placements for rows [row, n) given occupied
// columns and diagonals encoded as bitmasks.
func solveNQueensFrom(n, row int, cols, diag1, diag2 uint64) uint64 {
	if row == n {
		return 1
	}
	var count uint64
	full := uint64(1)<<n - 1
	free := full &^ (cols | diag1 | diag2)
	for free != 0 {
		bit := free & (-free)
		free &^= bit
		count += solveNQueensFrom(n, row+1, cols|bit, (diag1|bit)<<1&full, (diag2|bit)>>1)
	}
	return count
}

func singleCoreNQueens(p workload.Params) Result {
	n := p.NQueensSize
	start := time.Now()

	solutions := solveNQueensFrom(n, 0, 0, 0, 0)

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadNQueens.Name(CategorySingle),
		Category:     CategorySingle,
		Duration:     elapsed,
		OpsPerSecond: float64(solutions) / elapsed.Seconds(),
		Valid:        solutions > 0,
		Metrics: map[string]any{
			"board_size":     n,
			"solution_count": solutions,
		},
	}
}

func multiCoreNQueens(p workload.Params) Result {
	n := p.NQueensSize
	threads := runtime.NumCPU()
	start := time.Now()

	// Fan out over the first-row column choices; each subtree is
	// independent.
	counts := make([]uint64, n)
	full := uint64(1)<<n - 1
	var wg sync.WaitGroup
	sem := make(chan struct{}, threads)
	for col := 0; col < n; col++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(col int) {
			defer wg.Done()
			defer func() { <-sem }()
			bit := uint64(1) << col
			counts[col] = solveNQueensFrom(n, 1, bit, bit<<1&full, bit>>1)
		}(col)
	}
	wg.Wait()

	var solutions uint64
	for _, c := range counts {
		solutions += c
	}

	elapsed := time.Since(start)
	return Result{
		Name:         WorkloadNQueens.Name(CategoryMulti),
		Category:     CategoryMulti,
		Duration:     elapsed,
		OpsPerSecond: float64(solutions) / elapsed.Seconds(),
		Valid:        solutions > 0,
		Metrics: map[string]any{
			"board_size":     n,
			"solution_count": solutions,
			"threads":        threads,
		},
	}
}
