package insight

import (
	"sync"

	"github.com/datascope-io/datascope/pkg/source"
)

// batchAnalyzer fans one batch out across columns. Work is partitioned
// structurally: each column's accumulator is touched by exactly one goroutine
// per batch, so updates need no locks, and within a column cells are folded in
// batch order.
type batchAnalyzer struct {
	columns  []*ColumnAnalysis
	nullLike NullLikeSet
	workers  int
}

// sequentialThreshold is the column count below which the fan-out overhead is
// not worth paying.
const sequentialThreshold = 4

// apply folds every cell of the batch into its owning accumulator and returns
// once all columns are done. Adjacent batches are never in flight at the same
// time; the driver re-joins before pulling the next one.
func (a *batchAnalyzer) apply(batch *source.Batch) {
	n := len(a.columns)
	if n == 0 {
		return
	}

	workers := a.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 || n < sequentialThreshold {
		a.applyRange(batch, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			a.applyRange(batch, start, end)
		}(start, end)
	}
	wg.Wait()
}

// applyRange folds the columns in [start, end) sequentially.
func (a *batchAnalyzer) applyRange(batch *source.Batch, start, end int) {
	for i := start; i < end; i++ {
		acc := a.columns[i]
		for _, cell := range batch.Columns[i] {
			acc.observe(cell, a.nullLike)
		}
	}
}
