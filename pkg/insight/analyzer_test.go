package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datascope-io/datascope/pkg/source"
)

func buildTestColumns(n int, capture bool, maxCapture int) []*ColumnAnalysis {
	columns := make([]*ColumnAnalysis, n)
	for i := range columns {
		columns[i] = newColumnAnalysis(i, fmt.Sprintf("col_%d", i), capture, maxCapture)
	}
	return columns
}

func wideBatch(cols, rows int) *source.Batch {
	b := &source.Batch{Columns: make([][]string, cols)}
	for c := range b.Columns {
		cells := make([]string, rows)
		for r := range cells {
			cells[r] = fmt.Sprintf("%d", c*rows+r)
		}
		b.Columns[c] = cells
	}
	return b
}

func TestApplyFoldsEveryCellOnce(t *testing.T) {
	const cols, rows = 16, 50
	columns := buildTestColumns(cols, false, 10)
	a := &batchAnalyzer{columns: columns, workers: 4}

	a.apply(wideBatch(cols, rows))

	for _, c := range columns {
		assert.EqualValues(t, rows, c.RowsSeen)
		assert.EqualValues(t, rows, c.NumericCount)
	}
}

func TestApplyPreservesCellOrderWithinColumn(t *testing.T) {
	columns := buildTestColumns(8, false, 10)
	a := &batchAnalyzer{columns: columns, workers: 8}

	batch := wideBatch(8, 20)
	a.apply(batch)

	for i, c := range columns {
		// The example value is the last cell in batch order.
		assert.Equal(t, batch.Columns[i][19], c.ExampleValue)
	}
}

func TestApplyDeterministicAcrossWorkerCounts(t *testing.T) {
	const cols, rows = 12, 200
	batch := wideBatch(cols, rows)

	var reference []*ColumnAnalysis
	for _, workers := range []int{1, 2, 5, 32} {
		columns := buildTestColumns(cols, true, 50)
		a := &batchAnalyzer{columns: columns, workers: workers, nullLike: NewNullLikeSet("n/a")}
		a.apply(batch)

		if reference == nil {
			reference = columns
			continue
		}
		for i, c := range columns {
			ref := reference[i]
			assert.Equal(t, ref.RowsSeen, c.RowsSeen)
			assert.Equal(t, ref.NumericCount, c.NumericCount)
			assert.Equal(t, ref.NumericMin, c.NumericMin)
			assert.Equal(t, ref.NumericMax, c.NumericMax)
			assert.InDelta(t, ref.NumericMean, c.NumericMean, 1e-9)
			assert.Equal(t, ref.CapturedValues(), c.CapturedValues())
		}
	}
}

func TestApplyMoreWorkersThanColumns(t *testing.T) {
	columns := buildTestColumns(2, false, 10)
	a := &batchAnalyzer{columns: columns, workers: 64}

	require.NotPanics(t, func() { a.apply(wideBatch(2, 5)) })
	assert.EqualValues(t, 5, columns[0].RowsSeen)
	assert.EqualValues(t, 5, columns[1].RowsSeen)
}

func TestApplyEmptyColumns(t *testing.T) {
	a := &batchAnalyzer{columns: nil, workers: 4}
	require.NotPanics(t, func() { a.apply(&source.Batch{}) })
}
