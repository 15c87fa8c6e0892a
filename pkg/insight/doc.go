// Package insight computes per-column descriptive statistics over a streamed
// columnar dataset without materializing the dataset in memory.
//
// The driver pulls row batches sequentially from a source.Reader and folds
// every cell into a fixed-size per-column accumulator. Within a batch, columns
// are processed in parallel; each column's accumulator is owned by exactly one
// goroutine per batch, so no locks are needed and the result is independent of
// scheduling. Batches are strictly serialized relative to each other.
//
// Statistics per column: row count, numeric count / parse-failure count,
// running min/max/mean over successfully parsed floats, empty / whitespace-only
// / null-like string counts, and a bounded sample of distinct values with an
// overflow flag.
//
// Basic usage:
//
//	reader, _ := csv.NewReader(csv.Options{Path: "orders.csv"})
//	analysis, err := insight.AnalyzeDataset(ctx, reader, insight.Options{
//		NullLikeValues:  insight.NewNullLikeSet("n/a", "null"),
//		CaptureColumns:  insight.NewCaptureColumnSet(0, 2),
//		MaxCaptureCount: 5000,
//	})
package insight
