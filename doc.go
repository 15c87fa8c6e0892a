// Package datascope provides streaming per-column statistics for tabular
// datasets. It profiles a dataset of any size in bounded memory by folding
// row batches into fixed-size per-column accumulators instead of
// materializing rows.
//
// # Architecture
//
// The analysis pipeline has three moving parts:
//
// 1. A source.Reader yields columnar row batches one at a time. The built-in
// CSV reader (pkg/source/csv) streams plain or gzip-compressed files; any
// batch producer satisfying the interface plugs in the same way.
//
// 2. The insight driver pulls batches sequentially and fans each batch out
// across columns. Ownership is partitioned structurally: one goroutine per
// column slice per batch, so accumulators need no locks and results do not
// depend on scheduling.
//
// 3. Accumulators export read-only snapshots once the stream is exhausted:
// numeric range and incremental mean, parse-failure counts, empty,
// whitespace-only and null-like string counts, and a bounded sample of
// distinct values per opted-in column.
//
// # Key Packages
//
//   - pkg/insight: accumulators, batch analyzer, analysis driver, projections
//   - pkg/source: reader contract and columnar batch model
//   - pkg/source/csv: CSV file reader with transparent gzip support
//   - pkg/config: unified configuration with YAML loading
//   - pkg/errors: structured errors with typed categories
//   - pkg/logger: zap-based structured logging
//   - pkg/metrics: Prometheus metrics for analysis runs
//
// # Quick Start
//
//	reader, err := csv.NewReader(csv.Options{Path: "orders.csv"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer reader.Close()
//
//	analysis, err := insight.AnalyzeDataset(ctx, reader, insight.Options{
//		NullLikeValues: insight.NewNullLikeSet("n/a", "null"),
//		CaptureColumns: insight.NewCaptureColumnSet(0),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, col := range analysis.Columns {
//		fmt.Printf("%s: %d rows\n", col.ColumnName, col.RowsSeen)
//	}
package datascope
