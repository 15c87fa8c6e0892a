package insight

import (
	"context"
	stderrors "errors"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/datascope-io/datascope/pkg/config"
	"github.com/datascope-io/datascope/pkg/errors"
	"github.com/datascope-io/datascope/pkg/logger"
	"github.com/datascope-io/datascope/pkg/metrics"
	"github.com/datascope-io/datascope/pkg/source"
)

// Options configures an analysis run.
type Options struct {
	// NullLikeValues is the missing-value vocabulary (may be nil)
	NullLikeValues NullLikeSet
	// CaptureColumns selects columns recording a distinct-value sample
	CaptureColumns CaptureColumnSet
	// MaxCaptureCount bounds the sample per captured column
	// (default config.DefaultMaxCaptureCount)
	MaxCaptureCount int
	// Workers is the column-parallel goroutine count per batch (0 = NumCPU)
	Workers int
	// Dataset labels logs and metrics
	Dataset string
	// Logger overrides the global logger
	Logger *zap.Logger
}

// FromConfig derives analysis Options from a Config.
func FromConfig(cfg *config.Config) Options {
	return Options{
		NullLikeValues:  NewNullLikeSet(cfg.Analysis.NullLikeValues...),
		CaptureColumns:  NewCaptureColumnSet(cfg.Analysis.CaptureColumns...),
		MaxCaptureCount: cfg.Analysis.MaxCaptureCount,
		Workers:         cfg.Performance.Workers,
		Dataset:         cfg.Name,
	}
}

// DataAnalysis is the result of a completed run: one ColumnAnalysis per
// column, in schema order.
type DataAnalysis struct {
	Columns []*ColumnAnalysis
}

// Column returns the analysis for the named column, or nil if absent
func (d *DataAnalysis) Column(name string) *ColumnAnalysis {
	for _, c := range d.Columns {
		if c.ColumnName == name {
			return c
		}
	}
	return nil
}

// RowsSeen returns the number of rows folded during the run
func (d *DataAnalysis) RowsSeen() int64 {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].RowsSeen
}

// AnalyzeDataset pulls batches from the reader until exhaustion and returns
// the per-column statistics. Accumulators are allocated lazily from the first
// batch's schema; every later batch must present the same column count.
//
// The caller receives either a complete, consistent result or a single error;
// there is no partial-result mode. Numeric parse failures and string
// classification never fail a run; only structural violations do:
//
//   - a non-string column fails fast with an unsupported_type error before
//     any row is processed
//   - a column-count drift between batches fails with schema_mismatch
//   - reader failures are propagated, discarding accumulated state
func AnalyzeDataset(ctx context.Context, reader source.Reader, opts Options) (*DataAnalysis, error) {
	if opts.MaxCaptureCount <= 0 {
		opts.MaxCaptureCount = config.DefaultMaxCaptureCount
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}
	log := opts.Logger.With(zap.String("dataset", opts.Dataset))

	start := time.Now()
	var (
		columns  []*ColumnAnalysis
		analyzer *batchAnalyzer
		batches  int64
		rows     int64
	)

	for {
		batch, err := reader.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			err = readerError(err)
			recordFailure(opts.Dataset, err)
			return nil, err
		}

		if columns == nil {
			columns, err = buildColumns(batch, opts)
			if err != nil {
				recordFailure(opts.Dataset, err)
				return nil, err
			}
			analyzer = &batchAnalyzer{
				columns:  columns,
				nullLike: opts.NullLikeValues,
				workers:  opts.Workers,
			}
			log.Debug("allocated column accumulators",
				zap.Int("columns", len(columns)),
				zap.Int("workers", opts.Workers))
		}

		if len(batch.Columns) != len(columns) {
			err = errors.NewSchemaMismatch(len(columns), len(batch.Columns))
			recordFailure(opts.Dataset, err)
			return nil, err
		}

		analyzer.apply(batch)

		batches++
		rows += int64(batch.Rows())
		metrics.BatchesProcessed.WithLabelValues(opts.Dataset).Inc()
		metrics.RowsAnalyzed.WithLabelValues(opts.Dataset).Add(float64(batch.Rows()))
	}

	if columns == nil {
		columns = []*ColumnAnalysis{}
	}

	for _, c := range columns {
		metrics.NumericParseFailures.WithLabelValues(opts.Dataset).Add(float64(c.NumericNaNCount))
	}
	metrics.AnalysisDuration.WithLabelValues(opts.Dataset).Observe(time.Since(start).Seconds())

	log.Info("dataset analysis complete",
		zap.Int64("batches", batches),
		zap.Int64("rows", rows),
		zap.Int("columns", len(columns)),
		zap.Duration("elapsed", time.Since(start)))

	return &DataAnalysis{Columns: columns}, nil
}

// buildColumns allocates one accumulator per schema field, failing fast if any
// column declares a non-string type.
func buildColumns(batch *source.Batch, opts Options) ([]*ColumnAnalysis, error) {
	schema := batch.Schema
	if schema == nil || len(schema.Fields) != len(batch.Columns) {
		return nil, errors.New(errors.ErrorTypeValidation,
			"first batch carries no schema matching its columns")
	}

	for _, field := range schema.Fields {
		if field.Type != source.FieldTypeString {
			return nil, errors.NewUnsupportedColumnType(field.Name, string(field.Type))
		}
	}

	columns := make([]*ColumnAnalysis, len(schema.Fields))
	for i, field := range schema.Fields {
		capture := opts.CaptureColumns.Contains(i)
		columns[i] = newColumnAnalysis(i, field.Name, capture, opts.MaxCaptureCount)
	}
	return columns, nil
}

// readerError propagates structured and context errors verbatim and wraps
// everything else as a reader failure.
func readerError(err error) error {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.WrapReader(err)
}

func recordFailure(dataset string, err error) {
	errType := "reader"
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		errType = string(structured.Type)
	}
	metrics.AnalysisFailures.WithLabelValues(dataset, errType).Inc()
}
