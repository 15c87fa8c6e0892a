// Package csv provides a CSV file reader that yields columnar batches for
// dataset analysis. Files with a .gz suffix are decompressed transparently.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/datascope-io/datascope/pkg/errors"
	"github.com/datascope-io/datascope/pkg/logger"
	"github.com/datascope-io/datascope/pkg/source"
)

// Options configures a CSV reader
type Options struct {
	// Path to the CSV file (required)
	Path string
	// BatchSize is the maximum number of rows per batch (default 1000)
	BatchSize int
	// Comma is the field delimiter (default ',')
	Comma rune
	// HasHeader indicates the first row holds column names; without it
	// columns are named column_N
	HasHeader bool
	// Logger overrides the global logger
	Logger *zap.Logger
}

// Reader reads a CSV file as a sequence of columnar string batches. Every
// column is declared FieldTypeString; type inference is deliberately not
// performed, the analysis classifies cell contents itself.
type Reader struct {
	opts    Options
	file    *os.File
	gz      *gzip.Reader
	csv     *csv.Reader
	schema  *source.Schema
	rowBuf  []string
	done    bool
	rowsOut int64
	logger  *zap.Logger
}

// NewReader opens the file and reads the header row to establish the schema.
func NewReader(opts Options) (*Reader, error) {
	if opts.Path == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "csv reader requires a path")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}

	file, err := os.Open(opts.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open csv file")
	}

	r := &Reader{
		opts:   opts,
		file:   file,
		logger: opts.Logger.With(zap.String("path", opts.Path)),
	}

	var raw io.Reader = file
	if strings.HasSuffix(opts.Path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open gzip stream")
		}
		r.gz = gz
		raw = gz
	}

	r.csv = csv.NewReader(raw)
	r.csv.ReuseRecord = true
	if opts.Comma != 0 {
		r.csv.Comma = opts.Comma
	}

	if err := r.readSchema(); err != nil {
		_ = r.Close()
		return nil, err
	}

	r.logger.Debug("opened csv dataset",
		zap.Int("columns", len(r.schema.Fields)),
		zap.Int("batch_size", opts.BatchSize))

	return r, nil
}

// readSchema derives the schema from the header row, or from the width of the
// first data row when the file has no header.
func (r *Reader) readSchema() error {
	row, err := r.csv.Read()
	if err == io.EOF {
		// Empty file: zero-column schema, zero batches.
		r.schema = &source.Schema{Name: r.opts.Path}
		r.done = true
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeReader, "failed to read csv header")
	}

	fields := make([]source.Field, len(row))
	if r.opts.HasHeader {
		for i, name := range row {
			fields[i] = source.Field{Name: name, Type: source.FieldTypeString}
		}
	} else {
		for i := range row {
			fields[i] = source.Field{Name: columnName(i), Type: source.FieldTypeString}
		}
		// The first row is data, keep it for the first batch.
		r.rowBuf = append([]string(nil), row...)
	}

	r.schema = &source.Schema{Name: r.opts.Path, Fields: fields}
	return nil
}

// Schema returns the column descriptors derived from the header
func (r *Reader) Schema() *source.Schema {
	return r.schema
}

// Next reads up to BatchSize rows and returns them as a columnar batch.
// It returns io.EOF once the file is exhausted.
func (r *Reader) Next(ctx context.Context) (*source.Batch, error) {
	if r.done {
		return nil, io.EOF
	}

	cols := make([][]string, len(r.schema.Fields))
	for i := range cols {
		cols[i] = make([]string, 0, r.opts.BatchSize)
	}
	rows := 0

	if r.rowBuf != nil {
		appendRow(cols, r.rowBuf)
		r.rowBuf = nil
		rows++
	}

	for rows < r.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := r.csv.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			return nil, errors.WrapReader(err)
		}
		if len(row) != len(cols) {
			return nil, errors.NewSchemaMismatch(len(cols), len(row))
		}

		appendRow(cols, row)
		rows++
	}

	if rows == 0 {
		return nil, io.EOF
	}

	r.rowsOut += int64(rows)
	return &source.Batch{Schema: r.schema, Columns: cols}, nil
}

// RowsRead returns the total number of data rows yielded so far
func (r *Reader) RowsRead() int64 {
	return r.rowsOut
}

// Close releases the underlying file handles
func (r *Reader) Close() error {
	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return err
		}
	}
	return gzErr
}

// appendRow copies one record into the columnar layout. The csv reader reuses
// its record slice, so cells must be copied here.
func appendRow(cols [][]string, row []string) {
	for i, cell := range row {
		cols[i] = append(cols[i], cell)
	}
}

func columnName(i int) string {
	return fmt.Sprintf("column_%d", i)
}
