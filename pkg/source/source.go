// Package source defines the reader contract consumed by the analysis driver:
// a pull-style sequence of columnar row batches plus the schema describing them.
package source

import (
	"context"
	"io"
)

// FieldType represents the declared value type of a column
type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeInt       FieldType = "int"
	FieldTypeFloat     FieldType = "float"
	FieldTypeBool      FieldType = "bool"
	FieldTypeTimestamp FieldType = "timestamp"
)

// Field represents a single column in the schema
type Field struct {
	Name string
	Type FieldType
}

// Schema is an ordered list of column descriptors. Column order is stable for
// the lifetime of a reader.
type Schema struct {
	Name   string
	Fields []Field
}

// Batch is one row-group unit yielded by a reader. Cells are laid out
// column-wise: Columns[i] holds every cell of schema field i, in row order.
// All column slices of a batch have equal length.
type Batch struct {
	Schema  *Schema
	Columns [][]string
}

// Rows returns the number of rows in the batch
func (b *Batch) Rows() int {
	if len(b.Columns) == 0 {
		return 0
	}
	return len(b.Columns[0])
}

// Reader yields successive batches of a dataset. Next returns io.EOF once the
// dataset is exhausted. Readers are accessed by a single sequential caller and
// need not be safe for concurrent use.
type Reader interface {
	// Schema returns the column descriptors. It is valid after the reader has
	// produced its first batch and stable from then on.
	Schema() *Schema
	// Next returns the next batch, or io.EOF at end of dataset.
	Next(ctx context.Context) (*Batch, error)
}

// MemoryReader serves a fixed sequence of batches from memory. It is the
// deterministic reader used in tests and examples.
type MemoryReader struct {
	schema  *Schema
	batches []*Batch
	pos     int
}

// NewMemoryReader creates a MemoryReader over the given batches. Each batch's
// Schema field is populated from schema.
func NewMemoryReader(schema *Schema, batches ...*Batch) *MemoryReader {
	for _, b := range batches {
		b.Schema = schema
	}
	return &MemoryReader{schema: schema, batches: batches}
}

// Schema returns the reader's schema
func (r *MemoryReader) Schema() *Schema {
	return r.schema
}

// Next returns the next batch or io.EOF
func (r *MemoryReader) Next(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.pos >= len(r.batches) {
		return nil, io.EOF
	}
	b := r.batches[r.pos]
	r.pos++
	return b, nil
}

// Reset rewinds the reader to the first batch, allowing a second pass over the
// same data.
func (r *MemoryReader) Reset() {
	r.pos = 0
}
