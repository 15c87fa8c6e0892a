package source

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringSchema(names ...string) *Schema {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Type: FieldTypeString}
	}
	return &Schema{Name: "test", Fields: fields}
}

func TestBatchRows(t *testing.T) {
	b := &Batch{Columns: [][]string{{"a", "b"}, {"1", "2"}}}
	assert.Equal(t, 2, b.Rows())

	empty := &Batch{}
	assert.Equal(t, 0, empty.Rows())
}

func TestMemoryReaderSequence(t *testing.T) {
	schema := stringSchema("name", "amount")
	reader := NewMemoryReader(schema,
		&Batch{Columns: [][]string{{"alice"}, {"10"}}},
		&Batch{Columns: [][]string{{"bob", "carol"}, {"20", "30"}}},
	)

	ctx := context.Background()

	first, err := reader.Next(ctx)
	require.NoError(t, err)
	assert.Same(t, schema, first.Schema)
	assert.Equal(t, 1, first.Rows())

	second, err := reader.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Rows())

	_, err = reader.Next(ctx)
	assert.Equal(t, io.EOF, err)

	// EOF is sticky.
	_, err = reader.Next(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestMemoryReaderReset(t *testing.T) {
	reader := NewMemoryReader(stringSchema("c"),
		&Batch{Columns: [][]string{{"x"}}},
	)

	ctx := context.Background()
	_, err := reader.Next(ctx)
	require.NoError(t, err)
	_, err = reader.Next(ctx)
	require.Equal(t, io.EOF, err)

	reader.Reset()
	b, err := reader.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", b.Columns[0][0])
}

func TestMemoryReaderContextCancelled(t *testing.T) {
	reader := NewMemoryReader(stringSchema("c"),
		&Batch{Columns: [][]string{{"x"}}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryReaderEmpty(t *testing.T) {
	reader := NewMemoryReader(stringSchema("c"))
	_, err := reader.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}
