package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedColumnType(t *testing.T) {
	err := NewUnsupportedColumnType("age", "float64")

	require.Error(t, err)
	assert.True(t, IsUnsupportedColumnType(err))
	assert.False(t, IsSchemaMismatch(err))
	assert.Contains(t, err.Error(), "age")
	assert.Contains(t, err.Error(), "float64")
	assert.NotEmpty(t, err.Stack)
}

func TestNewSchemaMismatch(t *testing.T) {
	err := NewSchemaMismatch(3, 5)

	assert.True(t, IsSchemaMismatch(err))
	assert.Contains(t, err.Error(), "5 columns")
	assert.Contains(t, err.Error(), "established 3")
}

func TestWrapReader(t *testing.T) {
	cause := stderrors.New("unexpected EOF in row 17")
	err := WrapReader(cause)

	assert.True(t, IsReaderFailure(err))
	assert.ErrorIs(t, err, cause)

	// Wrapping nil yields nil so callers can wrap unconditionally.
	assert.Nil(t, WrapReader(nil))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeFile, "open failed")
	outer := Wrap(inner, ErrorTypeReader, "reading dataset")

	require.Error(t, outer)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, IsReaderFailure(outer))
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := NewSchemaMismatch(2, 4)
	wrapped := fmt.Errorf("analysis aborted: %w", err)

	assert.True(t, IsSchemaMismatch(wrapped))
	assert.False(t, IsType(wrapped, ErrorTypeConfig))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeReader))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeValidation, "bad capture bound").
		WithDetail("max_capture_count", -1)

	assert.Equal(t, -1, err.Details["max_capture_count"])
}
