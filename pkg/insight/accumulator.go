package insight

import (
	"math"
	"sort"
	"strconv"
)

// NullLikeSet is the caller-supplied vocabulary of strings that denote a
// missing value. Entries are stored case-folded and trimmed; membership is
// checked against the same projection of a cell.
type NullLikeSet map[string]struct{}

// NewNullLikeSet builds a NullLikeSet, folding and trimming each entry.
func NewNullLikeSet(values ...string) NullLikeSet {
	s := make(NullLikeSet, len(values))
	for _, v := range values {
		s[foldTrim(v)] = struct{}{}
	}
	return s
}

// Contains reports whether the already-folded value is in the set
func (s NullLikeSet) Contains(folded string) bool {
	_, ok := s[folded]
	return ok
}

// CaptureColumnSet is the set of zero-based column indices that record a
// bounded sample of their distinct values.
type CaptureColumnSet map[int]struct{}

// NewCaptureColumnSet builds a CaptureColumnSet from column indices.
func NewCaptureColumnSet(indices ...int) CaptureColumnSet {
	s := make(CaptureColumnSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Contains reports whether column index i opted into capture
func (s CaptureColumnSet) Contains(i int) bool {
	_, ok := s[i]
	return ok
}

// ColumnAnalysis accumulates the statistics of a single column. One instance
// exists per column for the lifetime of a run; it is mutated by exactly one
// goroutine per batch and read-only once the driver returns.
type ColumnAnalysis struct {
	// ColumnName is the display name from the schema
	ColumnName string
	// Index is the zero-based column position, stable for the run
	Index int

	// RowsSeen counts every cell visited
	RowsSeen int64

	// NumericCount counts cells that parsed as a float; NumericNaNCount
	// counts cells that did not. Their sum always equals RowsSeen.
	NumericCount    int64
	NumericNaNCount int64

	// NumericMin and NumericMax hold the running range of parsed values.
	// They are NaN until the first successful parse.
	NumericMin float64
	NumericMax float64

	// NumericMean is the incremental mean of parsed values. A raw sum is
	// never kept, so precision and memory stay bounded on long streams.
	NumericMean float64

	// StringEmptyCount counts cells whose raw value has zero length.
	// StringOnlyWhitespaceCount counts non-empty cells made entirely of
	// whitespace. StringNullLikeCount counts cells whose folded, trimmed
	// value is in the null-like set.
	StringEmptyCount          int64
	StringOnlyWhitespaceCount int64
	StringNullLikeCount       int64

	// CapturedOverflowed latches true once an unseen value is dropped
	// because the capture bound was reached. It never reverts.
	CapturedOverflowed bool

	// ExampleValue is the last raw cell seen, kept as a diagnostic sample
	ExampleValue string

	captured   map[string]struct{}
	capture    bool
	maxCapture int
}

// newColumnAnalysis creates the accumulator for one column.
func newColumnAnalysis(index int, name string, capture bool, maxCapture int) *ColumnAnalysis {
	c := &ColumnAnalysis{
		ColumnName: name,
		Index:      index,
		NumericMin: math.NaN(),
		NumericMax: math.NaN(),
		capture:    capture,
		maxCapture: maxCapture,
	}
	if capture {
		c.captured = make(map[string]struct{})
	}
	return c
}

// observe folds one cell into the accumulator. The update order is fixed:
// row bookkeeping, capture, numeric parse, then the string classifiers.
func (c *ColumnAnalysis) observe(cell string, nullLike NullLikeSet) {
	c.RowsSeen++
	c.ExampleValue = cell

	if c.capture {
		if _, seen := c.captured[cell]; !seen {
			if len(c.captured) < c.maxCapture {
				c.captured[cell] = struct{}{}
			} else {
				c.CapturedOverflowed = true
			}
		}
	}

	// Strict grammar: the whole cell must parse to a finite float, no
	// partial or guessed parses. Tokens like "NaN" or "Inf" are excluded so
	// the running range and mean stay well defined. Parse failure is a
	// counted outcome, never an error.
	if v, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		c.NumericCount++
		if math.IsNaN(c.NumericMin) || v < c.NumericMin {
			c.NumericMin = v
		}
		if math.IsNaN(c.NumericMax) || v > c.NumericMax {
			c.NumericMax = v
		}
		c.NumericMean += (v - c.NumericMean) / float64(c.NumericCount)
	} else {
		c.NumericNaNCount++
	}

	folded := foldTrim(cell)
	for _, classify := range stringClassifiers {
		classify(c, cell, folded, nullLike)
	}
}

// HasNumeric reports whether at least one cell parsed as a float, i.e.
// whether NumericMin, NumericMax and NumericMean carry meaningful values.
func (c *ColumnAnalysis) HasNumeric() bool {
	return c.NumericCount > 0
}

// IsCaptured reports whether this column records a distinct-value sample
func (c *ColumnAnalysis) IsCaptured() bool {
	return c.capture
}

// CapturedValues returns the bounded distinct-value sample in sorted order.
// It returns nil for columns not opted into capture.
func (c *ColumnAnalysis) CapturedValues() []string {
	if c.captured == nil {
		return nil
	}
	values := make([]string, 0, len(c.captured))
	for v := range c.captured {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// CapturedCount returns the current size of the distinct-value sample
func (c *ColumnAnalysis) CapturedCount() int {
	return len(c.captured)
}
