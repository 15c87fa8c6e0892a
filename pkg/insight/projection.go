package insight

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// Snapshot is the read-only export form of a ColumnAnalysis, taken after the
// driver completes. Mutating a snapshot never touches the accumulator.
type Snapshot struct {
	ColumnName string `json:"column_name"`

	RowsSeen        int64 `json:"rows_seen"`
	NumericCount    int64 `json:"numeric_count"`
	NumericNaNCount int64 `json:"numeric_nan_count"`

	// NumericMin and NumericMax are nil until the column has seen a cell
	// that parsed as a float. NumericMean is zero by convention then.
	NumericMin  *float64 `json:"numeric_min,omitempty"`
	NumericMax  *float64 `json:"numeric_max,omitempty"`
	NumericMean float64  `json:"numeric_mean"`

	StringEmptyCount          int64 `json:"string_empty_count"`
	StringOnlyWhitespaceCount int64 `json:"string_only_whitespace_count"`
	StringNullLikeCount       int64 `json:"string_null_like_count"`

	CapturedUniqueValues           []string `json:"string_captured_unique_values,omitempty"`
	CapturedUniqueValuesOverflowed bool     `json:"string_captured_unique_values_overflowed"`

	ExampleValue string `json:"example_value"`
}

// Snapshot exports the accumulator's current state by value.
func (c *ColumnAnalysis) Snapshot() Snapshot {
	var min, max *float64
	if c.HasNumeric() {
		minV, maxV := c.NumericMin, c.NumericMax
		min, max = &minV, &maxV
	}
	return Snapshot{
		ColumnName:                     c.ColumnName,
		RowsSeen:                       c.RowsSeen,
		NumericCount:                   c.NumericCount,
		NumericNaNCount:                c.NumericNaNCount,
		NumericMin:                     min,
		NumericMax:                     max,
		NumericMean:                    c.NumericMean,
		StringEmptyCount:               c.StringEmptyCount,
		StringOnlyWhitespaceCount:      c.StringOnlyWhitespaceCount,
		StringNullLikeCount:            c.StringNullLikeCount,
		CapturedUniqueValues:           c.CapturedValues(),
		CapturedUniqueValuesOverflowed: c.CapturedOverflowed,
		ExampleValue:                   c.ExampleValue,
	}
}

// ToDict renders the accumulator as a flat dictionary: counters and floats in
// their canonical string form, the captured sample as an explicit sorted set.
func (c *ColumnAnalysis) ToDict() map[string]interface{} {
	d := map[string]interface{}{
		"column_name":                  c.ColumnName,
		"rows_seen":                    formatInt(c.RowsSeen),
		"numeric_count":                formatInt(c.NumericCount),
		"numeric_nan_count":            formatInt(c.NumericNaNCount),
		"numeric_min":                  formatFloat(c.NumericMin),
		"numeric_max":                  formatFloat(c.NumericMax),
		"numeric_mean":                 formatFloat(c.NumericMean),
		"string_empty_count":           formatInt(c.StringEmptyCount),
		"string_only_whitespace_count": formatInt(c.StringOnlyWhitespaceCount),
		"string_null_like_count":       formatInt(c.StringNullLikeCount),
		"example_value":                c.ExampleValue,
	}
	if c.IsCaptured() {
		d["string_captured_unique_values"] = c.CapturedValues()
		d["string_captured_unique_values_overflowed"] = c.CapturedOverflowed
	}
	return d
}

// Snapshots exports every column in schema order.
func (d *DataAnalysis) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(d.Columns))
	for i, c := range d.Columns {
		snaps[i] = c.Snapshot()
	}
	return snaps
}

// MarshalJSON renders the analysis as a JSON object keyed "columns".
func (d *DataAnalysis) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Columns []Snapshot `json:"columns"`
	}{Columns: d.Snapshots()})
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
