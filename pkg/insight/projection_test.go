package insight

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotExportsState(t *testing.T) {
	c := newColumnAnalysis(0, "amount", true, 10)
	observeAll(c, NewNullLikeSet("n/a"), "1", "2", "n/a")

	snap := c.Snapshot()

	assert.Equal(t, "amount", snap.ColumnName)
	assert.EqualValues(t, 3, snap.RowsSeen)
	assert.EqualValues(t, 2, snap.NumericCount)
	require.NotNil(t, snap.NumericMin)
	assert.Equal(t, 1.0, *snap.NumericMin)
	require.NotNil(t, snap.NumericMax)
	assert.Equal(t, 2.0, *snap.NumericMax)
	assert.Equal(t, 1.5, snap.NumericMean)
	assert.EqualValues(t, 1, snap.StringNullLikeCount)
	assert.Equal(t, []string{"1", "2", "n/a"}, snap.CapturedUniqueValues)
	assert.Equal(t, "n/a", snap.ExampleValue)
}

func TestSnapshotIsDetached(t *testing.T) {
	c := newColumnAnalysis(0, "v", false, 10)
	c.observe("5", nil)

	snap := c.Snapshot()
	snap.RowsSeen = 99

	assert.EqualValues(t, 1, c.RowsSeen)
}

func TestSnapshotOmitsRangeWithoutNumerics(t *testing.T) {
	c := newColumnAnalysis(0, "v", false, 10)
	c.observe("abc", nil)

	snap := c.Snapshot()
	assert.Nil(t, snap.NumericMin)
	assert.Nil(t, snap.NumericMax)
	assert.Zero(t, snap.NumericMean)

	// The JSON form stays well defined even with no numeric cells.
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "numeric_min")
}

func TestToDictCanonicalStrings(t *testing.T) {
	c := newColumnAnalysis(0, "amount", true, 10)
	observeAll(c, nil, "1", "2.5", "x")

	d := c.ToDict()

	assert.Equal(t, "3", d["rows_seen"])
	assert.Equal(t, "2", d["numeric_count"])
	assert.Equal(t, "1", d["numeric_nan_count"])
	assert.Equal(t, "1", d["numeric_min"])
	assert.Equal(t, "2.5", d["numeric_max"])
	assert.Equal(t, "1.75", d["numeric_mean"])
	assert.Equal(t, "x", d["example_value"])
	assert.Equal(t, []string{"1", "2.5", "x"}, d["string_captured_unique_values"])
	assert.Equal(t, false, d["string_captured_unique_values_overflowed"])
}

func TestToDictWithoutCapture(t *testing.T) {
	c := newColumnAnalysis(0, "v", false, 10)
	c.observe("1", nil)

	d := c.ToDict()
	assert.NotContains(t, d, "string_captured_unique_values")
}

func TestDataAnalysisMarshalJSON(t *testing.T) {
	a := newColumnAnalysis(0, "name", false, 10)
	b := newColumnAnalysis(1, "amount", false, 10)
	observeAll(a, nil, "alice", "bob")
	observeAll(b, nil, "10", "20")

	analysis := &DataAnalysis{Columns: []*ColumnAnalysis{a, b}}

	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	var decoded struct {
		Columns []struct {
			ColumnName  string  `json:"column_name"`
			RowsSeen    int64   `json:"rows_seen"`
			NumericMean float64 `json:"numeric_mean"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Columns, 2)
	assert.Equal(t, "name", decoded.Columns[0].ColumnName)
	assert.Equal(t, 15.0, decoded.Columns[1].NumericMean)
}
