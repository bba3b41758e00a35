package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_DateRange(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "2024-01-01", 10),
		rec("2", "A", "2024-01-02", 20),
		rec("3", "A", "", 30),
	)
	dr, err := NewDateRange("2024-01-02", "2024-01-02")
	require.NoError(t, err)

	out := Apply(tbl, Filter{Dates: dr})
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "2", out.Records[0].JobID)
	assert.Equal(t, 3, tbl.Len(), "source table untouched")
}

func TestApply_Routes(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "", 10),
		rec("2", "B", "", 20),
		rec("3", "", "", 30),
		rec("4", "C", "", 40),
	)

	out := Apply(tbl, Filter{Routes: []string{"C", "A"}})
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "1", out.Records[0].JobID)
	assert.Equal(t, "4", out.Records[1].JobID)
}

func TestApply_Combined(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "2024-01-01", 10),
		rec("2", "B", "2024-01-01", 20),
		rec("3", "A", "2024-02-01", 30),
	)
	dr, err := NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	out := Apply(tbl, Filter{Dates: dr, Routes: []string{"A"}})
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "1", out.Records[0].JobID)
}

func TestApply_NoFilterKeepsEverything(t *testing.T) {
	tbl := fullTable(rec("1", "", "", 1), rec("2", "", "", 2))
	out := Apply(tbl, Filter{})
	assert.Equal(t, tbl.Records, out.Records)
	assert.Equal(t, tbl.Columns, out.Columns)
}

func TestApply_Idempotent(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "2024-01-01", 10),
		rec("2", "B", "2024-01-05", 20),
		rec("3", "A", "2024-01-09", 30),
		rec("4", "", "2024-01-03", 40),
	)
	dr, err := NewDateRange("2024-01-02", "2024-01-09")
	require.NoError(t, err)
	f := Filter{Dates: dr, Routes: []string{"A", "B"}}

	once := Apply(tbl, f)
	twice := Apply(once, f)
	assert.Equal(t, once.Records, twice.Records)
}

func TestApply_IgnoresAbsentColumns(t *testing.T) {
	tbl := costOnly(rec("1", "", "", 5), rec("2", "", "", 6))
	dr, err := NewDateRange("2024-01-01", "2024-01-01")
	require.NoError(t, err)

	out := Apply(tbl, Filter{Dates: dr, Routes: []string{"A"}})
	assert.Equal(t, 2, out.Len())
}

func TestApply_NilTable(t *testing.T) {
	out := Apply(nil, Filter{Routes: []string{"A"}})
	assert.Equal(t, 0, out.Len())
}

func TestNewDateRange(t *testing.T) {
	_, err := NewDateRange("2024-13-01", "2024-01-01")
	assert.Error(t, err)

	_, err = NewDateRange("2024-01-01", "01/02/2024")
	assert.Error(t, err)

	_, err = NewDateRange("2024-01-05", "2024-01-01")
	assert.Error(t, err)

	dr, err := NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, dr.Contains(*day("2024-01-31")))
	assert.False(t, dr.Contains(*day("2024-02-01")))
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Routes: []string{"A"}}.IsZero())
}
