package fetcher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets []string, rows map[string][][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for _, name := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows[name] {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadXLSXBytes_Basic(t *testing.T) {
	data := createTestXLSX(t, []string{"Sheet1"}, map[string][][]string{
		"Sheet1": {
			{"job_id", "route_name"},
			{"1", "A"},
			{"2", "B"},
		},
	})

	sheet, err := ReadXLSXBytes(data, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, []string{"job_id", "route_name"}, sheet.Rows[0])
	assert.Equal(t, []string{"2", "B"}, sheet.Rows[2])
}

func TestReadXLSXBytes_FirstSheetOnly(t *testing.T) {
	data := createTestXLSX(t, []string{"First", "Second"}, map[string][][]string{
		"First":  {{"a"}, {"1"}},
		"Second": {{"x"}, {"9"}, {"10"}},
	})

	sheet, err := ReadXLSXBytes(data, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, "First", sheet.Name)
	assert.Len(t, sheet.Rows, 2)
}

func TestReadXLSXBytes_SheetName(t *testing.T) {
	data := createTestXLSX(t, []string{"First", "Second"}, map[string][][]string{
		"First":  {{"a"}},
		"Second": {{"x", "y"}, {"1", "2"}},
	})

	sheet, err := ReadXLSXBytes(data, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"1", "2"}, sheet.Rows[1])
}

func TestReadXLSXBytes_SheetErrors(t *testing.T) {
	data := createTestXLSX(t, []string{"Sheet1"}, map[string][][]string{
		"Sheet1": {{"a"}},
	})

	_, err := ReadXLSXBytes(data, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = ReadXLSXBytes(data, XLSXOptions{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSXBytes_SkipsBlankRows(t *testing.T) {
	data := createTestXLSX(t, []string{"Sheet1"}, map[string][][]string{
		"Sheet1": {
			{"job_id"},
			{"1"},
			{"  "},
			{"2"},
		},
	})

	sheet, err := ReadXLSXBytes(data, XLSXOptions{})
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 3)
}

func TestReadXLSXBytes_NumericCellsUseRawValue(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	header := sheet.AddRow()
	header.AddCell().SetString("total_cost")
	row := sheet.AddRow()
	row.AddCell().SetFloatWithFormat(1500.5, "#,##0.00")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := ReadXLSXBytes(buf.Bytes(), XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "1500.5", got.Rows[1][0])
}

func TestReadXLSXBytes_InvalidBytes(t *testing.T) {
	_, err := ReadXLSXBytes([]byte("definitely not a workbook"), XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open workbook")
}
