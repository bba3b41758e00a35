package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// XLSXSheet is the cell text of one worksheet.
type XLSXSheet struct {
	Name string
	Rows [][]string
}

// ReadXLSXBytes parses an in-memory XLSX workbook and returns the selected
// sheet as string rows. Fully blank rows are dropped.
func ReadXLSXBytes(data []byte, opts XLSXOptions) (*XLSXSheet, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open workbook")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	out := &XLSXSheet{Name: sheet.Name}
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := rowToStrings(row, f.Date1904)
		if isBlank(cells) {
			continue
		}
		out.Rows = append(out.Rows, cells)
	}

	return out, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row, date1904 bool) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		cells[j] = cellText(cell, date1904)
	}
	return cells
}

// cellText renders date cells as ISO dates and numeric cells as their stored
// value so that display formats such as "#,##0" do not leak into parsing.
func cellText(cell *xlsx.Cell, date1904 bool) string {
	if cell.Type() == xlsx.CellTypeNumeric || cell.Type() == xlsx.CellTypeDate {
		if cell.IsTime() {
			t, err := cell.GetTime(date1904)
			if err == nil {
				if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
					return t.Format("2006-01-02")
				}
				return t.Format("2006-01-02 15:04:05")
			}
		}
		return strings.TrimSpace(cell.Value)
	}
	return cell.String()
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
