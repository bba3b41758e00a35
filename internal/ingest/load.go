// Package ingest turns an uploaded spreadsheet into a canonical table of
// transport job records.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/fetcher"
	"github.com/sells-group/transport-report/internal/model"
)

// ParseError reports an upload that is not a readable spreadsheet. No partial
// table accompanies it.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return "parse spreadsheet: " + e.Err.Error()
	}
	return fmt.Sprintf("parse spreadsheet %s: %s", e.Name, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadOptions selects the sheet of an XLSX workbook.
type LoadOptions struct {
	SheetIndex int
}

// Load parses data into a raw table. Files named *.csv are read as CSV;
// everything else must be an XLSX workbook, of which only the selected sheet
// (the first by default) is read.
func Load(ctx context.Context, data []byte, name string, opts LoadOptions) (*model.RawTable, error) {
	var (
		rows  [][]string
		sheet string
	)

	if strings.EqualFold(filepath.Ext(name), ".csv") {
		csvRows, err := fetcher.ReadCSV(ctx, bytes.NewReader(data), fetcher.CSVOptions{LazyQuotes: true})
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		rows = csvRows
	} else {
		s, err := fetcher.ReadXLSXBytes(data, fetcher.XLSXOptions{SheetIndex: opts.SheetIndex})
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		rows, sheet = s.Rows, s.Name
	}

	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "ingest: load")
	}

	raw := buildRawTable(rows)
	raw.Sheet = sheet

	zap.L().Debug("ingest: loaded sheet",
		zap.String("file", name),
		zap.String("sheet", sheet),
		zap.Int("columns", len(raw.Header)),
		zap.Int("rows", raw.Len()),
	)
	return raw, nil
}

// buildRawTable takes the first row as the header. Blank header cells become
// "Unnamed: <i>" and repeated headers get ".1", ".2" suffixes so every column
// has a distinct name. Rows are padded to the widest row.
func buildRawTable(rows [][]string) *model.RawTable {
	if len(rows) == 0 {
		return &model.RawTable{Header: []string{}, Rows: [][]string{}}
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	header := make([]string, width)
	seen := make(map[string]int, width)
	for i := range width {
		h := ""
		if i < len(rows[0]) {
			h = rows[0][i]
		}
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n+1)
		}
		seen[h] = 0
		header[i] = h
	}

	data := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		row := make([]string, width)
		copy(row, r)
		data = append(data, row)
	}

	return &model.RawTable{Header: header, Rows: data}
}
