package report

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/transport-report/internal/model"
)

// ExportFileName is the download name of a CSV export.
const ExportFileName = "filtered_data.csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Records renders t as a header and string rows, in table order. Cells are
// formatted as in WriteCSV.
func Records(t *model.Table) (columns []string, rows [][]string) {
	if t == nil {
		return []string{}, [][]string{}
	}
	columns = t.Columns
	if columns == nil {
		columns = []string{}
	}
	rows = make([][]string, len(t.Records))
	for i := range t.Records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = t.Records[i].Value(c)
		}
		rows[i] = row
	}
	return columns, rows
}

// WriteCSV writes t as UTF-8 CSV with a byte-order mark so spreadsheet tools
// detect the Thai headers correctly.
func WriteCSV(w io.Writer, t *model.Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "export: write bom")
	}

	columns, rows := Records(t)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "export: write row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}
