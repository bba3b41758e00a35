package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/config"
	"github.com/sells-group/transport-report/internal/fetcher"
	"github.com/sells-group/transport-report/internal/ingest"
	"github.com/sells-group/transport-report/internal/model"
	"github.com/sells-group/transport-report/internal/report"
)

// filterFlags are the filter options shared by report and export.
type filterFlags struct {
	file   string
	start  string
	end    string
	routes []string
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringVar(&f.file, "file", "", "spreadsheet to read: local path, http(s):// or ftp:// URL")
	cmd.Flags().StringVar(&f.start, "start", "", "first assign date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last assign date to include (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.routes, "route", nil, "route name to include (repeatable)")
	_ = cmd.MarkFlagRequired("file")
}

// filter converts the flags into a report filter. --start and --end must be
// given together.
func (f filterFlags) filter() (report.Filter, error) {
	var out report.Filter
	switch {
	case f.start == "" && f.end == "":
	case f.start == "" || f.end == "":
		return out, eris.New("--start and --end must be given together")
	default:
		dr, err := report.NewDateRange(f.start, f.end)
		if err != nil {
			return out, err
		}
		out.Dates = dr
	}
	out.Routes = f.routes
	return out, nil
}

// newReader builds an ingest reader from the ingest config, including any
// header alias file.
func newReader(c *config.Config) (*ingest.Reader, error) {
	var aliases map[string]model.Field
	if c.Ingest.ColumnsFile != "" {
		a, err := ingest.LoadColumnsFile(c.Ingest.ColumnsFile)
		if err != nil {
			return nil, err
		}
		aliases = a
	}
	return ingest.NewReader(ingest.NewNormalizer(aliases), ingest.LoadOptions{SheetIndex: c.Ingest.SheetIndex}), nil
}

// newSource builds the spreadsheet source from the fetch config.
func newSource(c *config.Config) *fetcher.Source {
	return fetcher.NewSource(fetcher.SourceOptions{
		MaxBytes: c.Fetch.MaxBytes(),
		HTTP: fetcher.HTTPOptions{
			UserAgent:  c.Fetch.UserAgent,
			Timeout:    c.Fetch.Timeout(),
			MaxRetries: c.Fetch.MaxRetries,
			RatePerSec: c.Fetch.RatePerSec,
		},
		FTP: fetcher.FTPOptions{Timeout: c.Fetch.Timeout()},
	})
}

// loadTable fetches src and normalizes it.
func loadTable(ctx context.Context, c *config.Config, src string) (*model.Table, error) {
	reader, err := newReader(c)
	if err != nil {
		return nil, err
	}
	data, name, err := newSource(c).Read(ctx, src)
	if err != nil {
		return nil, eris.Wrap(err, "load source")
	}
	tbl, err := reader.Read(ctx, data, name)
	if err != nil {
		return nil, err
	}
	zap.L().Info("loaded spreadsheet",
		zap.String("source", src),
		zap.Int("rows", tbl.Len()),
		zap.Int("columns", len(tbl.Columns)),
	)
	return tbl, nil
}
