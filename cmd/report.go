package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/transport-report/internal/report"
)

var (
	reportFlags  filterFlags
	reportTop    int
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the aggregate report of a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("report"); err != nil {
			return err
		}
		if reportFormat != "text" && reportFormat != "json" {
			return eris.Errorf("unknown format %q (want text or json)", reportFormat)
		}
		f, err := reportFlags.filter()
		if err != nil {
			return err
		}

		tbl, err := loadTable(ctx, cfg, reportFlags.file)
		if err != nil {
			return err
		}

		top := cfg.Report.TopN
		if cmd.Flags().Changed("top") {
			top = reportTop
		}
		rep := report.Build(tbl, f, report.Options{TopN: top})

		if reportFormat == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		return writeTextReport(cmd.OutOrStdout(), rep)
	},
}

func init() {
	addFilterFlags(reportCmd, &reportFlags)
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "routes in the by-jobs ranking, 0 for all (default from config)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(reportCmd)
}

// writeTextReport renders rep for a terminal with grouped numbers.
func writeTextReport(w io.Writer, rep *report.Report) error {
	p := message.NewPrinter(language.English)
	bw := &errWriter{w: w}

	p.Fprintf(bw, "Rows: %d\n\n", rep.RowCount)

	p.Fprintf(bw, "Operations\n")
	p.Fprintf(bw, "  Jobs:        %d\n", rep.Summary.TotalJobs)
	p.Fprintf(bw, "  Deliveries:  %d\n", rep.Summary.TotalDeliveries)
	p.Fprintf(bw, "  Items:       %d\n\n", rep.Summary.TotalItems)

	p.Fprintf(bw, "Cost\n")
	p.Fprintf(bw, "  Total:            ฿%.2f\n", rep.Cost.TotalCost)
	p.Fprintf(bw, "  Average per job:  ฿%.2f\n", rep.Cost.AvgCostPerJob)
	p.Fprintf(bw, "  Base:             ฿%.2f\n", rep.Cost.BaseCostSum)
	p.Fprintf(bw, "  Additional:       ฿%.2f\n", rep.Cost.AdditionalCostSum)

	if rep.Trend != nil {
		p.Fprintf(bw, "\nTrend by assign date\n")
		for _, pt := range rep.Trend {
			p.Fprintf(bw, "  %s  jobs %d  deliveries %d  items %d\n", pt.Day(), pt.Jobs, pt.Deliveries, pt.Items)
		}
	}

	if rep.Routes != nil {
		p.Fprintf(bw, "\nRoutes by jobs\n")
		for _, r := range rep.Routes.ByJobs {
			p.Fprintf(bw, "  %-24s jobs %d  total ฿%.2f  avg ฿%.2f\n", r.Route, r.TotalJobs, r.TotalCost, r.AvgCost)
		}
		writeRanking(p, bw, "Top routes by total cost", rep.Routes.TopByCost)
		writeRanking(p, bw, "Cheapest routes by average cost", rep.Routes.Cheapest)
		writeRanking(p, bw, "Most expensive routes by average cost", rep.Routes.MostExpensive)
		if c := rep.Routes.CheapestRoute; c != nil {
			p.Fprintf(bw, "\nCheapest route: %s (avg ฿%.2f)\n", c.Route, c.AvgCost)
		}
	}

	if d := rep.Delivery; d != nil {
		p.Fprintf(bw, "\nDelivery\n")
		p.Fprintf(bw, "  Success:  %d (%.1f%%)\n", d.SuccessCount, d.SuccessPct)
		p.Fprintf(bw, "  Fail:     %d (%.1f%%)\n", d.FailCount, d.FailPct)
	}

	return bw.err
}

func writeRanking(p *message.Printer, w io.Writer, title string, rs []report.RouteStats) {
	p.Fprintf(w, "\n%s\n", title)
	for i, r := range rs {
		p.Fprintf(w, "  %2d. %-24s avg ฿%.2f  total ฿%.2f\n", i+1, r.Route, r.AvgCost, r.TotalCost)
	}
}

// errWriter keeps the first write error so rendering code can ignore them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = fmt.Errorf("write report: %w", err)
	}
	return n, err
}
