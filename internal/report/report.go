package report

import (
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/model"
)

// Options tunes Build.
type Options struct {
	// TopN limits the by-jobs route ranking. Zero keeps every route.
	TopN int
}

// Report is every aggregate view of one filtered table. Views that depend on
// a column the upload lacks are nil.
type Report struct {
	Filter   Filter             `json:"filter"`
	RowCount int                `json:"row_count"`
	Summary  OperationalSummary `json:"summary"`
	Trend    []TrendPoint       `json:"trend"`
	Cost     CostAnalysis       `json:"cost"`
	Routes   *RouteReport       `json:"routes"`
	Delivery *Delivery          `json:"delivery"`
}

// Build filters t and computes the full battery of views over the result.
func Build(t *model.Table, f Filter, opts Options) *Report {
	filtered := Apply(t, f)

	rep := &Report{
		Filter:   f,
		RowCount: filtered.Len(),
		Summary:  Summarize(filtered),
		Trend:    TrendByDate(filtered),
		Cost:     AnalyzeCost(filtered),
		Routes:   RoutePerformance(filtered, opts.TopN),
		Delivery: DeliveryPerformance(filtered),
	}

	zap.L().Debug("report: built",
		zap.Int("rows", t.Len()),
		zap.Int("filtered_rows", rep.RowCount),
		zap.Bool("date_filter", f.Dates != nil),
		zap.Int("route_filter", len(f.Routes)),
	)
	return rep
}
