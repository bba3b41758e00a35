package report

import (
	"slices"
	"time"

	"github.com/sells-group/transport-report/internal/model"
)

// OperationalSummary is the headline count block.
type OperationalSummary struct {
	TotalJobs       int   `json:"total_jobs"`
	TotalDeliveries int64 `json:"total_deliveries"`
	TotalItems      int64 `json:"total_items"`
}

// TrendPoint is one calendar day of activity.
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Jobs       int       `json:"jobs"`
	Deliveries int64     `json:"deliveries"`
	Items      int64     `json:"items"`
}

// Day formats the point date as YYYY-MM-DD.
func (p TrendPoint) Day() string {
	return p.Date.Format(model.DateLayout)
}

// Summarize counts distinct jobs and sums deliveries and items.
func Summarize(t *model.Table) OperationalSummary {
	var s OperationalSummary
	jobs := newJobSet()
	for i := range t.Len() {
		rec := &t.Records[i]
		jobs.add(rec.JobID)
		s.TotalDeliveries += rec.NumDeliveries
		s.TotalItems += rec.NumItems
	}
	s.TotalJobs = jobs.len()
	return s
}

// TrendByDate groups rows by calendar day, ascending. Rows without a date
// are left out. It returns nil when the table has no assign_date column.
func TrendByDate(t *model.Table) []TrendPoint {
	if !t.Has(model.FieldAssignDate) {
		return nil
	}

	type acc struct {
		point TrendPoint
		jobs  jobSet
	}
	groups := make(map[time.Time]*acc)
	for i := range t.Len() {
		rec := &t.Records[i]
		if rec.AssignDate == nil {
			continue
		}
		day := dayOf(*rec.AssignDate)
		g, ok := groups[day]
		if !ok {
			g = &acc{point: TrendPoint{Date: day}, jobs: newJobSet()}
			groups[day] = g
		}
		g.jobs.add(rec.JobID)
		g.point.Deliveries += rec.NumDeliveries
		g.point.Items += rec.NumItems
	}

	out := make([]TrendPoint, 0, len(groups))
	for _, g := range groups {
		g.point.Jobs = g.jobs.len()
		out = append(out, g.point)
	}
	slices.SortFunc(out, func(a, b TrendPoint) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// jobSet counts distinct non-empty job ids.
type jobSet map[string]struct{}

func newJobSet() jobSet {
	return make(jobSet)
}

func (s jobSet) add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

func (s jobSet) len() int {
	return len(s)
}
