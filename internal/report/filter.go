// Package report filters a canonical job table and computes the aggregate
// views of the transport dashboard.
package report

import (
	"slices"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/transport-report/internal/model"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange parses two YYYY-MM-DD dates.
func NewDateRange(start, end string) (*DateRange, error) {
	s, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return nil, eris.Wrapf(err, "report: invalid start date %q", start)
	}
	e, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return nil, eris.Wrapf(err, "report: invalid end date %q", end)
	}
	if e.Before(s) {
		return nil, eris.Errorf("report: end date %s is before start date %s", end, start)
	}
	return &DateRange{Start: s, End: e}, nil
}

// Contains reports whether d falls on a day within the range.
func (r DateRange) Contains(d time.Time) bool {
	day := dayOf(d)
	return !day.Before(dayOf(r.Start)) && !day.After(dayOf(r.End))
}

// Filter is a user selection. A nil Dates or empty Routes means no
// restriction on that column.
type Filter struct {
	Dates  *DateRange `json:"dates,omitempty"`
	Routes []string   `json:"routes,omitempty"`
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Dates == nil && len(f.Routes) == 0
}

// Apply returns the rows of t matching f, in table order. A row with a null
// date never matches an active date filter, and a null route never matches
// an active route filter. Restrictions on a column the table does not carry
// are ignored. The source table is not modified.
func Apply(t *model.Table, f Filter) *model.Table {
	if t == nil {
		return &model.Table{Fields: model.NewFieldSet()}
	}

	dates := f.Dates
	if !t.Has(model.FieldAssignDate) {
		dates = nil
	}
	var routes map[string]bool
	if len(f.Routes) > 0 && t.Has(model.FieldRouteName) {
		routes = make(map[string]bool, len(f.Routes))
		for _, r := range f.Routes {
			routes[r] = true
		}
	}

	if dates == nil && routes == nil {
		return t.WithRecords(slices.Clone(t.Records))
	}

	out := make([]model.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		if dates != nil && (rec.AssignDate == nil || !dates.Contains(*rec.AssignDate)) {
			continue
		}
		if routes != nil && (rec.RouteName == nil || !routes[*rec.RouteName]) {
			continue
		}
		out = append(out, rec)
	}
	return t.WithRecords(out)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
