package report

import (
	"time"

	"github.com/sells-group/transport-report/internal/model"
)

// DateBounds returns the earliest and latest non-null assign_date, or nils
// when there are none.
func DateBounds(t *model.Table) (minDate, maxDate *time.Time) {
	for i := range t.Len() {
		d := t.Records[i].AssignDate
		if d == nil {
			continue
		}
		if minDate == nil || d.Before(*minDate) {
			v := *d
			minDate = &v
		}
		if maxDate == nil || d.After(*maxDate) {
			v := *d
			maxDate = &v
		}
	}
	return minDate, maxDate
}

// RouteOptions lists distinct non-null routes in first-seen order.
func RouteOptions(t *model.Table) []string {
	if !t.Has(model.FieldRouteName) {
		return nil
	}
	seen := make(map[string]bool)
	out := []string{}
	for i := range t.Len() {
		r := t.Records[i].RouteName
		if r == nil || seen[*r] {
			continue
		}
		seen[*r] = true
		out = append(out, *r)
	}
	return out
}
