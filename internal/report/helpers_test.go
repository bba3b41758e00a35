package report

import (
	"time"

	"github.com/sells-group/transport-report/internal/model"
)

func day(s string) *time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func route(s string) *string {
	return &s
}

func rec(jobID, routeName string, date string, cost float64) model.Record {
	r := model.Record{JobID: jobID, TotalCost: cost, CostSum: cost}
	if routeName != "" {
		r.RouteName = route(routeName)
	}
	if date != "" {
		r.AssignDate = day(date)
	}
	return r
}

// fullTable carries every canonical field.
func fullTable(recs ...model.Record) *model.Table {
	cols := make([]string, len(model.CanonicalFields))
	for i, f := range model.CanonicalFields {
		cols[i] = string(f)
	}
	return &model.Table{
		Columns: cols,
		Fields:  model.NewFieldSet(model.CanonicalFields...),
		Records: recs,
	}
}

// costOnly has none of the optional columns.
func costOnly(recs ...model.Record) *model.Table {
	return &model.Table{
		Columns: []string{"job_id", "total_cost", "additional_cost", "cost_sum"},
		Fields: model.NewFieldSet(model.FieldJobID, model.FieldTotalCost,
			model.FieldAdditionalCost, model.FieldCostSum),
		Records: recs,
	}
}
