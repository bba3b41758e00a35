package model

import (
	"strconv"
	"time"
)

// DateLayout is the rendering of assign_date in exports and JSON tables.
const DateLayout = "2006-01-02"

// RawTable is the first sheet of an uploaded file: one header row and the
// data rows beneath it, each padded to the header width.
type RawTable struct {
	Sheet  string     `json:"sheet,omitempty"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Record is one normalized job-delivery event.
type Record struct {
	AssignDate     *time.Time        `json:"assign_date"`
	JobID          string            `json:"job_id"`
	NumDeliveries  int64             `json:"num_deliveries"`
	NumItems       int64             `json:"num_items"`
	TotalCost      float64           `json:"total_cost"`
	AdditionalCost float64           `json:"additional_cost"`
	RouteName      *string           `json:"route_name"`
	SuccessCount   int64             `json:"success_count"`
	FailCount      int64             `json:"fail_count"`
	CostSum        float64           `json:"cost_sum"`
	Passthrough    map[string]string `json:"passthrough,omitempty"`
}

// Route returns the route name, or "" when the record has none.
func (r *Record) Route() string {
	if r.RouteName == nil {
		return ""
	}
	return *r.RouteName
}

// Value renders the named column the way exports and tabular views show it.
// Canonical columns come from the typed fields; anything else is looked up in
// the pass-through cells.
func (r *Record) Value(column string) string {
	f, ok := ParseField(column)
	if !ok {
		return r.Passthrough[column]
	}
	switch f {
	case FieldAssignDate:
		if r.AssignDate == nil {
			return ""
		}
		return r.AssignDate.Format(DateLayout)
	case FieldJobID:
		return r.JobID
	case FieldNumDeliveries:
		return strconv.FormatInt(r.NumDeliveries, 10)
	case FieldNumItems:
		return strconv.FormatInt(r.NumItems, 10)
	case FieldTotalCost:
		return formatFloat(r.TotalCost)
	case FieldAdditionalCost:
		return formatFloat(r.AdditionalCost)
	case FieldRouteName:
		return r.Route()
	case FieldSuccessCount:
		return strconv.FormatInt(r.SuccessCount, 10)
	case FieldFailCount:
		return strconv.FormatInt(r.FailCount, 10)
	case FieldCostSum:
		return formatFloat(r.CostSum)
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
