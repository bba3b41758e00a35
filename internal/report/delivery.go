package report

import "github.com/sells-group/transport-report/internal/model"

// Delivery is the success/fail split of delivery outcomes.
type Delivery struct {
	SuccessCount int64   `json:"success_count"`
	FailCount    int64   `json:"fail_count"`
	SuccessPct   float64 `json:"success_pct"`
	FailPct      float64 `json:"fail_pct"`
}

// DeliveryPerformance sums outcome counts and converts them to percentages.
// Both percentages are 0 when there are no outcomes. It returns nil unless
// the table carries both success_count and fail_count.
func DeliveryPerformance(t *model.Table) *Delivery {
	if !t.Has(model.FieldSuccessCount) || !t.Has(model.FieldFailCount) {
		return nil
	}

	d := &Delivery{}
	for i := range t.Len() {
		d.SuccessCount += t.Records[i].SuccessCount
		d.FailCount += t.Records[i].FailCount
	}
	if total := d.SuccessCount + d.FailCount; total != 0 {
		d.SuccessPct = float64(d.SuccessCount) / float64(total) * 100
		d.FailPct = float64(d.FailCount) / float64(total) * 100
	}
	return d
}
