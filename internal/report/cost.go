package report

import "github.com/sells-group/transport-report/internal/model"

// CostAnalysis is the cost breakdown block.
type CostAnalysis struct {
	TotalCost         float64 `json:"total_cost"`
	AvgCostPerJob     float64 `json:"avg_cost_per_job"`
	BaseCostSum       float64 `json:"base_cost_sum"`
	AdditionalCostSum float64 `json:"additional_cost_sum"`
}

// AnalyzeCost sums cost_sum and its two parts. AvgCostPerJob is the mean of
// cost_sum over rows, one row per job event, not over distinct job ids.
func AnalyzeCost(t *model.Table) CostAnalysis {
	var c CostAnalysis
	n := t.Len()
	for i := range n {
		rec := &t.Records[i]
		c.TotalCost += rec.CostSum
		c.BaseCostSum += rec.TotalCost
		c.AdditionalCostSum += rec.AdditionalCost
	}
	if n > 0 {
		c.AvgCostPerJob = c.TotalCost / float64(n)
	}
	return c
}
