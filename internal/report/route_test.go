package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/transport-report/internal/model"
)

func TestRoutePerformance_Example(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "", 100),
		rec("2", "A", "", 300),
		rec("3", "B", "", 50),
	)

	rep := RoutePerformance(tbl, 0)
	require.NotNil(t, rep)
	assert.Equal(t, []RouteStats{
		{Route: "A", TotalJobs: 2, TotalCost: 400, AvgCost: 200},
		{Route: "B", TotalJobs: 1, TotalCost: 50, AvgCost: 50},
	}, rep.Routes)

	require.NotNil(t, rep.CheapestRoute)
	assert.Equal(t, "B", rep.CheapestRoute.Route)
	assert.Equal(t, 50.0, rep.CheapestRoute.AvgCost)
	assert.Equal(t, "A", rep.MostExpensive[0].Route)
	assert.Equal(t, "A", rep.TopByCost[0].Route)
	assert.Equal(t, "A", rep.ByJobs[0].Route)
}

func TestRoutePerformance_StableTies(t *testing.T) {
	tbl := fullTable(
		rec("1", "C", "", 10),
		rec("2", "A", "", 10),
		rec("3", "B", "", 10),
	)

	rep := RoutePerformance(tbl, 0)
	names := func(rs []RouteStats) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Route
		}
		return out
	}
	want := []string{"C", "A", "B"}
	assert.Equal(t, want, names(rep.Routes))
	assert.Equal(t, want, names(rep.ByJobs))
	assert.Equal(t, want, names(rep.TopByCost))
	assert.Equal(t, want, names(rep.Cheapest))
	assert.Equal(t, want, names(rep.MostExpensive))
}

func TestRoutePerformance_Limits(t *testing.T) {
	var recs []model.Record
	for i := range 15 {
		recs = append(recs, rec(fmt.Sprint(i), fmt.Sprintf("R%02d", i), "", float64(i+1)))
	}
	rep := RoutePerformance(fullTable(recs...), 5)

	assert.Len(t, rep.Routes, 15)
	assert.Len(t, rep.ByJobs, 5)
	assert.Len(t, rep.TopByCost, RankSize)
	assert.Len(t, rep.Cheapest, RankSize)
	assert.Len(t, rep.MostExpensive, RankSize)
	assert.Equal(t, "R14", rep.TopByCost[0].Route)
	assert.Equal(t, "R00", rep.Cheapest[0].Route)
	assert.Equal(t, "R14", rep.MostExpensive[0].Route)
}

func TestRoutePerformance_NullRoutesAndJobTotals(t *testing.T) {
	tbl := fullTable(
		rec("1", "A", "", 10),
		rec("2", "", "", 10),
		rec("3", "B", "", 10),
		rec("3", "B", "", 10),
	)

	rep := RoutePerformance(tbl, 0)
	require.Len(t, rep.Routes, 2)

	total := 0
	for _, r := range rep.Routes {
		total += r.TotalJobs
	}
	assert.LessOrEqual(t, total, Summarize(tbl).TotalJobs)
	assert.Equal(t, 2, total)
}

func TestRoutePerformance_NoRouteColumn(t *testing.T) {
	assert.Nil(t, RoutePerformance(costOnly(rec("1", "", "", 1)), 0))
}

func TestRoutePerformance_Empty(t *testing.T) {
	rep := RoutePerformance(fullTable(), 0)
	require.NotNil(t, rep)
	assert.Empty(t, rep.Routes)
	assert.Nil(t, rep.CheapestRoute)
}
