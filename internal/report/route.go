package report

import (
	"cmp"
	"slices"

	"github.com/sells-group/transport-report/internal/model"
)

// RankSize is the length of the cost rankings.
const RankSize = 10

// RouteStats is the aggregate of one route.
type RouteStats struct {
	Route     string  `json:"route"`
	TotalJobs int     `json:"total_jobs"`
	TotalCost float64 `json:"total_cost"`
	AvgCost   float64 `json:"avg_cost"`
}

// RouteReport holds per-route aggregates and the rankings derived from them.
type RouteReport struct {
	Routes        []RouteStats `json:"routes"`
	ByJobs        []RouteStats `json:"by_jobs"`
	TopByCost     []RouteStats `json:"top_by_cost"`
	Cheapest      []RouteStats `json:"cheapest"`
	MostExpensive []RouteStats `json:"most_expensive"`
	CheapestRoute *RouteStats  `json:"cheapest_route,omitempty"`
}

// RoutePerformance groups rows by route in first-seen order. Rankings are
// stable, so equal values keep that order. topN limits ByJobs; zero or less
// keeps every route. It returns nil when the table has no route_name column.
func RoutePerformance(t *model.Table, topN int) *RouteReport {
	if !t.Has(model.FieldRouteName) {
		return nil
	}

	type acc struct {
		stats RouteStats
		rows  int
		jobs  jobSet
	}
	var order []*acc
	index := make(map[string]*acc)
	for i := range t.Len() {
		rec := &t.Records[i]
		if rec.RouteName == nil {
			continue
		}
		name := *rec.RouteName
		g, ok := index[name]
		if !ok {
			g = &acc{stats: RouteStats{Route: name}, jobs: newJobSet()}
			index[name] = g
			order = append(order, g)
		}
		g.rows++
		g.jobs.add(rec.JobID)
		g.stats.TotalCost += rec.CostSum
	}

	routes := make([]RouteStats, len(order))
	for i, g := range order {
		g.stats.TotalJobs = g.jobs.len()
		g.stats.AvgCost = g.stats.TotalCost / float64(g.rows)
		routes[i] = g.stats
	}

	rep := &RouteReport{
		Routes: routes,
		ByJobs: ranked(routes, topN, func(a, b RouteStats) int {
			return cmp.Compare(b.TotalJobs, a.TotalJobs)
		}),
		TopByCost: ranked(routes, RankSize, func(a, b RouteStats) int {
			return cmp.Compare(b.TotalCost, a.TotalCost)
		}),
		Cheapest: ranked(routes, RankSize, func(a, b RouteStats) int {
			return cmp.Compare(a.AvgCost, b.AvgCost)
		}),
		MostExpensive: ranked(routes, RankSize, func(a, b RouteStats) int {
			return cmp.Compare(b.AvgCost, a.AvgCost)
		}),
	}
	if len(rep.Cheapest) > 0 {
		c := rep.Cheapest[0]
		rep.CheapestRoute = &c
	}
	return rep
}

func ranked(routes []RouteStats, n int, less func(a, b RouteStats) int) []RouteStats {
	out := slices.Clone(routes)
	slices.SortStableFunc(out, less)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
