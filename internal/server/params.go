package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/transport-report/internal/report"
)

// parseFilter reads start, end and repeated route parameters. start and end
// must be given together.
func parseFilter(q url.Values) (report.Filter, error) {
	var f report.Filter

	start, end := strings.TrimSpace(q.Get("start")), strings.TrimSpace(q.Get("end"))
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return f, eris.New("start and end must be given together")
	default:
		dr, err := report.NewDateRange(start, end)
		if err != nil {
			return f, err
		}
		f.Dates = dr
	}

	for _, r := range q["route"] {
		if r != "" {
			f.Routes = append(f.Routes, r)
		}
	}
	return f, nil
}

// parseTop reads the top parameter, falling back to def.
func parseTop(q url.Values, def int) (int, error) {
	s := q.Get("top")
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, eris.Errorf("top must be a non-negative integer, got %q", s)
	}
	return n, nil
}
