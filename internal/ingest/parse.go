package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// numberReplacer drops grouping commas and baht marks that spreadsheet
// exports leave in numeric text.
var numberReplacer = strings.NewReplacer(
	",", "",
	"฿", "",
	"บาท", "",
)

// parseNumber parses numeric cell text. Surrounding space is ignored but
// inner space is not, so "1 2" is not a number. Non-finite values are not
// numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(numberReplacer.Replace(s))
	if s == "" || s == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// coerceFloat returns the cell as a number, or 0 when it is not one.
func coerceFloat(s string) float64 {
	v, _ := parseNumber(s)
	return v
}

// coerceInt returns the cell as a count, or 0 when it is not a number, is
// negative or does not fit an int64. Spreadsheet counts often arrive as "3.0".
func coerceInt(s string) int64 {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0
	}
	v = math.Round(v)
	// float64(math.MaxInt64) rounds up to 2^63.
	if v >= math.MaxInt64 {
		return 0
	}
	return int64(v)
}

// nullString returns nil for blank cells.
func nullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// dayFirstLayouts are tried in order. ISO forms come first so that values the
// loader rendered from date cells round-trip exactly.
var dayFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// monthFirstLayouts catch values such as 12/25/2024 whose first component
// cannot be a month day-first reading would accept.
var monthFirstLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1-2-2006",
}

// parseDate reads a calendar date, preferring day-first interpretation of
// ambiguous numeric forms. The time of day is discarded. Unparseable input
// yields nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t)
		}
	}
	for _, layout := range monthFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t)
		}
	}
	return nil
}

func truncateDay(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
