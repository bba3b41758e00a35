package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		want   float64
		wantOK bool
	}{
		{"integer", "42", 42, true},
		{"decimal", "1500.75", 1500.75, true},
		{"negative", "-3.5", -3.5, true},
		{"grouped", "1,234,567", 1234567, true},
		{"baht sign", "฿1,500", 1500, true},
		{"baht word", "1500 บาท", 1500, true},
		{"baht sign spaced", "฿ 1,500", 1500, true},
		{"inner space", "1 2", 0, false},
		{"nbsp grouping", "12\u00a0000", 0, false},
		{"surrounding space", "  7 ", 7, true},
		{"surrounding nbsp", "\u00a07\u00a0", 7, true},
		{"exponent", "1e3", 1000, true},
		{"empty", "", 0, false},
		{"dash", "-", 0, false},
		{"text", "n/a", 0, false},
		{"nan", "NaN", 0, false},
		{"inf", "Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumber(tt.s)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		s    string
		want int64
	}{
		{"3", 3},
		{"3.0", 3},
		{"2.6", 3},
		{"", 0},
		{"abc", 0},
		{"1e30", 0},
		{"9223372036854775808", 0},
		{"9223372036854775807", 0},
		{"-2", 0},
		{"-0.4", 0},
		{"1,024", 1024},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceInt(tt.s))
		})
	}
}

func TestCoerceFloat_NonNumericIsZero(t *testing.T) {
	assert.Equal(t, 0.0, coerceFloat("pending"))
	assert.Equal(t, 250.0, coerceFloat("250"))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Nil(t, nullString("   "))
	got := nullString(" BKK-01 ")
	require.NotNil(t, got)
	assert.Equal(t, "BKK-01", *got)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string // "" means nil
	}{
		{"iso", "2024-01-02", "2024-01-02"},
		{"iso datetime", "2024-01-02 13:45:00", "2024-01-02"},
		{"iso T", "2024-01-02T08:00:00", "2024-01-02"},
		{"rfc3339", "2024-01-02T08:00:00+07:00", "2024-01-02"},
		{"day first slash", "02/01/2024", "2024-01-02"},
		{"day first unpadded", "2/1/2024", "2024-01-02"},
		{"day first dash", "15-03-2024", "2024-03-15"},
		{"day first dot", "15.03.2024", "2024-03-15"},
		{"day first with time", "02/01/2024 09:30", "2024-01-02"},
		{"two digit year", "02/01/24", "2024-01-02"},
		{"month name", "2 Jan 2024", "2024-01-02"},
		{"month name long", "2 January 2024", "2024-01-02"},
		{"month first name", "Jan 2, 2024", "2024-01-02"},
		{"month first fallback", "12/25/2024", "2024-12-25"},
		{"empty", "", ""},
		{"garbage", "next tuesday", ""},
		{"invalid day", "32/01/2024", ""},
		{"excel serial", "45293", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.s)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.UTC, got.Location())
			assert.Zero(t, got.Hour())
		})
	}
}
