package server

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := parseFilter(url.Values{})
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	f, err = parseFilter(url.Values{
		"start": {"2024-01-01"},
		"end":   {"2024-01-31"},
		"route": {"A", "", "B"},
	})
	require.NoError(t, err)
	require.NotNil(t, f.Dates)
	assert.Equal(t, "2024-01-31", f.Dates.End.Format("2006-01-02"))
	assert.Equal(t, []string{"A", "B"}, f.Routes)

	_, err = parseFilter(url.Values{"end": {"2024-01-31"}})
	assert.Error(t, err)
}

func TestParseTop(t *testing.T) {
	n, err := parseTop(url.Values{}, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = parseTop(url.Values{"top": {"0"}}, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = parseTop(url.Values{"top": {"-2"}}, 7)
	assert.Error(t, err)
}
