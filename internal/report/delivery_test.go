package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryPerformance(t *testing.T) {
	a := rec("1", "", "", 0)
	a.SuccessCount, a.FailCount = 3, 1
	b := rec("2", "", "", 0)
	b.SuccessCount, b.FailCount = 5, 1

	d := DeliveryPerformance(fullTable(a, b))
	require.NotNil(t, d)
	assert.Equal(t, int64(8), d.SuccessCount)
	assert.Equal(t, int64(2), d.FailCount)
	assert.InDelta(t, 80.0, d.SuccessPct, 1e-9)
	assert.InDelta(t, 20.0, d.FailPct, 1e-9)
}

func TestDeliveryPerformance_ZeroDenominator(t *testing.T) {
	d := DeliveryPerformance(fullTable(rec("1", "", "", 0)))
	require.NotNil(t, d)
	assert.Equal(t, 0.0, d.SuccessPct)
	assert.Equal(t, 0.0, d.FailPct)
}

func TestDeliveryPerformance_MissingColumns(t *testing.T) {
	assert.Nil(t, DeliveryPerformance(costOnly()))
}
