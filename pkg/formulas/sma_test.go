package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var examplePrices = []float64{100, 102, 105, 110, 115, 120, 125}

func TestCalculateSMA_ExampleSeries(t *testing.T) {
	sma, err := CalculateSMA(examplePrices, 3)
	require.NoError(t, err)

	expected := []float64{307.0 / 3, 317.0 / 3, 110, 115, 120}
	require.Len(t, sma, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], sma[i], 1e-9, "index %d", i)
	}
}

func TestCalculateSMA_MatchesWindowMeans(t *testing.T) {
	prices := []float64{3.5, -2, 7.25, 0, 11, 4, -6.5, 9, 1}
	for period := 1; period <= len(prices); period++ {
		sma, err := CalculateSMA(prices, period)
		require.NoError(t, err)
		require.Len(t, sma, len(prices)-period+1)
		for i := range sma {
			assert.InDelta(t, Mean(prices[i:i+period]), sma[i], 1e-9, "period %d index %d", period, i)
		}
	}
}

func TestCalculateSMA_LargeValueLeavingWindow(t *testing.T) {
	sma, err := CalculateSMA([]float64{1e16, 1, 1, 1}, 2)
	require.NoError(t, err)
	require.Len(t, sma, 3)
	assert.InEpsilon(t, 5e15, sma[0], 1e-12)
	assert.Equal(t, 1.0, sma[1])
	assert.Equal(t, 1.0, sma[2])

	sma, err = CalculateSMA([]float64{1e9, 0.1, 0.2, 0.3}, 2)
	require.NoError(t, err)
	require.Len(t, sma, 3)
	assert.InDelta(t, 0.15, sma[1], 1e-15)
	assert.InDelta(t, 0.25, sma[2], 1e-15)
}

func TestCalculateSMA_PeriodEqualsLength(t *testing.T) {
	sma, err := CalculateSMA(examplePrices, len(examplePrices))
	require.NoError(t, err)
	require.Len(t, sma, 1)
	assert.InDelta(t, Mean(examplePrices), sma[0], 1e-9)
}

func TestCalculateSMA_PeriodOneIsIdentity(t *testing.T) {
	sma, err := CalculateSMA(examplePrices, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, examplePrices, sma, 1e-12)
}

func TestCalculateSMA_InvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
	}{
		{"zero period", examplePrices, 0},
		{"negative period", examplePrices, -3},
		{"period longer than series", examplePrices, len(examplePrices) + 1},
		{"empty series", []float64{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sma, err := CalculateSMA(tt.prices, tt.period)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Nil(t, sma)
		})
	}
}

func TestCalculateSMA_Restartable(t *testing.T) {
	first, err := CalculateSMA(examplePrices, 3)
	require.NoError(t, err)
	second, err := CalculateSMA(examplePrices, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first[0] = -1
	assert.NotEqual(t, first[0], second[0])
}

func TestLatestSMA(t *testing.T) {
	latest, err := LatestSMA(examplePrices, 3)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, latest, 1e-9)

	_, err = LatestSMA(examplePrices, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = LatestSMA(examplePrices, len(examplePrices)+1)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestLatestSMA_MatchesLastWindow(t *testing.T) {
	for _, period := range []int{1, 2, 3, len(examplePrices)} {
		sma, err := CalculateSMA(examplePrices, period)
		require.NoError(t, err)
		latest, err := LatestSMA(examplePrices, period)
		require.NoError(t, err)
		assert.Equal(t, sma[len(sma)-1], latest, "period %d", period)
	}
}

func TestMeanAndSum(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 10.0, Sum([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, Sum(nil))
}
