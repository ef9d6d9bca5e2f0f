package formulas

import (
	"fmt"
	"math"
)

// MonthlyPrice represents a monthly price data point
type MonthlyPrice struct {
	YearMonth   string  `json:"year_month"`
	AvgAdjClose float64 `json:"avg_adj_close"`
}

// CalculateCAGR calculates Compound Annual Growth Rate
//
// Formula: CAGR = (Ending Value / Beginning Value)^(1/years) - 1
//
// Args:
//
//	initialValue: Beginning value, must be > 0
//	finalValue: Ending value, must be >= 0 (0 is a total loss, -100%)
//	years: Holding period in years, must be > 0
//
// Returns:
//
//	CAGR as decimal (e.g., 0.11 = 11%) or ErrInvalidInput
func CalculateCAGR(initialValue, finalValue, years float64) (float64, error) {
	for _, v := range []float64{initialValue, finalValue, years} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: cagr arguments must be finite", ErrInvalidInput)
		}
	}
	if initialValue <= 0 {
		return 0, fmt.Errorf("%w: initial value %g must be positive", ErrInvalidInput, initialValue)
	}
	if finalValue < 0 {
		return 0, fmt.Errorf("%w: final value %g must not be negative", ErrInvalidInput, finalValue)
	}
	if years <= 0 {
		return 0, fmt.Errorf("%w: years %g must be positive", ErrInvalidInput, years)
	}

	cagr := math.Pow(finalValue/initialValue, 1/years) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0, fmt.Errorf("%w: cagr overflowed for %g -> %g over %g years", ErrInvalidInput, initialValue, finalValue, years)
	}

	return cagr, nil
}

// CalculateCAGRFromMonthlyPrices calculates CAGR over the trailing months of a
// monthly price history. When fewer observations exist than requested, all of
// them are used.
//
// Args:
//
//	prices: Slice of MonthlyPrice with year_month and avg_adj_close, oldest first
//	months: Number of months to use (e.g., 60 for 5 years)
func CalculateCAGRFromMonthlyPrices(prices []MonthlyPrice, months int) (float64, error) {
	if months < 2 {
		return 0, fmt.Errorf("%w: need at least 2 months, got %d", ErrInvalidInput, months)
	}
	if len(prices) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 monthly prices, got %d", ErrInvalidInput, len(prices))
	}

	useMonths := months
	if useMonths > len(prices) {
		useMonths = len(prices)
	}

	window := prices[len(prices)-useMonths:]
	startPrice := window[0].AvgAdjClose
	endPrice := window[len(window)-1].AvgAdjClose

	return CalculateCAGR(startPrice, endPrice, float64(useMonths)/12.0)
}
