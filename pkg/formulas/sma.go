package formulas

import (
	"fmt"
)

// CalculateSMA calculates the Simple Moving Average series
//
// Each element is the arithmetic mean of period consecutive prices, in input
// order, so the result has len(prices)-period+1 values. A window that does not
// fit the series (period < 1 or period > len(prices)) is an ErrInvalidWindow
// rather than an empty result. Every window is averaged from its own prices,
// so a large value leaving the window does not distort the ones after it.
//
// Args:
//
//	prices: Array of prices
//	period: Window length (e.g., 3)
func CalculateSMA(prices []float64, period int) ([]float64, error) {
	if err := validateWindow(len(prices), period); err != nil {
		return nil, err
	}

	out := make([]float64, len(prices)-period+1)
	for i := range out {
		out[i] = Mean(prices[i : i+period])
	}
	return out, nil
}

// LatestSMA returns the most recent window's average without building the series
func LatestSMA(prices []float64, period int) (float64, error) {
	if err := validateWindow(len(prices), period); err != nil {
		return 0, err
	}
	return Mean(prices[len(prices)-period:]), nil
}

func validateWindow(n, period int) error {
	if period < 1 {
		return fmt.Errorf("%w: period %d must be at least 1", ErrInvalidWindow, period)
	}
	if period > n {
		return fmt.Errorf("%w: period %d exceeds %d prices", ErrInvalidWindow, period, n)
	}
	return nil
}
