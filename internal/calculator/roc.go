package calculator

import "errors"

// CalculateROC computes the rate of change over the given lookback:
// (close_t / close_{t-lookback} - 1) * 100. Requires lookback+1 prices.
func CalculateROC(prices []float64, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(prices) < lookback+1 {
		return 0, ErrInsufficientData
	}
	latest := prices[len(prices)-1]
	base := prices[len(prices)-1-lookback]
	if base == 0 {
		return 0, errors.New("zero base price in ROC")
	}
	return (latest/base - 1) * 100, nil
}
