package calculator

import (
	"errors"

	"TrendTitan/internal/model"
)

// ErrInsufficientData is returned when a series is too short for the
// requested indicator window. Callers must treat it as "skip this
// instrument", never as a zero value.
var ErrInsufficientData = errors.New("not enough bars for indicator")

// CalculateSMA computes the simple moving average of the given prices over
// the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

func extractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
