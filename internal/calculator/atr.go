package calculator

import (
	"errors"
	"math"

	"TrendTitan/internal/model"
)

// CalculateATR computes the Wilder-smoothed Average True Range over the
// given period. True range is max(high-low, |high-prevClose|,
// |low-prevClose|). Requires at least period+1 bars.
func CalculateATR(bars []model.PriceBar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, ErrInsufficientData
	}

	// Seed with the simple average of the first `period` true ranges.
	var atr float64
	for i := 1; i <= period; i++ {
		atr += trueRange(bars[i], bars[i-1].Close)
	}
	atr /= float64(period)

	for i := period + 1; i < len(bars); i++ {
		tr := trueRange(bars[i], bars[i-1].Close)
		atr = (atr*float64(period-1) + tr) / float64(period)
	}
	return atr, nil
}

func trueRange(b model.PriceBar, prevClose float64) float64 {
	tr := b.High - b.Low
	if v := math.Abs(b.High - prevClose); v > tr {
		tr = v
	}
	if v := math.Abs(b.Low - prevClose); v > tr {
		tr = v
	}
	return tr
}
