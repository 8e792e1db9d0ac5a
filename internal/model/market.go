package model

import "time"

// DateLayout is the canonical day key used in the price store and the
// portfolio file.
const DateLayout = "2006-01-02"

// PriceBar represents one instrument's candlestick for one trading day.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// DayKey returns the bar's date as a YYYY-MM-DD string.
func (b PriceBar) DayKey() string {
	return b.Date.Format(DateLayout)
}
