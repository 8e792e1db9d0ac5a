package model

// IndicatorSnapshot holds the derived indicator values for the most recent
// bar of one instrument. A snapshot only exists when enough history was
// available for every field; short histories never produce partial or
// zero-filled snapshots.
type IndicatorSnapshot struct {
	Close   float64
	SMAFast float64
	SMASlow float64
	ROC     float64
	RSI     float64
	ATR     float64
}
