package collector

import "TrendTitan/internal/model"

// Fetcher defines the interface for downloading daily market data.
type Fetcher interface {
	// FetchDailyBars returns up to `days` daily bars, ascending by date.
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	Name() string
}
