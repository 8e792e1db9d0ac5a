package collector

import (
	"fmt"
	"log"
	"time"

	"TrendTitan/internal/config"
	"TrendTitan/internal/model"
)

// fullHistoryDays is the download window for instruments with no stored
// history yet (roughly ten years, enough for any indicator warm-up).
const fullHistoryDays = 3650

// BarSink is where the pipeline loads cleaned bars. Implemented by the
// sqlite store.
type BarSink interface {
	LastDate(ticker string) (string, error)
	InsertBars(ticker, sector string, bars []model.PriceBar) (int, error)
}

// ETL downloads daily bars for the whole universe and loads them into the
// price store incrementally: only dates newer than the last stored row are
// fetched and inserted, so repeated runs are idempotent.
type ETL struct {
	fetcher  Fetcher
	sink     BarSink
	universe []config.Asset
}

// NewETL creates the data pipeline.
func NewETL(fetcher Fetcher, sink BarSink, universe []config.Asset) *ETL {
	return &ETL{fetcher: fetcher, sink: sink, universe: universe}
}

// Run updates every universe member. Per-instrument failures are logged and
// skipped; the pipeline always finishes the remaining instruments.
func (e *ETL) Run() {
	log.Printf("[INFO] ETL starting (%d assets, source=%s)", len(e.universe), e.fetcher.Name())
	updated := 0
	for _, a := range e.universe {
		n, err := e.updateAsset(a)
		if err != nil {
			log.Printf("[ERROR] ETL %s: %v", a.Ticker, err)
			continue
		}
		if n > 0 {
			log.Printf("[INFO] ETL %s: added %d rows", a.Ticker, n)
			updated++
		}
	}
	log.Printf("[INFO] ETL complete (%d assets updated)", updated)
}

func (e *ETL) updateAsset(a config.Asset) (int, error) {
	last, err := e.sink.LastDate(a.Ticker)
	if err != nil {
		return 0, err
	}

	days := fullHistoryDays
	if last != "" {
		lastDate, err := time.Parse(model.DateLayout, last)
		if err != nil {
			return 0, fmt.Errorf("bad stored date %q: %w", last, err)
		}
		elapsed := int(time.Since(lastDate).Hours()/24) + 5
		if elapsed < fullHistoryDays {
			days = elapsed
		}
	}

	bars, err := e.fetcher.FetchDailyBars(a.Ticker, days)
	if err != nil {
		return 0, err
	}

	// Keep only dates newer than the last stored row. INSERT OR IGNORE
	// would drop duplicates anyway; this keeps the insert batch small.
	if last != "" {
		fresh := bars[:0]
		for _, b := range bars {
			if b.DayKey() > last {
				fresh = append(fresh, b)
			}
		}
		bars = fresh
	}
	if len(bars) == 0 {
		return 0, nil
	}

	return e.sink.InsertBars(a.Ticker, a.Sector, bars)
}
