package collector

import (
	"errors"
	"testing"
	"time"

	"TrendTitan/internal/config"
	"TrendTitan/internal/model"
)

type fakeSink struct {
	last     map[string]string
	inserted map[string][]model.PriceBar
}

func newFakeSink() *fakeSink {
	return &fakeSink{last: map[string]string{}, inserted: map[string][]model.PriceBar{}}
}

func (f *fakeSink) LastDate(ticker string) (string, error) {
	return f.last[ticker], nil
}

func (f *fakeSink) InsertBars(ticker, _ string, bars []model.PriceBar) (int, error) {
	f.inserted[ticker] = append(f.inserted[ticker], bars...)
	return len(bars), nil
}

// recordingFetcher remembers the requested window per ticker.
type recordingFetcher struct {
	bars map[string][]model.PriceBar
	days map[string]int
	err  error
}

func (r *recordingFetcher) Name() string { return "recording" }

func (r *recordingFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	if r.days == nil {
		r.days = map[string]int{}
	}
	r.days[symbol] = days
	if r.err != nil {
		return nil, r.err
	}
	return r.bars[symbol], nil
}

func etlBar(date string, close float64) model.PriceBar {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return model.PriceBar{Date: d, Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
}

func TestETLFullHistoryForNewTicker(t *testing.T) {
	sink := newFakeSink()
	fetcher := &recordingFetcher{bars: map[string][]model.PriceBar{
		"NEW.NS": {etlBar("2024-03-01", 100), etlBar("2024-03-02", 101)},
	}}

	NewETL(fetcher, sink, []config.Asset{{Ticker: "NEW.NS", Sector: "IT"}}).Run()

	if fetcher.days["NEW.NS"] != fullHistoryDays {
		t.Errorf("new ticker must request the full window, got %d days", fetcher.days["NEW.NS"])
	}
	if len(sink.inserted["NEW.NS"]) != 2 {
		t.Errorf("expected both bars inserted, got %d", len(sink.inserted["NEW.NS"]))
	}
}

func TestETLIncrementalFiltersOldBars(t *testing.T) {
	sink := newFakeSink()
	sink.last["TCS.NS"] = "2024-03-02"
	fetcher := &recordingFetcher{bars: map[string][]model.PriceBar{
		"TCS.NS": {
			etlBar("2024-03-01", 100),
			etlBar("2024-03-02", 101),
			etlBar("2024-03-03", 102),
			etlBar("2024-03-04", 103),
		},
	}}

	NewETL(fetcher, sink, []config.Asset{{Ticker: "TCS.NS", Sector: "IT"}}).Run()

	if fetcher.days["TCS.NS"] >= fullHistoryDays {
		t.Errorf("incremental run must request a short window, got %d days", fetcher.days["TCS.NS"])
	}
	got := sink.inserted["TCS.NS"]
	if len(got) != 2 {
		t.Fatalf("expected only bars after the last stored date, got %d", len(got))
	}
	if got[0].DayKey() != "2024-03-03" || got[1].DayKey() != "2024-03-04" {
		t.Errorf("wrong bars kept: %s, %s", got[0].DayKey(), got[1].DayKey())
	}
}

func TestETLContinuesAfterFetchError(t *testing.T) {
	sink := newFakeSink()
	fetcher := &recordingFetcher{err: errors.New("vendor down")}

	// Must not panic or abort; nothing gets inserted.
	NewETL(fetcher, sink, []config.Asset{
		{Ticker: "A.NS"}, {Ticker: "B.NS"},
	}).Run()

	if len(sink.inserted) != 0 {
		t.Errorf("failed fetches must insert nothing, got %+v", sink.inserted)
	}
	if len(fetcher.days) != 2 {
		t.Errorf("pipeline must still visit every asset, visited %d", len(fetcher.days))
	}
}

func TestGenerateMockBars(t *testing.T) {
	bars := GenerateMockBars(100, 30)
	if len(bars) != 30 {
		t.Fatalf("expected 30 bars, got %d", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			t.Fatalf("bars not ascending at %d", i)
		}
	}
	last := bars[len(bars)-1]
	if last.High <= last.Low || last.Volume <= 0 {
		t.Errorf("malformed bar: %+v", last)
	}
}
