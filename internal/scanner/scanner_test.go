package scanner

import (
	"math"
	"testing"
	"time"

	"TrendTitan/internal/calculator"
	"TrendTitan/internal/config"
	"TrendTitan/internal/model"
)

type stubProvider struct {
	data map[string][]model.PriceBar
	err  error
}

func (s *stubProvider) DailyBars(ticker string, _ int) ([]model.PriceBar, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[ticker], nil
}

// series builds count bars with closes base + slope*i + 2*(i%2): a zigzag
// trend with both gains and losses so RSI stays in the middle band.
func series(base, slope float64, count int) []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		c := base + slope*float64(i) + 2*float64(i%2)
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1.5,
			Low:    c - 1.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("testdata/absent.yaml")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	return cfg
}

func TestEntryRules(t *testing.T) {
	rules := EntryRules(20, 70)
	base := model.IndicatorSnapshot{Close: 100, SMAFast: 95, SMASlow: 90, ROC: 25, RSI: 50, ATR: 2}

	passed := func(s model.IndicatorSnapshot) int {
		n := 0
		for _, r := range rules {
			if r.Check(&s) {
				n++
			}
		}
		return n
	}

	if got := passed(base); got != len(rules) {
		t.Fatalf("expected all %d rules to pass, got %d", len(rules), got)
	}

	belowSlow := base
	belowSlow.SMASlow = 105
	if got := passed(belowSlow); got != 3 {
		t.Errorf("close below slow MA: expected 3 passes, got %d", got)
	}

	weak := base
	weak.ROC = 19.9
	if got := passed(weak); got != 3 {
		t.Errorf("momentum below floor: expected 3 passes, got %d", got)
	}

	hot := base
	hot.RSI = 70
	if got := passed(hot); got != 3 {
		t.Errorf("RSI at the overbought bound: expected 3 passes, got %d", got)
	}
}

func TestScanFiltersAndComputesStop(t *testing.T) {
	cfg := testConfig(t)
	up := series(50, 0.2, 250)
	provider := &stubProvider{data: map[string][]model.PriceBar{
		"UPT":   up,
		"DWN":   series(150, -0.2, 250),
		"SHORT": series(50, 0.2, 150), // not enough history, excluded quietly
	}}

	s := New(provider, cfg)
	got := s.Scan([]string{"UPT", "DWN", "SHORT"}, nil)

	if len(got) != 1 || got[0].Ticker != "UPT" {
		t.Fatalf("expected exactly UPT, got %+v", got)
	}

	atr, err := calculator.CalculateATR(up, cfg.Strategy.ATRPeriod)
	if err != nil {
		t.Fatalf("atr: %v", err)
	}
	wantStop := got[0].Close - cfg.Strategy.ATRMultiplier*atr
	if math.Abs(got[0].Stop-wantStop) > 1e-9 {
		t.Errorf("stop %f, want close - 3*ATR = %f", got[0].Stop, wantStop)
	}
}

func TestScanExcludesHeld(t *testing.T) {
	cfg := testConfig(t)
	provider := &stubProvider{data: map[string][]model.PriceBar{
		"UPT": series(50, 0.2, 250),
	}}
	held := map[string]model.Position{"UPT": {Qty: 10, EntryPrice: 90}}

	got := New(provider, cfg).Scan([]string{"UPT"}, held)
	if len(got) != 0 {
		t.Fatalf("held instrument returned as candidate: %+v", got)
	}
}

func TestScanTieBreaksByTicker(t *testing.T) {
	cfg := testConfig(t)
	up := series(50, 0.2, 250)
	provider := &stubProvider{data: map[string][]model.PriceBar{
		"BBB": up,
		"AAA": up,
	}}

	got := New(provider, cfg).Scan([]string{"BBB", "AAA"}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Ticker != "AAA" || got[1].Ticker != "BBB" {
		t.Errorf("tied ROC must order by ascending ticker, got %s then %s",
			got[0].Ticker, got[1].Ticker)
	}
}

func TestScanThresholdPolicy(t *testing.T) {
	cfg := testConfig(t)
	// Slow grind: both trend rules and RSI pass, momentum stays under the
	// floor. Fails ALL, passes THRESHOLD-2.
	provider := &stubProvider{data: map[string][]model.PriceBar{
		"GRIND": series(50, 0.05, 250),
	}}

	if got := New(provider, cfg).Scan([]string{"GRIND"}, nil); len(got) != 0 {
		t.Fatalf("ALL policy should exclude a low-momentum grind, got %+v", got)
	}

	cfg.Entry.Policy = config.PolicyThreshold
	cfg.Entry.MinPassed = 2
	if got := New(provider, cfg).Scan([]string{"GRIND"}, nil); len(got) != 1 {
		t.Fatalf("THRESHOLD-2 policy should include the grind, got %+v", got)
	}
}
