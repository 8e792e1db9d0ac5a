package scanner

import (
	"log"
	"sort"

	"TrendTitan/internal/calculator"
	"TrendTitan/internal/config"
	"TrendTitan/internal/model"
)

// PriceProvider is the read-only seam to the price history store.
type PriceProvider interface {
	DailyBars(ticker string, limit int) ([]model.PriceBar, error)
}

// Scanner evaluates the universe against the entry rules and ranks the
// survivors by momentum. It never mutates portfolio state.
type Scanner struct {
	provider      PriceProvider
	params        calculator.Params
	rules         []Rule
	policy        string
	minPassed     int
	atrMultiplier float64
	lookback      int
}

// New creates a Scanner from the strategy configuration.
func New(provider PriceProvider, cfg *config.Config) *Scanner {
	return &Scanner{
		provider:      provider,
		params:        cfg.IndicatorParams(),
		rules:         EntryRules(cfg.Strategy.MinMomentum, cfg.Strategy.MaxRSI),
		policy:        cfg.Entry.Policy,
		minPassed:     cfg.Entry.MinPassed,
		atrMultiplier: cfg.Strategy.ATRMultiplier,
		lookback:      cfg.Strategy.LookbackBars,
	}
}

// Scan returns entry candidates sorted by ROC descending, ties broken by
// ascending ticker so selection is reproducible. Held instruments and
// instruments with insufficient history are excluded.
func (s *Scanner) Scan(universe []string, held map[string]model.Position) []model.Candidate {
	tickers := append([]string(nil), universe...)
	sort.Strings(tickers)

	var candidates []model.Candidate
	for _, ticker := range tickers {
		if _, ok := held[ticker]; ok {
			continue
		}
		bars, err := s.provider.DailyBars(ticker, s.lookback)
		if err != nil {
			log.Printf("[DEBUG] scan %s: %v", ticker, err)
			continue
		}
		snap, err := calculator.Snapshot(bars, s.params)
		if err != nil {
			// Short history or delisted; excluded this cycle, never an error.
			continue
		}
		if !s.eligible(snap) {
			continue
		}
		candidates = append(candidates, model.Candidate{
			Ticker: ticker,
			Close:  snap.Close,
			ROC:    snap.ROC,
			Stop:   snap.Close - s.atrMultiplier*snap.ATR,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ROC != candidates[j].ROC {
			return candidates[i].ROC > candidates[j].ROC
		}
		return candidates[i].Ticker < candidates[j].Ticker
	})
	return candidates
}

func (s *Scanner) eligible(snap *model.IndicatorSnapshot) bool {
	passed := 0
	for _, r := range s.rules {
		if r.Check(snap) {
			passed++
		}
	}
	if s.policy == config.PolicyThreshold {
		return passed >= s.minPassed
	}
	return passed == len(s.rules)
}
