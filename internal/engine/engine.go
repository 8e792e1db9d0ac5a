// Package engine runs the daily cycle: load the portfolio, mark and exit
// open positions, scan and enter new ones, persist. One pass, no state
// re-entry, and a failure on one instrument never aborts the cycle.
package engine

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"TrendTitan/internal/calculator"
	"TrendTitan/internal/config"
	"TrendTitan/internal/model"
	"TrendTitan/internal/portfolio"
	"TrendTitan/internal/position"
	"TrendTitan/internal/store"
)

// PriceProvider is the engine's read seam to the price history store.
type PriceProvider interface {
	DailyBars(ticker string, limit int) ([]model.PriceBar, error)
}

// CandidateSource produces ranked entry candidates. Implemented by the
// signal scanner.
type CandidateSource interface {
	Scan(universe []string, held map[string]model.Position) []model.Candidate
}

// Engine orchestrates one daily simulation cycle.
type Engine struct {
	mu       sync.Mutex // serializes cycle invocations
	cfg      *config.Config
	provider PriceProvider
	ledger   *portfolio.Manager
	scanner  CandidateSource
	recorder store.Recorder
	now      func() time.Time
}

// New wires the cycle engine. The recorder may be a NoopRecorder.
func New(cfg *config.Config, provider PriceProvider, ledger *portfolio.Manager, scan CandidateSource, rec store.Recorder) *Engine {
	return &Engine{
		cfg:      cfg,
		provider: provider,
		ledger:   ledger,
		scanner:  scan,
		recorder: rec,
		now:      time.Now,
	}
}

// SetClock overrides the cycle-date clock (tests and backfills).
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// RunCycle executes exactly one cycle to completion:
// LOAD → MARK_AND_EXIT → SCAN_AND_ENTER → PERSIST.
func (e *Engine) RunCycle() (*model.CycleReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	date := e.now().UTC().Format(model.DateLayout)
	report := &model.CycleReport{Date: date}
	log.Printf("[INFO] cycle starting for %s", date)

	// LOAD
	if err := e.ledger.Load(); err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	// MARK_AND_EXIT: all exits complete before any entry so cash available
	// for sizing is correct.
	e.markAndExit(date, report)
	e.ledger.RecomputeEquity()
	e.ledger.RecordHistory(date)

	// SCAN_AND_ENTER
	e.scanAndEnter(date, report)
	report.Equity = e.ledger.RecomputeEquity()
	e.ledger.RecordHistory(date)
	report.Cash = e.ledger.Cash()

	// PERSIST
	if err := e.ledger.Save(); err != nil {
		return nil, fmt.Errorf("persist portfolio: %w", err)
	}
	e.recordTrades(date, report)

	log.Printf("[INFO] cycle complete: %d buys, %d sells, %d skipped, equity %.2f",
		len(report.Buys), len(report.Sells), report.Skipped, report.Equity)
	return report, nil
}

// markAndExit revalues every open position, ratchets trailing stops and
// applies stop-loss exits at today's close.
func (e *Engine) markAndExit(date string, report *model.CycleReport) {
	held := e.ledger.Holdings()
	tickers := make([]string, 0, len(held))
	for t := range held {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	log.Printf("[INFO] checking %d active positions", len(tickers))

	for _, ticker := range tickers {
		pos := held[ticker]

		bars, err := e.provider.DailyBars(ticker, e.cfg.Strategy.LookbackBars)
		if err != nil {
			log.Printf("[WARN] mark %s: %v, valuing at entry price", ticker, err)
			report.Skipped++
			e.ledger.SetMark(ticker, pos.EntryPrice)
			continue
		}
		if len(bars) == 0 {
			report.Skipped++
			e.ledger.SetMark(ticker, pos.EntryPrice)
			continue
		}

		today := bars[len(bars)-1]
		if today.DayKey() != date {
			// No bar for the cycle date (holiday / data gap): value at
			// entry price and leave the stop untouched so a stale bar can
			// never trigger a false exit.
			e.ledger.SetMark(ticker, pos.EntryPrice)
			continue
		}

		atr, atrErr := calculator.CalculateATR(bars, e.cfg.Strategy.ATRPeriod)
		pos = position.RatchetStop(pos, today.High, atr, atrErr == nil, e.cfg.Strategy.ATRMultiplier)
		e.ledger.UpdatePosition(ticker, pos)
		e.ledger.SetMark(ticker, today.Close)

		if position.ShouldExit(pos, today.Close) {
			trade, err := e.ledger.ApplySell(ticker, today.Close)
			if err != nil {
				log.Printf("[ERROR] sell %s: %v", ticker, err)
				continue
			}
			report.Sells = append(report.Sells, trade)
			log.Printf("[INFO] SELL %s | price %.2f | pnl %+.1f%%", ticker, trade.Price, trade.PnLPct)
		}
	}
}

// scanAndEnter ranks entry candidates and opens positions until the
// position cap or the cash floor is reached.
func (e *Engine) scanAndEnter(date string, report *model.CycleReport) {
	s := e.cfg.Strategy
	held := e.ledger.Holdings()
	if len(held) >= s.MaxPositions {
		return
	}

	candidates := e.scanner.Scan(e.cfg.Tickers(), held)
	log.Printf("[INFO] scan produced %d candidates (cash %.0f)", len(candidates), e.ledger.Cash())

	// Size against post-exit equity, fixed for the whole entry pass.
	equity := e.ledger.RecomputeEquity()
	open := len(held)

	for _, c := range candidates {
		if open >= s.MaxPositions {
			break
		}
		if e.ledger.Cash() < s.MinCash {
			break
		}

		qty := position.SizeQuantity(equity, s.AllocationPct, c.Close)
		if qty == 0 {
			continue
		}
		if float64(qty)*c.Close > e.ledger.Cash() {
			continue
		}

		trade, err := e.ledger.ApplyBuy(c.Ticker, model.Position{
			Qty:         qty,
			EntryPrice:  c.Close,
			StopLoss:    c.Stop,
			HighestHigh: c.Close,
			DateBought:  date,
		})
		if err != nil {
			log.Printf("[ERROR] buy %s: %v", c.Ticker, err)
			continue
		}
		open++
		report.Buys = append(report.Buys, trade)
		log.Printf("[INFO] BUY  %s | price %.2f | qty %d", c.Ticker, trade.Price, trade.Qty)
	}
}

func (e *Engine) recordTrades(date string, report *model.CycleReport) {
	for _, t := range report.Sells {
		if err := e.recorder.RecordTrade(date, t); err != nil {
			log.Printf("[ERROR] record trade %s: %v", t.Ticker, err)
		}
	}
	for _, t := range report.Buys {
		if err := e.recorder.RecordTrade(date, t); err != nil {
			log.Printf("[ERROR] record trade %s: %v", t.Ticker, err)
		}
	}
}
