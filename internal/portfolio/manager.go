package portfolio

import (
	"fmt"
	"sync"

	"TrendTitan/internal/model"
	"TrendTitan/internal/position"
)

// Manager is the portfolio ledger: it owns cash, holdings, equity and the
// equity history, and applies fills atomically (cash never moves without
// the matching holdings mutation). Mark prices are tracked per cycle so
// equity can be recomputed after every exit and entry pass.
type Manager struct {
	mu       sync.Mutex
	filePath string
	initial  float64
	pf       *model.Portfolio
	marks    map[string]float64
}

// NewManager creates a ledger bound to a state file. Load must be called
// before any other operation.
func NewManager(filePath string, initialCapital float64) *Manager {
	return &Manager{filePath: filePath, initial: initialCapital}
}

// Load reads the persisted portfolio (or the default for a fresh account)
// and resets the per-cycle marks.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pf, err := LoadPortfolio(m.filePath, m.initial)
	if err != nil {
		return err
	}
	m.pf = pf
	m.marks = make(map[string]float64, len(pf.Holdings))
	return nil
}

// Save persists the current portfolio atomically.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SavePortfolio(m.filePath, m.pf)
}

// Portfolio returns a copy of the current state for read-only use.
func (m *Manager) Portfolio() model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := *m.pf
	out.Holdings = make(map[string]model.Position, len(m.pf.Holdings))
	for t, p := range m.pf.Holdings {
		out.Holdings[t] = p
	}
	out.History = append([]model.EquityPoint(nil), m.pf.History...)
	return out
}

// Holdings returns a copy of the open positions.
func (m *Manager) Holdings() map[string]model.Position {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]model.Position, len(m.pf.Holdings))
	for t, p := range m.pf.Holdings {
		out[t] = p
	}
	return out
}

// Cash returns the current cash balance.
func (m *Manager) Cash() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pf.Cash
}

// SetMark records the price at which a holding is valued this cycle.
func (m *Manager) SetMark(ticker string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[ticker] = price
}

// UpdatePosition replaces a holding's state (stop ratchet, high-water mark).
func (m *Manager) UpdatePosition(ticker string, pos model.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pf.Holdings[ticker]; ok {
		m.pf.Holdings[ticker] = pos
	}
}

// ApplySell closes the full position at the given price: proceeds are
// credited and the holding removed in one step.
func (m *Manager) ApplySell(ticker string, price float64) (model.TradeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.pf.Holdings[ticker]
	if !ok {
		return model.TradeLog{}, fmt.Errorf("sell %s: no open position", ticker)
	}
	proceeds := float64(pos.Qty) * price
	pnl, pnlPct := position.RealizedPnL(pos, price)

	m.pf.Cash += proceeds
	delete(m.pf.Holdings, ticker)
	delete(m.marks, ticker)

	return model.TradeLog{
		Ticker: ticker,
		Side:   model.SideSell,
		Qty:    pos.Qty,
		Price:  price,
		PnL:    pnl,
		PnLPct: pnlPct,
	}, nil
}

// ApplyBuy opens a position: cost is debited and the holding created in one
// step. Fails when cash cannot cover the fill.
func (m *Manager) ApplyBuy(ticker string, pos model.Position) (model.TradeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pf.Holdings[ticker]; ok {
		return model.TradeLog{}, fmt.Errorf("buy %s: position already open", ticker)
	}
	cost := float64(pos.Qty) * pos.EntryPrice
	if cost > m.pf.Cash {
		return model.TradeLog{}, fmt.Errorf("buy %s: insufficient cash (%.2f < %.2f)", ticker, m.pf.Cash, cost)
	}

	m.pf.Cash -= cost
	m.pf.Holdings[ticker] = pos
	m.marks[ticker] = pos.EntryPrice

	return model.TradeLog{
		Ticker: ticker,
		Side:   model.SideBuy,
		Qty:    pos.Qty,
		Price:  pos.EntryPrice,
	}, nil
}

// RecomputeEquity revalues the book as cash plus the marked value of every
// holding. Holdings without a mark this cycle (data gaps) are valued at
// entry price.
func (m *Manager) RecomputeEquity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	equity := m.pf.Cash
	for ticker, pos := range m.pf.Holdings {
		mark, ok := m.marks[ticker]
		if !ok {
			mark = pos.EntryPrice
		}
		equity += float64(pos.Qty) * mark
	}
	m.pf.Equity = equity
	return equity
}

// RecordHistory upserts the equity-curve entry for the given date.
func (m *Manager) RecordHistory(date string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pf.UpsertHistory(date, m.pf.Equity)
}
