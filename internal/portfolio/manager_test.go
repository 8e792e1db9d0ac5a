package portfolio

import (
	"math"
	"path/filepath"
	"testing"

	"TrendTitan/internal/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(filepath.Join(t.TempDir(), "pf.json"), 1000000)
	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestApplyBuyAndEquityIdentity(t *testing.T) {
	m := newTestManager(t)

	trade, err := m.ApplyBuy("TCS.NS", model.Position{
		Qty: 900, EntryPrice: 100, StopLoss: 94, HighestHigh: 100, DateBought: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if trade.Side != model.SideBuy || trade.Qty != 900 {
		t.Errorf("unexpected trade log: %+v", trade)
	}
	if m.Cash() != 1000000-90000 {
		t.Errorf("expected cash 910000, got %f", m.Cash())
	}

	equity := m.RecomputeEquity()
	if math.Abs(equity-1000000) > 1e-6 {
		t.Errorf("buy at the mark must be equity neutral, got %f", equity)
	}
}

func TestApplyBuyInsufficientCash(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ApplyBuy("TCS.NS", model.Position{Qty: 20000, EntryPrice: 100})
	if err == nil {
		t.Fatal("expected insufficient-cash error")
	}
	if m.Cash() != 1000000 {
		t.Errorf("failed buy must not move cash, got %f", m.Cash())
	}
	if len(m.Holdings()) != 0 {
		t.Error("failed buy must not create a holding")
	}
}

func TestApplySell(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.ApplyBuy("INFY.NS", model.Position{
		Qty: 100, EntryPrice: 100, StopLoss: 94, HighestHigh: 100,
	}); err != nil {
		t.Fatalf("buy: %v", err)
	}

	m.SetMark("INFY.NS", 90)
	trade, err := m.ApplySell("INFY.NS", 90)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if trade.PnL != -1000 || math.Abs(trade.PnLPct-(-10)) > 1e-9 {
		t.Errorf("expected -1000 / -10%%, got %f / %f", trade.PnL, trade.PnLPct)
	}
	if len(m.Holdings()) != 0 {
		t.Error("sold position still held")
	}
	// bought 100@100 (-10000), sold 100@90 (+9000)
	if m.Cash() != 999000 {
		t.Errorf("expected cash 999000, got %f", m.Cash())
	}

	if _, err := m.ApplySell("INFY.NS", 90); err == nil {
		t.Error("selling an absent position must fail")
	}
}

func TestRecomputeEquityUsesEntryPriceWithoutMark(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.ApplyBuy("ITC.NS", model.Position{Qty: 50, EntryPrice: 400}); err != nil {
		t.Fatalf("buy: %v", err)
	}

	// Reload to wipe the cycle marks, as happens on a fresh cycle with a
	// data gap for the instrument.
	if err := m.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	equity := m.RecomputeEquity()
	want := m.Cash() + 50*400.0
	if math.Abs(equity-want) > 1e-6 {
		t.Errorf("expected gap-marked equity %f, got %f", want, equity)
	}
}

func TestRecordHistory(t *testing.T) {
	m := newTestManager(t)
	m.RecomputeEquity()
	m.RecordHistory("2024-03-01")
	m.RecordHistory("2024-03-01")

	pf := m.Portfolio()
	if len(pf.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(pf.History))
	}
}
