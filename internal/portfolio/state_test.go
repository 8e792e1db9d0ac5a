package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"TrendTitan/internal/model"
)

func TestLoadPortfolioDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	pf, err := LoadPortfolio(path, 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pf.Cash != 1000000 || pf.Equity != 1000000 {
		t.Errorf("expected default cash/equity 1000000, got %f/%f", pf.Cash, pf.Equity)
	}
	if len(pf.Holdings) != 0 || len(pf.History) != 0 {
		t.Error("expected empty holdings and history in default state")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pf.json")
	pf := model.NewPortfolio(500000)
	pf.Cash = 410000
	pf.Equity = 500000
	pf.Holdings["RELIANCE.NS"] = model.Position{
		Qty: 30, EntryPrice: 3000, StopLoss: 2850, HighestHigh: 3050, DateBought: "2024-03-01",
	}
	pf.UpsertHistory("2024-03-01", 500000)

	if err := SavePortfolio(path, pf); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadPortfolio(path, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cash != pf.Cash || got.Equity != pf.Equity {
		t.Errorf("cash/equity mismatch after roundtrip")
	}
	pos, ok := got.Holdings["RELIANCE.NS"]
	if !ok {
		t.Fatal("holding lost in roundtrip")
	}
	if pos != pf.Holdings["RELIANCE.NS"] {
		t.Errorf("position mismatch: %+v", pos)
	}
	if len(got.History) != 1 || got.History[0].Date != "2024-03-01" {
		t.Errorf("history mismatch: %+v", got.History)
	}
}

func TestSavePortfolioAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pf.json")

	if err := SavePortfolio(path, model.NewPortfolio(1000000)); err != nil {
		t.Fatalf("save: %v", err)
	}
	// The temp file must be gone after a successful rename.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("target file missing: %v", err)
	}
}

func TestUpsertHistoryIdempotent(t *testing.T) {
	pf := model.NewPortfolio(100)
	pf.UpsertHistory("2024-03-01", 100)
	pf.UpsertHistory("2024-03-02", 110)
	pf.UpsertHistory("2024-03-02", 120) // same-day rerun overwrites

	if len(pf.History) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(pf.History))
	}
	if pf.History[1].Equity != 120 {
		t.Errorf("expected overwrite to 120, got %f", pf.History[1].Equity)
	}
}
