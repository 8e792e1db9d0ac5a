package position

import (
	"math"
	"testing"

	"TrendTitan/internal/model"
)

func TestRatchetStopRises(t *testing.T) {
	pos := model.Position{Qty: 100, EntryPrice: 100, StopLoss: 95, HighestHigh: 100}

	// New high of 110 with ATR 3 lifts the stop to 110 - 9 = 101.
	pos = RatchetStop(pos, 110, 3, true, 3.0)
	if pos.HighestHigh != 110 {
		t.Errorf("expected highest high 110, got %f", pos.HighestHigh)
	}
	if pos.StopLoss != 101 {
		t.Errorf("expected stop 101, got %f", pos.StopLoss)
	}
}

func TestRatchetStopNeverFalls(t *testing.T) {
	pos := model.Position{Qty: 100, EntryPrice: 100, StopLoss: 101, HighestHigh: 110}

	// ATR expansion would put the candidate stop below the current one;
	// the stop must hold.
	pos = RatchetStop(pos, 109, 8, true, 3.0)
	if pos.StopLoss != 101 {
		t.Errorf("stop fell from 101 to %f on ATR expansion", pos.StopLoss)
	}
	if pos.HighestHigh != 110 {
		t.Errorf("highest high moved down to %f", pos.HighestHigh)
	}

	// Without ATR only the high-water mark may move.
	pos = RatchetStop(pos, 115, 0, false, 3.0)
	if pos.HighestHigh != 115 {
		t.Errorf("expected highest high 115, got %f", pos.HighestHigh)
	}
	if pos.StopLoss != 101 {
		t.Errorf("stop changed without ATR: %f", pos.StopLoss)
	}
}

func TestShouldExit(t *testing.T) {
	pos := model.Position{StopLoss: 101}
	if !ShouldExit(pos, 90) {
		t.Error("close below stop must exit")
	}
	if ShouldExit(pos, 101) {
		t.Error("close equal to stop must not exit")
	}
	if ShouldExit(pos, 102) {
		t.Error("close above stop must not exit")
	}
}

func TestSizeQuantity(t *testing.T) {
	tests := []struct {
		equity float64
		alloc  float64
		price  float64
		want   int
	}{
		{1000000, 0.09, 100, 900}, // 9% of a 1M book at 100
		{1000000, 0.09, 7001, 12}, // floor, never round up
		{1000, 0.09, 5000, 0},     // target below one share
		{1000000, 0.09, 0, 0},     // bad price
	}
	for _, tt := range tests {
		if got := SizeQuantity(tt.equity, tt.alloc, tt.price); got != tt.want {
			t.Errorf("SizeQuantity(%.0f, %.2f, %.0f) = %d, want %d",
				tt.equity, tt.alloc, tt.price, got, tt.want)
		}
	}
}

func TestRealizedPnL(t *testing.T) {
	pos := model.Position{Qty: 100, EntryPrice: 100}
	pnl, pct := RealizedPnL(pos, 90)
	if pnl != -1000 {
		t.Errorf("expected pnl -1000, got %f", pnl)
	}
	if math.Abs(pct-(-10)) > 1e-9 {
		t.Errorf("expected pnl -10%%, got %f", pct)
	}

	pnl, pct = RealizedPnL(pos, 125)
	if pnl != 2500 || math.Abs(pct-25) > 1e-9 {
		t.Errorf("expected +2500 / +25%%, got %f / %f", pnl, pct)
	}
}
