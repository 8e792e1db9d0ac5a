// Package position holds the pure per-position rules: trailing-stop
// ratchet, exit trigger, sizing and realized PnL. The cycle engine applies
// them; nothing here touches portfolio state.
package position

import "TrendTitan/internal/model"

// RatchetStop advances the high-water mark with today's high and raises the
// trailing stop to highestHigh - multiplier*ATR when that is higher than
// the current stop. The stop never falls, even when ATR expands. When ATR
// is unavailable only the high-water mark moves.
func RatchetStop(pos model.Position, high, atr float64, atrAvailable bool, multiplier float64) model.Position {
	if high > pos.HighestHigh {
		pos.HighestHigh = high
	}
	if atrAvailable {
		if candidate := pos.HighestHigh - multiplier*atr; candidate > pos.StopLoss {
			pos.StopLoss = candidate
		}
	}
	return pos
}

// ShouldExit reports whether today's close crossed below the stop.
func ShouldExit(pos model.Position, close float64) bool {
	return close < pos.StopLoss
}

// SizeQuantity returns the whole-share quantity for a target notional of
// equity*allocationPct at the given price. Zero means skip.
func SizeQuantity(equity, allocationPct, price float64) int {
	if price <= 0 {
		return 0
	}
	return int(equity * allocationPct / price)
}

// RealizedPnL returns the absolute and percentage PnL for closing the full
// position at the given price.
func RealizedPnL(pos model.Position, price float64) (pnl, pnlPct float64) {
	cost := float64(pos.Qty) * pos.EntryPrice
	pnl = float64(pos.Qty)*price - cost
	if cost != 0 {
		pnlPct = pnl / cost * 100
	}
	return pnl, pnlPct
}
