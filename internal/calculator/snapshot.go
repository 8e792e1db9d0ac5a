package calculator

import (
	"fmt"

	"TrendTitan/internal/model"
)

// Params bundles the indicator windows. The slow SMA window doubles as the
// minimum history requirement for producing any snapshot at all.
type Params struct {
	FastWindow  int
	SlowWindow  int
	ROCLookback int
	RSIPeriod   int
	ATRPeriod   int
}

// DefaultParams returns the production indicator windows.
func DefaultParams() Params {
	return Params{
		FastWindow:  50,
		SlowWindow:  200,
		ROCLookback: 125,
		RSIPeriod:   14,
		ATRPeriod:   20,
	}
}

// Snapshot computes all indicators for the most recent bar of an ascending
// series. It returns ErrInsufficientData (possibly wrapped) whenever any
// indicator's window is not covered, so callers can exclude the instrument
// for the cycle instead of acting on a zero.
func Snapshot(bars []model.PriceBar, p Params) (*model.IndicatorSnapshot, error) {
	if len(bars) < p.SlowWindow {
		return nil, ErrInsufficientData
	}
	closes := extractCloses(bars)

	smaSlow, err := CalculateSMA(closes, p.SlowWindow)
	if err != nil {
		return nil, fmt.Errorf("sma %d: %w", p.SlowWindow, err)
	}
	smaFast, err := CalculateSMA(closes, p.FastWindow)
	if err != nil {
		return nil, fmt.Errorf("sma %d: %w", p.FastWindow, err)
	}
	roc, err := CalculateROC(closes, p.ROCLookback)
	if err != nil {
		return nil, fmt.Errorf("roc %d: %w", p.ROCLookback, err)
	}
	rsi, err := CalculateRSI(bars, p.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi %d: %w", p.RSIPeriod, err)
	}
	atr, err := CalculateATR(bars, p.ATRPeriod)
	if err != nil {
		return nil, fmt.Errorf("atr %d: %w", p.ATRPeriod, err)
	}

	return &model.IndicatorSnapshot{
		Close:   closes[len(closes)-1],
		SMAFast: smaFast,
		SMASlow: smaSlow,
		ROC:     roc,
		RSI:     rsi,
		ATR:     atr,
	}, nil
}
