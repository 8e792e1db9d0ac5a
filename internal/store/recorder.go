package store

import "TrendTitan/internal/model"

// Recorder persists executed trades for later analysis.
type Recorder interface {
	RecordTrade(date string, t model.TradeLog) error
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrade(_ string, _ model.TradeLog) error { return nil }
