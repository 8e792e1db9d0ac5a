package model

// Candidate is one instrument that passed the entry rules during a scan.
// Candidates live only for the duration of a single cycle.
type Candidate struct {
	Ticker string
	Close  float64
	ROC    float64
	Stop   float64 // initial stop if a position is opened at Close
}

// TradeSide distinguishes buys from sells in the trade log.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// TradeLog records one fill applied to the portfolio.
type TradeLog struct {
	Ticker string
	Side   TradeSide
	Qty    int
	Price  float64
	PnL    float64 // realized, sells only
	PnLPct float64 // realized, sells only
}

// CycleReport summarizes one completed daily cycle.
type CycleReport struct {
	Date    string
	Buys    []TradeLog
	Sells   []TradeLog
	Cash    float64
	Equity  float64
	Skipped int // instruments skipped due to missing data or errors
}
