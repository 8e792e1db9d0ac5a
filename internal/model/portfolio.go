package model

// Position is one open holding in the simulated account.
type Position struct {
	Qty         int     `json:"qty"`
	EntryPrice  float64 `json:"entry_price"`
	StopLoss    float64 `json:"stop_loss"`
	HighestHigh float64 `json:"highest_high"`
	DateBought  string  `json:"date_bought"`
}

// EquityPoint is one sample of the equity curve.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// Portfolio is the persisted account state: cash, the last computed equity,
// open holdings by ticker and the equity history.
type Portfolio struct {
	Cash     float64             `json:"cash"`
	Equity   float64             `json:"equity"`
	Holdings map[string]Position `json:"holdings"`
	History  []EquityPoint       `json:"history"`
}

// NewPortfolio returns the starting state for a fresh account.
func NewPortfolio(initialCapital float64) *Portfolio {
	return &Portfolio{
		Cash:     initialCapital,
		Equity:   initialCapital,
		Holdings: make(map[string]Position),
	}
}

// UpsertHistory records the equity for a date, overwriting an existing entry
// so re-running a cycle for the same day never duplicates the curve. The
// scan runs newest-first since reruns only ever touch the tail.
func (p *Portfolio) UpsertHistory(date string, equity float64) {
	for i := len(p.History) - 1; i >= 0; i-- {
		if p.History[i].Date == date {
			p.History[i].Equity = equity
			return
		}
	}
	p.History = append(p.History, EquityPoint{Date: date, Equity: equity})
}
