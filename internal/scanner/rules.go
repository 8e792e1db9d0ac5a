package scanner

import "TrendTitan/internal/model"

// Rule is one named entry predicate evaluated against an instrument's
// latest indicator snapshot.
type Rule struct {
	Name  string
	Check func(s *model.IndicatorSnapshot) bool
}

// EntryRules returns the ordered trend-following entry conditions:
// price above both moving averages, momentum above the floor, and RSI not
// overbought.
func EntryRules(minMomentum, maxRSI float64) []Rule {
	return []Rule{
		{
			Name:  "trend_slow",
			Check: func(s *model.IndicatorSnapshot) bool { return s.Close > s.SMASlow },
		},
		{
			Name:  "trend_fast",
			Check: func(s *model.IndicatorSnapshot) bool { return s.Close > s.SMAFast },
		},
		{
			Name:  "momentum",
			Check: func(s *model.IndicatorSnapshot) bool { return s.ROC >= minMomentum },
		},
		{
			Name:  "not_overbought",
			Check: func(s *model.IndicatorSnapshot) bool { return s.RSI < maxRSI },
		},
	}
}
