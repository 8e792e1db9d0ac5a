package notifier

import (
	"fmt"
	"sort"
	"strings"

	"TrendTitan/internal/model"
)

// FormatCycleReport formats a completed cycle into a Telegram message.
func FormatCycleReport(report *model.CycleReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤖 <b>Trading cycle</b> | %s\n\n", report.Date))

	if len(report.Sells) == 0 && len(report.Buys) == 0 {
		b.WriteString("No trades today.\n")
	}
	for _, t := range report.Sells {
		b.WriteString(fmt.Sprintf("🔴 SELL %s | price %.2f | qty %d | PnL %+.1f%%\n",
			t.Ticker, t.Price, t.Qty, t.PnLPct))
	}
	for _, t := range report.Buys {
		b.WriteString(fmt.Sprintf("🟢 BUY  %s | price %.2f | qty %d\n",
			t.Ticker, t.Price, t.Qty))
	}

	b.WriteString(fmt.Sprintf("\n💰 Net worth: %.2f\n", report.Equity))
	b.WriteString(fmt.Sprintf("💵 Cash: %.2f\n", report.Cash))
	if report.Skipped > 0 {
		b.WriteString(fmt.Sprintf("⚠️ %d instruments skipped (missing data)\n", report.Skipped))
	}
	return b.String()
}

// FormatPortfolio formats the current account state for display.
func FormatPortfolio(pf *model.Portfolio) string {
	var b strings.Builder
	b.WriteString("📦 <b>Portfolio</b>\n\n")
	b.WriteString(fmt.Sprintf("Equity: %.2f\n", pf.Equity))
	b.WriteString(fmt.Sprintf("Cash: %.2f\n", pf.Cash))
	b.WriteString(fmt.Sprintf("Open positions: %d\n", len(pf.Holdings)))

	tickers := make([]string, 0, len(pf.Holdings))
	for t := range pf.Holdings {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		pos := pf.Holdings[t]
		b.WriteString(fmt.Sprintf("  %s | qty %d | entry %.2f | stop %.2f | since %s\n",
			t, pos.Qty, pos.EntryPrice, pos.StopLoss, pos.DateBought))
	}

	if n := len(pf.History); n > 0 {
		last := pf.History[n-1]
		b.WriteString(fmt.Sprintf("\nLast curve point: %s → %.2f\n", last.Date, last.Equity))
	}
	return b.String()
}
