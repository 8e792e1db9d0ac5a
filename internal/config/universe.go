package config

// DefaultUniverse is the NIFTY 50 universe mapped by sector, so the default
// book is diversified by construction.
func DefaultUniverse() []Asset {
	return []Asset{
		// Banks
		{Ticker: "HDFCBANK.NS", Sector: "Financials"},
		{Ticker: "ICICIBANK.NS", Sector: "Financials"},
		{Ticker: "SBIN.NS", Sector: "Financials"},
		{Ticker: "AXISBANK.NS", Sector: "Financials"},
		{Ticker: "KOTAKBANK.NS", Sector: "Financials"},
		{Ticker: "INDUSINDBK.NS", Sector: "Financials"},
		// IT
		{Ticker: "TCS.NS", Sector: "Technology"},
		{Ticker: "INFY.NS", Sector: "Technology"},
		{Ticker: "HCLTECH.NS", Sector: "Technology"},
		{Ticker: "WIPRO.NS", Sector: "Technology"},
		{Ticker: "TECHM.NS", Sector: "Technology"},
		{Ticker: "LTIM.NS", Sector: "Technology"},
		// Oil & energy
		{Ticker: "RELIANCE.NS", Sector: "Energy"},
		{Ticker: "ONGC.NS", Sector: "Energy"},
		{Ticker: "NTPC.NS", Sector: "Utilities"},
		{Ticker: "POWERGRID.NS", Sector: "Utilities"},
		{Ticker: "BPCL.NS", Sector: "Energy"},
		{Ticker: "COALINDIA.NS", Sector: "Energy"},
		// Auto
		{Ticker: "MARUTI.NS", Sector: "Auto"},
		{Ticker: "M&M.NS", Sector: "Auto"},
		{Ticker: "BAJAJ-AUTO.NS", Sector: "Auto"},
		{Ticker: "HEROMOTOCO.NS", Sector: "Auto"},
		{Ticker: "EICHERMOT.NS", Sector: "Auto"},
		// FMCG
		{Ticker: "ITC.NS", Sector: "FMCG"},
		{Ticker: "HINDUNILVR.NS", Sector: "FMCG"},
		{Ticker: "NESTLEIND.NS", Sector: "FMCG"},
		{Ticker: "BRITANNIA.NS", Sector: "FMCG"},
		{Ticker: "TATACONSUM.NS", Sector: "FMCG"},
		// Metals
		{Ticker: "TATASTEEL.NS", Sector: "Metals"},
		{Ticker: "HINDALCO.NS", Sector: "Metals"},
		{Ticker: "JSWSTEEL.NS", Sector: "Metals"},
		// Pharma
		{Ticker: "SUNPHARMA.NS", Sector: "Healthcare"},
		{Ticker: "DRREDDY.NS", Sector: "Healthcare"},
		{Ticker: "CIPLA.NS", Sector: "Healthcare"},
		{Ticker: "APOLLOHOSP.NS", Sector: "Healthcare"},
		// Cement, infra, telecom, consumer
		{Ticker: "ULTRACEMCO.NS", Sector: "Cement"},
		{Ticker: "GRASIM.NS", Sector: "Cement"},
		{Ticker: "LT.NS", Sector: "Construction"},
		{Ticker: "BHARTIARTL.NS", Sector: "Telecom"},
		{Ticker: "TITAN.NS", Sector: "Consumer"},
		{Ticker: "ASIANPAINT.NS", Sector: "Consumer"},
		{Ticker: "ADANIENT.NS", Sector: "Conglomerate"},
		{Ticker: "ADANIPORTS.NS", Sector: "Infrastructure"},
	}
}
