package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TrendTitan/internal/calculator"
)

// Entry rule combination policies.
const (
	PolicyAll       = "all"
	PolicyThreshold = "threshold"
)

// Asset is one universe member with its sector tag.
type Asset struct {
	Ticker string `yaml:"ticker"`
	Sector string `yaml:"sector"`
}

// Config holds all application configuration.
type Config struct {
	Strategy struct {
		FastWindow     int     `yaml:"fast_window"`
		SlowWindow     int     `yaml:"slow_window"`
		ROCLookback    int     `yaml:"roc_lookback"`
		RSIPeriod      int     `yaml:"rsi_period"`
		ATRPeriod      int     `yaml:"atr_period"`
		ATRMultiplier  float64 `yaml:"atr_multiplier"`
		MinMomentum    float64 `yaml:"min_momentum"`
		MaxRSI         float64 `yaml:"max_rsi"`
		AllocationPct  float64 `yaml:"allocation_pct"`
		MaxPositions   int     `yaml:"max_positions"`
		MinCash        float64 `yaml:"min_cash"`
		InitialCapital float64 `yaml:"initial_capital"`
		LookbackBars   int     `yaml:"lookback_bars"`
	} `yaml:"strategy"`
	Entry struct {
		Policy    string `yaml:"policy"` // "all" or "threshold"
		MinPassed int    `yaml:"min_passed"`
	} `yaml:"entry"`
	Universe  []Asset `yaml:"universe"`
	Portfolio struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"portfolio"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		CycleCron string `yaml:"cycle_cron"`
		ETLCron   string `yaml:"etl_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields the pure default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PORTFOLIO_FILE"); v != "" {
		cfg.Portfolio.StateFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_CYCLE"); v != "" {
		cfg.Schedule.CycleCron = v
	}
	if v := os.Getenv("CRON_ETL"); v != "" {
		cfg.Schedule.ETLCron = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err == nil {
			cfg.Strategy.InitialCapital = capital
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	s := &c.Strategy
	if s.FastWindow == 0 {
		s.FastWindow = 50
	}
	if s.SlowWindow == 0 {
		s.SlowWindow = 200
	}
	if s.ROCLookback == 0 {
		s.ROCLookback = 125
	}
	if s.RSIPeriod == 0 {
		s.RSIPeriod = 14
	}
	if s.ATRPeriod == 0 {
		s.ATRPeriod = 20
	}
	if s.ATRMultiplier == 0 {
		s.ATRMultiplier = 3.0
	}
	if s.MinMomentum == 0 {
		s.MinMomentum = 20
	}
	if s.MaxRSI == 0 {
		s.MaxRSI = 70
	}
	if s.AllocationPct == 0 {
		s.AllocationPct = 0.09
	}
	if s.MaxPositions == 0 {
		s.MaxPositions = 10
	}
	if s.MinCash == 0 {
		s.MinCash = 10000
	}
	if s.InitialCapital == 0 {
		s.InitialCapital = 1000000
	}
	if s.LookbackBars == 0 {
		s.LookbackBars = 300
	}
	if c.Entry.Policy == "" {
		c.Entry.Policy = PolicyAll
	}
	if c.Entry.MinPassed == 0 {
		c.Entry.MinPassed = 2
	}
	if len(c.Universe) == 0 {
		c.Universe = DefaultUniverse()
	}
	if c.Portfolio.StateFile == "" {
		c.Portfolio.StateFile = "data/shadow_portfolio.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/market_data.db"
	}
	if c.Schedule.CycleCron == "" {
		c.Schedule.CycleCron = "0 30 18 * * 1-5" // weekdays after market close (IST)
	}
	if c.Schedule.ETLCron == "" {
		c.Schedule.ETLCron = "0 0 18 * * 1-5"
	}
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	s := c.Strategy
	if s.FastWindow <= 0 || s.SlowWindow <= 0 || s.ROCLookback <= 0 ||
		s.RSIPeriod <= 0 || s.ATRPeriod <= 0 {
		return fmt.Errorf("strategy windows must be positive")
	}
	if s.FastWindow >= s.SlowWindow {
		return fmt.Errorf("strategy.fast_window must be smaller than slow_window")
	}
	if s.LookbackBars < s.SlowWindow {
		return fmt.Errorf("strategy.lookback_bars must cover slow_window (%d < %d)", s.LookbackBars, s.SlowWindow)
	}
	if s.ATRMultiplier <= 0 {
		return fmt.Errorf("strategy.atr_multiplier must be positive")
	}
	if s.AllocationPct <= 0 || s.AllocationPct > 1 {
		return fmt.Errorf("strategy.allocation_pct must be in (0, 1]")
	}
	if s.MaxPositions <= 0 {
		return fmt.Errorf("strategy.max_positions must be positive")
	}
	if s.InitialCapital <= 0 {
		return fmt.Errorf("strategy.initial_capital must be positive")
	}
	switch c.Entry.Policy {
	case PolicyAll:
	case PolicyThreshold:
		if c.Entry.MinPassed <= 0 {
			return fmt.Errorf("entry.min_passed must be positive for threshold policy")
		}
	default:
		return fmt.Errorf("entry.policy must be %q or %q", PolicyAll, PolicyThreshold)
	}
	if len(c.Universe) == 0 {
		return fmt.Errorf("universe must not be empty")
	}
	seen := make(map[string]bool, len(c.Universe))
	for _, a := range c.Universe {
		if a.Ticker == "" {
			return fmt.Errorf("universe entries need a ticker")
		}
		if seen[a.Ticker] {
			return fmt.Errorf("duplicate universe ticker %q", a.Ticker)
		}
		seen[a.Ticker] = true
	}
	return nil
}

// IndicatorParams maps the strategy windows onto calculator parameters.
func (c *Config) IndicatorParams() calculator.Params {
	return calculator.Params{
		FastWindow:  c.Strategy.FastWindow,
		SlowWindow:  c.Strategy.SlowWindow,
		ROCLookback: c.Strategy.ROCLookback,
		RSIPeriod:   c.Strategy.RSIPeriod,
		ATRPeriod:   c.Strategy.ATRPeriod,
	}
}

// Tickers returns the universe tickers in declaration order.
func (c *Config) Tickers() []string {
	out := make([]string, len(c.Universe))
	for i, a := range c.Universe {
		out[i] = a.Ticker
	}
	return out
}
