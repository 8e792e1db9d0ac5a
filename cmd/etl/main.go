// Command etl runs the market-data pipeline once and exits. Useful for
// seeding the price store before the first trading cycle.
package main

import (
	"log"
	"os"

	"TrendTitan/internal/collector"
	"TrendTitan/internal/config"
	"TrendTitan/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open price store: %v", err)
	}
	defer st.Close()

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	collector.NewETL(fetcher, st, cfg.Universe).Run()
}
