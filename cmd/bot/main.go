package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"TrendTitan/internal/collector"
	"TrendTitan/internal/config"
	"TrendTitan/internal/engine"
	"TrendTitan/internal/notifier"
	"TrendTitan/internal/portfolio"
	"TrendTitan/internal/scanner"
	"TrendTitan/internal/scheduler"
	"TrendTitan/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendTitan starting...")

	// Load config
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

	// Open price store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open price store: %v", err)
	}
	defer st.Close()

	// Data pipeline
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	etl := collector.NewETL(fetcher, st, cfg.Universe)

	// Portfolio ledger
	ledger := portfolio.NewManager(cfg.Portfolio.StateFile, cfg.Strategy.InitialCapital)

	// Signal scanner and cycle engine
	scan := scanner.New(st, cfg)
	eng := engine.New(cfg, st, ledger, scan, st)

	// Notifier
	var n notifier.Notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[INFO] Telegram not configured, reports go to the log only")
		n = notifier.NewNoopNotifier()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, eng, etl, ledger, n)
	if err := sched.RegisterAll(cfg.Schedule.ETLCron, cfg.Schedule.CycleCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Telegram commands
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run one cycle immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing one cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] TrendTitan is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TrendTitan stopped")
}
