package scheduler

import (
	"context"
	"fmt"
	"log"

	"TrendTitan/internal/collector"
	"TrendTitan/internal/engine"
	"TrendTitan/internal/notifier"
	"TrendTitan/internal/portfolio"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks: the market-data pipeline and the daily
// trading cycle.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	ETL      *collector.ETL
	Ledger   *portfolio.Manager
	Notifier notifier.Notifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, etl *collector.ETL, ledger *portfolio.Manager, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		ETL:      etl,
		Ledger:   ledger,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterAll registers the ETL and cycle tasks. The ETL runs before the
// cycle so the cycle sees today's bars.
func (s *Scheduler) RegisterAll(etlCron, cycleCron string) error {
	if _, err := s.Cron.AddFunc(etlCron, s.etlTask); err != nil {
		return fmt.Errorf("register etl task: %w", err)
	}
	if _, err := s.Cron.AddFunc(cycleCron, s.cycleTask); err != nil {
		return fmt.Errorf("register cycle task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes one cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.cycleTask()
}

func (s *Scheduler) cycleTask() {
	report, err := s.Engine.RunCycle()
	if err != nil {
		log.Printf("[ERROR] cycle failed: %v", err)
		s.trySend(fmt.Sprintf("❌ Trading cycle failed: %v", err))
		return
	}
	s.trySend(notifier.FormatCycleReport(report))
}

func (s *Scheduler) etlTask() {
	s.ETL.Run()
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		s.cycleTask()
		return ""
	case "/etl":
		s.etlTask()
		return "ETL complete"
	case "/portfolio":
		if err := s.Ledger.Load(); err != nil {
			return fmt.Sprintf("load portfolio: %v", err)
		}
		pf := s.Ledger.Portfolio()
		return notifier.FormatPortfolio(&pf)
	default:
		return "Commands:\n• /run — run one trading cycle\n• /etl — update market data\n• /portfolio — show account state"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
