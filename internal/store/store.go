package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendTitan/internal/model"
)

// Store owns the SQLite database holding daily price history and the trade
// log. It implements both the engine's PriceProvider and Recorder seams.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] price store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_prices (
			ticker TEXT,
			sector TEXT,
			date   TEXT,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume INTEGER,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_date ON daily_prices(date)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT NOT NULL,
			ticker    TEXT NOT NULL,
			side      TEXT NOT NULL,
			qty       INTEGER,
			price     REAL,
			pnl       REAL,
			pnl_pct   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Tickers returns all distinct tickers present in the price store, sorted
// ascending for deterministic enumeration.
func (s *Store) Tickers() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ticker FROM daily_prices ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// DailyBars returns up to limit most recent bars for a ticker, ascending by
// date. May return fewer bars than requested, or none.
func (s *Store) DailyBars(ticker string, limit int) ([]model.PriceBar, error) {
	rows, err := s.db.Query(
		`SELECT date, open, high, low, close, volume
		 FROM daily_prices WHERE ticker = ?
		 ORDER BY date DESC LIMIT ?`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query bars for %s: %w", ticker, err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var dateStr string
		var b model.PriceBar
		if err := rows.Scan(&dateStr, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		d, err := time.Parse(model.DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("bad date %q for %s: %w", dateStr, ticker, err)
		}
		b.Date = d
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query returned newest first; flip to ascending.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// LastDate returns the most recent stored date for a ticker, or "" when the
// ticker has no rows yet.
func (s *Store) LastDate(ticker string) (string, error) {
	var last sql.NullString
	err := s.db.QueryRow(
		`SELECT MAX(date) FROM daily_prices WHERE ticker = ?`, ticker).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("query last date for %s: %w", ticker, err)
	}
	if !last.Valid {
		return "", nil
	}
	return last.String, nil
}

// InsertBars inserts bars for a ticker, ignoring duplicates and dropping
// zero-volume bars (market holidays / vendor glitches). Returns the number
// of rows attempted after filtering.
func (s *Store) InsertBars(ticker, sector string, bars []model.PriceBar) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO daily_prices
		 (ticker, sector, date, open, high, low, close, volume)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, b := range bars {
		if b.Volume <= 0 {
			continue
		}
		if _, err := stmt.Exec(ticker, sector, b.DayKey(),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert %s %s: %w", ticker, b.DayKey(), err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return n, nil
}

// RecordTrade appends one fill to the trade log.
func (s *Store) RecordTrade(date string, t model.TradeLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO trades (timestamp, date, ticker, side, qty, price, pnl, pnl_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), date, t.Ticker, string(t.Side), t.Qty, t.Price, t.PnL, t.PnLPct)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing price store")
	return s.db.Close()
}
