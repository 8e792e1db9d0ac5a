package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"TrendTitan/internal/model"
)

// LoadPortfolio reads the portfolio snapshot from a JSON file. When the
// file does not exist yet it returns the documented starting state instead
// of an error.
func LoadPortfolio(filePath string, initialCapital float64) (*model.Portfolio, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPortfolio(initialCapital), nil
		}
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	var pf model.Portfolio
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	if pf.Holdings == nil {
		pf.Holdings = make(map[string]model.Position)
	}
	return &pf, nil
}

// SavePortfolio writes the portfolio atomically: the snapshot goes to a
// temp file first and is renamed over the target, so a crash mid-write can
// never truncate previously persisted state.
func SavePortfolio(filePath string, pf *model.Portfolio) error {
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal portfolio: %w", err)
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create portfolio dir: %w", err)
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write portfolio temp: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		return fmt.Errorf("replace portfolio file: %w", err)
	}
	return nil
}
