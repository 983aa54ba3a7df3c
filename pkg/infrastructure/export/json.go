package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/skhandal/doi/pkg/application/dto"
)

// document is the JSON artifact's envelope
type document struct {
	RunID       string    `json:"run_id"`
	GeneratedAt string    `json:"generated_at"`
	WindowDays  int       `json:"window_days"`
	WindowDates []string  `json:"window_dates"`
	Rows        []dto.Row `json:"rows"`
}

// WriteJSON writes the final table with its run metadata to a JSON file
func WriteJSON(result *dto.Result, path string) error {
	dates := make([]string, len(result.WindowDates))
	for i, date := range result.WindowDates {
		dates[i] = date.Format("2006-01-02")
	}

	doc := document{
		RunID:       result.RunID.String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		WindowDays:  result.WindowDays,
		WindowDates: dates,
		Rows:        dto.RowsFrom(result.Rows),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
