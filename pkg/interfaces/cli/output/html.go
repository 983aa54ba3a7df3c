package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// reportData is everything the HTML report template needs
type reportData struct {
	GeneratedAt    string
	RunID          string
	WindowDays     int
	DateRange      string
	SalesRecords   int
	InventoryLines int
	UnmatchedItems int
	ExcludedRows   int
	Headers        []string
	Rows           []dto.Row
	CityGroups     []dto.GroupRow
}

// generateHTMLOutput writes a standalone HTML report with the final
// table and a by-city summary.
func generateHTMLOutput(result *dto.Result, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "doi_report.html")
	if err := WriteHTMLReport(result, filename); err != nil {
		return err
	}
	if config.Verbose {
		fmt.Printf("💾 HTML report saved to: %s\n", filename)
	}
	return nil
}

// WriteHTMLReport renders the report for one run to a file
func WriteHTMLReport(result *dto.Result, filename string) error {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	engine := slicer.New(result.Rows, result.WindowDays)
	byCity := engine.Slice(entities.Selection{Cities: []string{entities.SelectAll}})

	dateRange := ""
	if len(result.WindowDates) > 0 {
		dateRange = fmt.Sprintf("%s to %s",
			result.WindowDates[0].Format("2006-01-02"),
			result.WindowDates[len(result.WindowDates)-1].Format("2006-01-02"))
	}

	data := reportData{
		GeneratedAt:    time.Now().Format("2006-01-02 15:04:05"),
		RunID:          result.RunID.String(),
		WindowDays:     result.WindowDays,
		DateRange:      dateRange,
		SalesRecords:   result.SalesRecords,
		InventoryLines: result.InventoryLines,
		UnmatchedItems: result.UnmatchedItems,
		ExcludedRows:   result.ExcludedRows,
		Headers:        dto.FinalTableHeaders(),
		Rows:           dto.RowsFrom(result.Rows),
		CityGroups:     dto.GroupRowsFrom(byCity.Groups),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
