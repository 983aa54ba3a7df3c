package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/domain/entities"
)

func reportResult() *dto.Result {
	return &dto.Result{
		RunID:      uuid.New(),
		WindowDays: 5,
		WindowDates: []time.Time{
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		},
		Rows: []entities.ReconciledRow{
			{City: "MUMBAI", ItemCode: "SKU1", ProductName: "Widget", UnitsSold: 50, WarehouseQty: 100, OpenPoQuantity: 10, DOI: decimal.NewFromInt(10)},
			{City: "MUMBAI", ItemCode: "SKU2", ProductName: "Gadget", UnitsSold: 25, WarehouseQty: 20, DOI: decimal.NewFromInt(4)},
		},
		SalesRecords:   75,
		InventoryLines: 2,
	}
}

func TestWriteHTMLReport(t *testing.T) {
	result := reportResult()
	filename := filepath.Join(t.TempDir(), "doi_report.html")

	if err := WriteHTMLReport(result, filename); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		result.RunID.String(),
		"2025-06-01 to 2025-06-05",
		"<td>Widget</td>",
		"<td>MUMBAI</td>",
		// The by-city summary recomputed from sums: 120/(75/5) = 8.
		"<td class=\"num\">8</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestGenerate_DelegatesToExport(t *testing.T) {
	dir := t.TempDir()

	err := Generate(reportResult(), Config{Format: "csv", OutputDir: dir})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "doi_report.csv")); err != nil {
		t.Errorf("Expected the CSV artifact: %v", err)
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(reportResult(), Config{Format: "pdf", OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("Expected an error for an unsupported format")
	}
}
