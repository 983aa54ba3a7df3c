package export

import (
	"database/sql"
	stdcsv "encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/domain/entities"
)

func sampleResult() *dto.Result {
	return &dto.Result{
		RunID:      uuid.New(),
		WindowDays: 5,
		WindowDates: []time.Time{
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		Rows: []entities.ReconciledRow{
			{
				City:           "DELHI",
				ItemCode:       "SKU1",
				ProductName:    "Widget",
				UnitsSold:      5,
				WarehouseQty:   100,
				OpenPoQuantity: 10,
				DOI:            decimal.RequireFromString("100"),
			},
			{
				City:         "MUMBAI",
				ItemCode:     "SKU2",
				ProductName:  "Gadget",
				UnitsSold:    40,
				WarehouseQty: 25,
				DOI:          decimal.RequireFromString("3"),
			},
		},
	}
}

func TestWrite_CSVRoundTrip(t *testing.T) {
	result := sampleResult()

	path, err := Write(result, FormatCSV, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	if filepath.Base(path) != "doi_report.csv" {
		t.Errorf("Expected doi_report.csv, got %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen CSV: %v", err)
	}
	defer file.Close()

	decoder, err := csvutil.NewDecoder(stdcsv.NewReader(file))
	if err != nil {
		t.Fatalf("Failed to create decoder: %v", err)
	}
	var rows []dto.Row
	if err := decoder.Decode(&rows); err != nil {
		t.Fatalf("Failed to decode CSV: %v", err)
	}

	want := dto.RowsFrom(result.Rows)
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows back, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestWrite_CSVEmptyTableKeepsHeader(t *testing.T) {
	result := &dto.Result{RunID: uuid.New(), WindowDays: 7}

	path, err := Write(result, FormatCSV, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if string(data) != "CITY,ITEM_CODE,PRODUCT_NAME,UNITS_SOLD,WAREHOUSE_QTY,OPEN_PO_QUANTITY,DOI\n" {
		t.Errorf("Expected only the header row, got %q", data)
	}
}

func TestWrite_JSON(t *testing.T) {
	result := sampleResult()

	path, err := Write(result, FormatJSON, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to write JSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if doc.RunID != result.RunID.String() {
		t.Errorf("Expected run ID %s, got %s", result.RunID, doc.RunID)
	}
	if doc.WindowDays != 5 {
		t.Errorf("Expected 5 window days, got %d", doc.WindowDays)
	}
	if len(doc.WindowDates) != 2 || doc.WindowDates[0] != "2025-06-01" {
		t.Errorf("Expected window dates starting 2025-06-01, got %v", doc.WindowDates)
	}
	if len(doc.Rows) != 2 || doc.Rows[1].UnitsSold != 40 {
		t.Errorf("Expected 2 rows with 40 units in the second, got %+v", doc.Rows)
	}
}

func TestWrite_XLSX(t *testing.T) {
	result := sampleResult()

	path, err := Write(result, FormatXLSX, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	if filepath.Base(path) != WorkbookName {
		t.Errorf("Expected %s, got %s", WorkbookName, path)
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(SheetName)
	if err != nil {
		t.Fatalf("Failed to read sheet %q: %v", SheetName, err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	for i, want := range dto.FinalTableHeaders() {
		if rows[0][i] != want {
			t.Errorf("Header %d: expected %q, got %q", i, want, rows[0][i])
		}
	}
	if rows[1][0] != "DELHI" || rows[1][6] != "100" {
		t.Errorf("Expected DELHI row with DOI 100, got %v", rows[1])
	}
}

func TestWrite_SQLiteAppendsRuns(t *testing.T) {
	dir := t.TempDir()

	first := sampleResult()
	if _, err := Write(first, FormatSQLite, dir); err != nil {
		t.Fatalf("Failed to write first run: %v", err)
	}
	second := sampleResult()
	path, err := Write(second, FormatSQLite, dir)
	if err != nil {
		t.Fatalf("Failed to write second run: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open sqlite file: %v", err)
	}
	defer db.Close()

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("Failed to count runs: %v", err)
	}
	if runs != 2 {
		t.Errorf("Expected 2 runs recorded, got %d", runs)
	}

	var doi float64
	err = db.QueryRow(
		`SELECT doi FROM doi_rows WHERE run_id = ? AND item_code = ?`,
		second.RunID.String(), "SKU1",
	).Scan(&doi)
	if err != nil {
		t.Fatalf("Failed to read DOI back: %v", err)
	}
	if doi != 100 {
		t.Errorf("Expected DOI 100, got %v", doi)
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("xlsx"); err != nil {
		t.Errorf("Expected xlsx to parse, got %v", err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}
