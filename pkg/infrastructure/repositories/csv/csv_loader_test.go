package csv

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/services"
)

func TestLoader_LoadSales(t *testing.T) {
	loader := NewLoader()

	records, err := loader.LoadSales(filepath.Join("testdata", "sales.csv"))
	if err != nil {
		t.Fatalf("Failed to load sales: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 sales records, got %d", len(records))
	}

	first := records[0]
	if !first.OrderedDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected June 1, got %v", first.OrderedDate)
	}
	if first.City != "Mumbai" {
		t.Errorf("Expected raw city Mumbai, got %q", first.City)
	}
	if first.UnitsSold != 10 {
		t.Errorf("Expected 10 units, got %d", first.UnitsSold)
	}

	// "10.0" is a valid spelling of 10.
	if records[1].UnitsSold != 10 {
		t.Errorf("Expected float spelling to parse as 10, got %d", records[1].UnitsSold)
	}

	// An empty cell coerces to zero.
	if records[2].UnitsSold != 0 {
		t.Errorf("Expected empty units to coerce to 0, got %d", records[2].UnitsSold)
	}
}

func TestLoader_LoadSales_ByteOrderMark(t *testing.T) {
	loader := NewLoader()

	records, err := loader.LoadSales(filepath.Join("testdata", "sales_bom.csv"))
	if err != nil {
		t.Fatalf("Failed to load BOM-prefixed sales: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 sales record, got %d", len(records))
	}
	if records[0].UnitsSold != 5 {
		t.Errorf("Expected 5 units, got %d", records[0].UnitsSold)
	}
}

func TestLoader_LoadSales_MissingColumn(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadSales(filepath.Join("testdata", "sales_missing_column.csv"))
	if err == nil {
		t.Fatal("Expected an error for the missing column")
	}

	var missing *services.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected a MissingColumnError, got %v", err)
	}
	if missing.Source != "sales" || missing.Column != "UNITS_SOLD" {
		t.Errorf("Expected sales/UNITS_SOLD, got %s/%s", missing.Source, missing.Column)
	}
}

func TestLoader_LoadSales_BadDateReportsRow(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadSales(filepath.Join("testdata", "sales_bad_date.csv"))
	if err == nil {
		t.Fatal("Expected an error for the bad date")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected the row number in %q", err)
	}
}

func TestLoader_LoadSales_FileNotFound(t *testing.T) {
	loader := NewLoader()

	if _, err := loader.LoadSales(filepath.Join("testdata", "no_such.csv")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestLoader_LoadInventory(t *testing.T) {
	loader := NewLoader()

	records, err := loader.LoadInventory(filepath.Join("testdata", "inventory.csv"))
	if err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 inventory records, got %d", len(records))
	}

	first := records[0]
	if first.ItemCode != "SKU1" || first.ProductName != "Widget" {
		t.Errorf("Expected SKU1/Widget, got %s/%s", first.ItemCode, first.ProductName)
	}
	if !first.OpenPoQuantity.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected open PO 12.5, got %s", first.OpenPoQuantity)
	}
	if !first.WarehouseQty.Equal(decimal.RequireFromString("100.25")) {
		t.Errorf("Expected warehouse 100.25, got %s", first.WarehouseQty)
	}

	// An empty quantity cell coerces to zero; the extra Facility
	// column is ignored.
	if !records[1].OpenPoQuantity.Equal(decimal.Zero) {
		t.Errorf("Expected empty open PO to coerce to 0, got %s", records[1].OpenPoQuantity)
	}
}

func TestLoader_LoadInventory_MissingColumn(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadInventory(filepath.Join("testdata", "inventory_missing_column.csv"))
	if err == nil {
		t.Fatal("Expected an error for the missing column")
	}

	var missing *services.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected a MissingColumnError, got %v", err)
	}
	if missing.Column != "WarehouseQtyAvailable" {
		t.Errorf("Expected WarehouseQtyAvailable missing, got %s", missing.Column)
	}
}

func TestFileSources_RoundTrip(t *testing.T) {
	sales := NewSalesFile(filepath.Join("testdata", "sales.csv"))
	records, err := sales.GetSalesRecords()
	if err != nil {
		t.Fatalf("Failed to read sales source: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 sales records, got %d", len(records))
	}

	inventory := NewInventoryFile(filepath.Join("testdata", "inventory.csv"))
	lines, err := inventory.GetInventoryRecords()
	if err != nil {
		t.Fatalf("Failed to read inventory source: %v", err)
	}
	if len(lines) != 3 {
		t.Errorf("Expected 3 inventory records, got %d", len(lines))
	}
}
