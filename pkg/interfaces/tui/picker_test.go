package tui

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
)

func pickerFixture() *PickerModel {
	table := []entities.ReconciledRow{
		{City: "DELHI", ItemCode: "SKU2", ProductName: "Gadget", WarehouseQty: 120, DOI: decimal.NewFromInt(30)},
		{City: "MUMBAI", ItemCode: "SKU1", ProductName: "Widget", WarehouseQty: 100, DOI: decimal.NewFromInt(10)},
		{City: "MUMBAI", ItemCode: "SKU3", ProductName: "Gadget", WarehouseQty: 80, DOI: decimal.NewFromInt(8)},
	}
	return NewPickerModel(slicer.New(table, 7))
}

func TestPickerPinsAllFirst(t *testing.T) {
	picker := pickerFixture()

	if got := picker.cities.options[0]; got != entities.SelectAll {
		t.Errorf("Expected first city option %q, got %q", entities.SelectAll, got)
	}
	if got := len(picker.cities.options); got != 3 {
		t.Errorf("Expected 3 city options, got %d", got)
	}
	if got := len(picker.products.options); got != 3 {
		t.Errorf("Expected 3 product options, got %d", got)
	}
}

func TestPickerNarrowsOtherColumn(t *testing.T) {
	picker := pickerFixture()

	picker.products.selected["Widget"] = true
	picker.refreshOptions()

	cities := picker.cities.options
	if len(cities) != 2 || cities[1] != "MUMBAI" {
		t.Errorf("Expected cities narrowed to [All MUMBAI], got %v", cities)
	}

	// Selecting All alongside a concrete product lifts the narrowing
	picker.products.selected[entities.SelectAll] = true
	picker.refreshOptions()

	if got := len(picker.cities.options); got != 3 {
		t.Errorf("Expected all cities back, got %d options", got)
	}
}

func TestPickerSelectionOrder(t *testing.T) {
	picker := pickerFixture()

	picker.cities.selected["MUMBAI"] = true
	picker.cities.selected["DELHI"] = true
	picker.products.selected[entities.SelectAll] = true

	sel := picker.Selection()
	if len(sel.Cities) != 2 || sel.Cities[0] != "DELHI" {
		t.Errorf("Expected cities in universe order [DELHI MUMBAI], got %v", sel.Cities)
	}
	if len(sel.Products) != 1 || sel.Products[0] != entities.SelectAll {
		t.Errorf("Expected products [All], got %v", sel.Products)
	}
}

func TestOptionListFiltered(t *testing.T) {
	list := newOptionList("Products", []string{"Widget", "Gadget", "Gizmo"})

	matches := list.filtered("gad")
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %v", matches)
	}
	if matches[0] != entities.SelectAll || matches[1] != "Gadget" {
		t.Errorf("Expected [All Gadget], got %v", matches)
	}
}

func TestRenderDetailTableCapsRows(t *testing.T) {
	picker := pickerFixture()
	view := picker.engine.Slice(entities.Selection{
		Cities:   []string{entities.SelectAll},
		Products: []string{entities.SelectAll},
	})

	rendered := renderDetailTable(dto.RowsFrom(view.Rows))
	if !strings.Contains(rendered, "MUMBAI") || !strings.Contains(rendered, "SKU2") {
		t.Errorf("Expected rendered table to contain fixture rows, got:\n%s", rendered)
	}
	if strings.Contains(rendered, "more rows") {
		t.Errorf("Expected no overflow footer for 3 rows, got:\n%s", rendered)
	}
}
