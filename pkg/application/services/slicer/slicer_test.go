package slicer

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/entities"
)

func row(city, item, product string, units, warehouse, openPo int64, doi string) entities.ReconciledRow {
	return entities.ReconciledRow{
		City:           entities.City(city),
		ItemCode:       entities.ItemCode(item),
		ProductName:    entities.ProductName(product),
		UnitsSold:      units,
		WarehouseQty:   warehouse,
		OpenPoQuantity: openPo,
		DOI:            decimal.RequireFromString(doi),
	}
}

// finalTable is a frozen pipeline output over a 5-day window, sorted
// by city ascending then DOI descending.
func finalTable() []entities.ReconciledRow {
	return []entities.ReconciledRow{
		row("DELHI", "SKU1", "Widget", 5, 100, 10, "100"),
		row("DELHI", "SKU3", "Gizmo", 0, 50, 0, "0"),
		row("MUMBAI", "SKU1", "Widget", 10, 25, 5, "12"),
		row("MUMBAI", "SKU2", "Gadget", 40, 25, 0, "3"),
	}
}

func TestEngine_Slice_PromptWhenNothingSelected(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{})

	if result.Shape != ShapePrompt {
		t.Fatalf("Expected prompt shape, got %v", result.Shape)
	}
	if result.Prompt != PromptMessage {
		t.Errorf("Expected prompt message, got %q", result.Prompt)
	}
	if len(result.Rows) != 0 || len(result.Groups) != 0 {
		t.Error("Expected no rows or groups in the prompt shape")
	}
}

func TestEngine_Slice_GroupsByCity(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{Cities: []string{"MUMBAI"}})

	if result.Shape != ShapeByCity {
		t.Fatalf("Expected by-city shape, got %v", result.Shape)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 city group, got %d", len(result.Groups))
	}

	group := result.Groups[0]
	if group.Key != "MUMBAI" {
		t.Errorf("Expected group key MUMBAI, got %q", group.Key)
	}
	if group.UnitsSold != 50 {
		t.Errorf("Expected 50 units re-summed, got %d", group.UnitsSold)
	}
	if group.WarehouseQty != 50 {
		t.Errorf("Expected warehouse 50, got %d", group.WarehouseQty)
	}
	if group.OpenPoQuantity != 5 {
		t.Errorf("Expected open PO 5, got %d", group.OpenPoQuantity)
	}
	if !group.DailySales.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected daily sales 10, got %s", group.DailySales)
	}
	// Recomputed from the sums: 50/(50/5) = 5. The rows' own DOIs
	// (12 and 3) play no part.
	if !group.DOI.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected group DOI 5, got %s", group.DOI)
	}
}

func TestEngine_Slice_WildcardCityGroupsAll(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{Cities: []string{entities.SelectAll}})

	if result.Shape != ShapeByCity {
		t.Fatalf("Expected by-city shape, got %v", result.Shape)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("Expected 2 city groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Key != "DELHI" || result.Groups[1].Key != "MUMBAI" {
		t.Errorf("Expected groups sorted DELHI then MUMBAI, got %v", result.Groups)
	}
	// DELHI: 5 units over 5 days, 150 warehouse total.
	if !result.Groups[0].DOI.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected DELHI group DOI 150, got %s", result.Groups[0].DOI)
	}
}

func TestEngine_Slice_GroupsByProduct(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{Products: []string{"Widget"}})

	if result.Shape != ShapeByProduct {
		t.Fatalf("Expected by-product shape, got %v", result.Shape)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 product group, got %d", len(result.Groups))
	}

	group := result.Groups[0]
	if group.Key != "Widget" {
		t.Errorf("Expected group key Widget, got %q", group.Key)
	}
	if group.UnitsSold != 15 {
		t.Errorf("Expected 15 units re-summed, got %d", group.UnitsSold)
	}
	// 125/(15/5) rounds to 41.67, then floors to 41.
	if !group.DOI.Equal(decimal.NewFromInt(41)) {
		t.Errorf("Expected group DOI 41, got %s", group.DOI)
	}
}

func TestEngine_Slice_ZeroSalesGroupGuardsDivision(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{Products: []string{"Gizmo"}})

	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(result.Groups))
	}
	if !result.Groups[0].DOI.Equal(decimal.Zero) {
		t.Errorf("Expected DOI exactly 0 for a group without sales, got %s", result.Groups[0].DOI)
	}
}

func TestEngine_Slice_DetailWhenBothSelected(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{
		Cities:   []string{"MUMBAI"},
		Products: []string{"Widget"},
	})

	if result.Shape != ShapeDetail {
		t.Fatalf("Expected detail shape, got %v", result.Shape)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected 1 detail row, got %d", len(result.Rows))
	}
	// Detail reuses the table's DOI instead of recomputing.
	if !result.Rows[0].DOI.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Expected table DOI 12, got %s", result.Rows[0].DOI)
	}
}

func TestEngine_Slice_WildcardBothKeepsTableOrder(t *testing.T) {
	engine := New(finalTable(), 5)

	result := engine.Slice(entities.Selection{
		Cities:   []string{entities.SelectAll},
		Products: []string{entities.SelectAll},
	})

	if result.Shape != ShapeDetail {
		t.Fatalf("Expected detail shape, got %v", result.Shape)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("Expected all 4 rows, got %d", len(result.Rows))
	}
	for i, want := range finalTable() {
		if result.Rows[i].Key() != want.Key() {
			t.Errorf("Row %d: expected %v, got %v", i, want.Key(), result.Rows[i].Key())
		}
	}
}

func TestEngine_AvailableOptions_MutualNarrowing(t *testing.T) {
	engine := New(finalTable(), 5)

	got := engine.AvailableCities(entities.Selection{Products: []string{"Gadget"}})
	if len(got) != 1 || got[0] != "MUMBAI" {
		t.Errorf("Expected cities narrowed to [MUMBAI], got %v", got)
	}

	products := engine.AvailableProducts(entities.Selection{Cities: []string{"DELHI"}})
	if len(products) != 2 || products[0] != "Gizmo" || products[1] != "Widget" {
		t.Errorf("Expected products narrowed to [Gizmo Widget], got %v", products)
	}
}

func TestEngine_AvailableOptions_WildcardDoesNotNarrow(t *testing.T) {
	engine := New(finalTable(), 5)

	got := engine.AvailableCities(entities.Selection{Products: []string{entities.SelectAll}})
	if len(got) != 2 {
		t.Errorf("Expected all cities under the wildcard, got %v", got)
	}

	got = engine.AvailableCities(entities.Selection{})
	if len(got) != 2 {
		t.Errorf("Expected all cities under an empty selection, got %v", got)
	}
}

func TestEngine_CitiesAndProducts_SortedDistinct(t *testing.T) {
	engine := New(finalTable(), 5)

	cities := engine.Cities()
	if len(cities) != 2 || cities[0] != "DELHI" || cities[1] != "MUMBAI" {
		t.Errorf("Expected [DELHI MUMBAI], got %v", cities)
	}

	products := engine.Products()
	if len(products) != 3 || products[0] != "Gadget" || products[1] != "Gizmo" || products[2] != "Widget" {
		t.Errorf("Expected [Gadget Gizmo Widget], got %v", products)
	}
}
