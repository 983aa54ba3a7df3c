package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/entities"
)

func TestComputeDOI(t *testing.T) {
	testCases := []struct {
		name         string
		warehouseQty int64
		unitsSold    int64
		windowDays   int
		expected     string
	}{
		{"steady seller", 100, 50, 5, "10"},
		{"zero sales guard", 100, 0, 5, "0"},
		{"rounded to two decimals", 100, 21, 7, "33.33"},
		{"zero warehouse", 0, 50, 5, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := DailySalesRate(tc.unitsSold, tc.windowDays)
			doi := ComputeDOI(tc.warehouseQty, rate)
			if !doi.Equal(decimal.RequireFromString(tc.expected)) {
				t.Errorf("Expected DOI %s, got %s", tc.expected, doi)
			}
		})
	}
}

func TestComputeDOI_ZeroRateYieldsExactZero(t *testing.T) {
	doi := ComputeDOI(1000, decimal.Zero)
	if !doi.Equal(decimal.Zero) {
		t.Errorf("Expected exactly 0, got %s", doi)
	}
}

func TestApplyMetrics_MumbaiScenario(t *testing.T) {
	rows := []entities.ReconciledRow{
		{City: "MUMBAI", ItemCode: "SKU1", ProductName: "Widget", UnitsSold: 50, WarehouseQty: 100, OpenPoQuantity: 10},
	}

	ApplyMetrics(rows, 5)

	if !rows[0].DOI.Equal(decimal.RequireFromString("10")) {
		t.Errorf("Expected DOI 10, got %s", rows[0].DOI)
	}
}

func TestFinalizeTable_FloorsAfterRounding(t *testing.T) {
	// 2499 / 250 = 9.996: rounding to 2 decimals gives 10.00, so the
	// floor lands on 10. Flooring the raw ratio would give 9.
	rows := []entities.ReconciledRow{
		{City: "MUMBAI", ItemCode: "SKU1", ProductName: "Widget", UnitsSold: 250, WarehouseQty: 2499},
	}

	ApplyMetrics(rows, 1)
	FinalizeTable(rows)

	if !rows[0].DOI.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected round-then-floor to land on 10, got %s", rows[0].DOI)
	}
}

func TestFinalizeTable_SortsCityAscendingDOIDescending(t *testing.T) {
	rows := []entities.ReconciledRow{
		{City: "MUMBAI", ItemCode: "SKU1", ProductName: "Widget", UnitsSold: 10, WarehouseQty: 20},
		{City: "DELHI", ItemCode: "SKU2", ProductName: "Gadget", UnitsSold: 10, WarehouseQty: 10},
		{City: "MUMBAI", ItemCode: "SKU3", ProductName: "Doodad", UnitsSold: 10, WarehouseQty: 90},
		{City: "DELHI", ItemCode: "SKU4", ProductName: "Trinket", UnitsSold: 10, WarehouseQty: 50},
	}

	ApplyMetrics(rows, 1)
	FinalizeTable(rows)

	expected := []entities.ItemCode{"SKU4", "SKU2", "SKU3", "SKU1"}
	for i, want := range expected {
		if rows[i].ItemCode != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, rows[i].ItemCode)
		}
	}
}
