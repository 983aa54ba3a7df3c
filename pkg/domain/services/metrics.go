package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/entities"
)

// DailySalesRate returns unitsSold spread over the window
func DailySalesRate(unitsSold int64, windowDays int) decimal.Decimal {
	return decimal.NewFromInt(unitsSold).Div(decimal.NewFromInt(int64(windowDays)))
}

// ComputeDOI derives days-of-inventory from a warehouse quantity and a
// daily sales rate, rounded to 2 decimals. A rate of zero (or less)
// yields exactly zero; the division is never allowed to produce an
// infinity or NaN.
func ComputeDOI(warehouseQty int64, dailySales decimal.Decimal) decimal.Decimal {
	if !dailySales.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(warehouseQty).Div(dailySales).Round(2)
}

// ApplyMetrics fills each row's DOI from its reconciled measures. The
// stored value is the 2-decimal rounded ratio; the display floor is
// applied separately when the table is finalized.
func ApplyMetrics(rows []entities.ReconciledRow, windowDays int) {
	for i := range rows {
		rate := DailySalesRate(rows[i].UnitsSold, windowDays)
		rows[i].DOI = ComputeDOI(rows[i].WarehouseQty, rate)
	}
}

// FinalizeTable freezes the final table: DOI is floored after the
// 2-decimal rounding (flooring the raw ratio directly can land on a
// different integer), then rows are sorted by city ascending and DOI
// descending. The sort is stable.
func FinalizeTable(rows []entities.ReconciledRow) {
	for i := range rows {
		rows[i].DOI = rows[i].DOI.Floor()
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].City != rows[j].City {
			return rows[i].City < rows[j].City
		}
		return rows[i].DOI.GreaterThan(rows[j].DOI)
	})
}
