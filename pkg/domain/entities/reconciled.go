package entities

import (
	"github.com/shopspring/decimal"
)

// RowKey is the canonical identity of a product at a location, the
// join key between aggregated inventory and aggregated sales
type RowKey struct {
	City        City
	ItemCode    ItemCode
	ProductName ProductName
}

// ReconciledRow is one line of the final table: an aggregated
// inventory position joined with its windowed sales total and the
// derived DOI metric
type ReconciledRow struct {
	City           City
	ItemCode       ItemCode
	ProductName    ProductName
	UnitsSold      int64
	WarehouseQty   int64
	OpenPoQuantity int64
	DOI            decimal.Decimal
}

// Key returns the reconciliation identity of the row
func (r ReconciledRow) Key() RowKey {
	return RowKey{City: r.City, ItemCode: r.ItemCode, ProductName: r.ProductName}
}

// GroupedRow is a re-aggregation of reconciled rows to a single
// dimension (city or product), with metrics recomputed from the
// re-summed measures
type GroupedRow struct {
	Key            string
	UnitsSold      int64
	WarehouseQty   int64
	OpenPoQuantity int64
	DailySales     decimal.Decimal
	DOI            decimal.Decimal
}
