package entities

import (
	"github.com/shopspring/decimal"
)

// InventoryRecord represents one warehouse inventory line. Quantities
// stay decimal until reconciliation so fractional input values sum
// exactly.
type InventoryRecord struct {
	City           City
	ItemCode       ItemCode
	ProductName    ProductName
	OpenPoQuantity decimal.Decimal
	WarehouseQty   decimal.Decimal
}

// Key returns the reconciliation identity of the record
func (r InventoryRecord) Key() RowKey {
	return RowKey{City: r.City, ItemCode: r.ItemCode, ProductName: r.ProductName}
}
