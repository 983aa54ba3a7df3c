package entities

import (
	"time"
)

// City identifies the fulfillment city for a row
type City string

// ItemCode represents a unique stocked item identifier (SKU code)
type ItemCode string

// ProductName is the human-readable description of an item
type ProductName string

// SalesRecord represents one sales transaction line
type SalesRecord struct {
	OrderedDate time.Time
	City        City
	ItemCode    ItemCode
	UnitsSold   int64

	// ProductName is back-filled from aggregated inventory keyed by
	// item code. ProductKnown is false when the code has no inventory
	// match; such rows are dropped when sales are aggregated.
	ProductName  ProductName
	ProductKnown bool
}

// SalesAggregate represents windowed sales totals at
// (city, product, item) granularity
type SalesAggregate struct {
	City        City
	ItemCode    ItemCode
	ProductName ProductName
	UnitsSold   int64
}

// Key returns the reconciliation identity of the aggregate
func (a SalesAggregate) Key() RowKey {
	return RowKey{City: a.City, ItemCode: a.ItemCode, ProductName: a.ProductName}
}
