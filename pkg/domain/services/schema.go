package services

import (
	"fmt"
)

// Canonical column names shared by both sources once the inventory
// schema is normalized.
const (
	ColOrderedDate    = "ORDERED_DATE"
	ColCity           = "CITY"
	ColItemCode       = "ITEM_CODE"
	ColProductName    = "PRODUCT_NAME"
	ColUnitsSold      = "UNITS_SOLD"
	ColOpenPoQuantity = "OPEN_PO_QUANTITY"
	ColWarehouseQty   = "WAREHOUSE_QTY"
)

// InventoryColumnMap maps the inventory source's column names onto the
// canonical schema. The normalization is a pure renaming; values pass
// through untouched.
var InventoryColumnMap = map[string]string{
	"City":                  ColCity,
	"SkuCode":               ColItemCode,
	"SkuDescription":        ColProductName,
	"OpenPoQuantity":        ColOpenPoQuantity,
	"WarehouseQtyAvailable": ColWarehouseQty,
}

// RequiredSalesColumns returns the column names a sales input must
// carry, in their expected order
func RequiredSalesColumns() []string {
	return []string{ColOrderedDate, ColCity, ColItemCode, ColUnitsSold}
}

// RequiredInventoryColumns returns the source-side column names an
// inventory input must carry
func RequiredInventoryColumns() []string {
	return []string{"City", "SkuCode", "SkuDescription", "OpenPoQuantity", "WarehouseQtyAvailable"}
}

// MissingColumnError reports a required column absent from an input
// table. It aborts the run and is presented to the user as an input
// problem rather than an internal failure.
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s input is missing required column %q", e.Source, e.Column)
}

// ValidateColumns checks that every required column is present in the
// header. Matching is exact; extra columns are ignored.
func ValidateColumns(source string, header []string, required []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	for _, col := range required {
		if !present[col] {
			return &MissingColumnError{Source: source, Column: col}
		}
	}
	return nil
}
