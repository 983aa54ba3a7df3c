package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/skhandal/doi/pkg/domain/entities"
)

// Result contains the complete output of a reconciliation run
type Result struct {
	RunID          uuid.UUID
	WindowDays     int
	WindowDates    []time.Time
	Rows           []entities.ReconciledRow
	SalesRecords   int // raw sales lines loaded
	InventoryLines int // raw inventory lines loaded
	UnmatchedItems int // sales lines whose item code had no inventory match
	ExcludedRows   int // rows removed by the name denylist
}

// Row is the presentation shape of one final-table line, tagged for
// both the JSON API and CSV export
type Row struct {
	City           string  `json:"city" csv:"CITY"`
	ItemCode       string  `json:"item_code" csv:"ITEM_CODE"`
	ProductName    string  `json:"product_name" csv:"PRODUCT_NAME"`
	UnitsSold      int64   `json:"units_sold" csv:"UNITS_SOLD"`
	WarehouseQty   int64   `json:"warehouse_qty" csv:"WAREHOUSE_QTY"`
	OpenPoQuantity int64   `json:"open_po_quantity" csv:"OPEN_PO_QUANTITY"`
	DOI            float64 `json:"doi" csv:"DOI"`
}

// NewRow projects a reconciled row into its presentation shape
func NewRow(row entities.ReconciledRow) Row {
	return Row{
		City:           string(row.City),
		ItemCode:       string(row.ItemCode),
		ProductName:    string(row.ProductName),
		UnitsSold:      row.UnitsSold,
		WarehouseQty:   row.WarehouseQty,
		OpenPoQuantity: row.OpenPoQuantity,
		DOI:            row.DOI.InexactFloat64(),
	}
}

// RowsFrom projects a final table into presentation rows
func RowsFrom(rows []entities.ReconciledRow) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = NewRow(row)
	}
	return out
}

// GroupRow is the presentation shape of one grouped-view line
type GroupRow struct {
	Key            string  `json:"key"`
	UnitsSold      int64   `json:"units_sold"`
	WarehouseQty   int64   `json:"warehouse_qty"`
	OpenPoQuantity int64   `json:"open_po_quantity"`
	DailySales     float64 `json:"daily_sales"`
	DOI            float64 `json:"doi"`
}

// GroupRowsFrom projects grouped rows into their presentation shape
func GroupRowsFrom(groups []entities.GroupedRow) []GroupRow {
	out := make([]GroupRow, len(groups))
	for i, g := range groups {
		out[i] = GroupRow{
			Key:            g.Key,
			UnitsSold:      g.UnitsSold,
			WarehouseQty:   g.WarehouseQty,
			OpenPoQuantity: g.OpenPoQuantity,
			DailySales:     g.DailySales.InexactFloat64(),
			DOI:            g.DOI.InexactFloat64(),
		}
	}
	return out
}

// Table is a format-agnostic rendering of either output shape: ordered
// headers plus typed cell values, ready for spreadsheet or delimited
// writers
type Table struct {
	Headers []string
	Records [][]any
}

// FinalTableHeaders returns the canonical final-table column order
func FinalTableHeaders() []string {
	return []string{"CITY", "ITEM_CODE", "PRODUCT_NAME", "UNITS_SOLD", "WAREHOUSE_QTY", "OPEN_PO_QUANTITY", "DOI"}
}

// FinalTable renders presentation rows into a Table
func FinalTable(rows []Row) Table {
	records := make([][]any, len(rows))
	for i, r := range rows {
		records[i] = []any{r.City, r.ItemCode, r.ProductName, r.UnitsSold, r.WarehouseQty, r.OpenPoQuantity, r.DOI}
	}
	return Table{Headers: FinalTableHeaders(), Records: records}
}

// GroupedTable renders grouped presentation rows into a Table. The key
// column is named after the grouped dimension (CITY or PRODUCT_NAME).
func GroupedTable(keyHeader string, groups []GroupRow) Table {
	records := make([][]any, len(groups))
	for i, g := range groups {
		records[i] = []any{g.Key, g.UnitsSold, g.WarehouseQty, g.OpenPoQuantity, g.DailySales, g.DOI}
	}
	return Table{
		Headers: []string{keyHeader, "UNITS_SOLD", "WAREHOUSE_QTY", "OPEN_PO_QUANTITY", "DAILY_SALES", "DOI"},
		Records: records,
	}
}

// FormatCell renders one table cell as text for delimited output
func FormatCell(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
