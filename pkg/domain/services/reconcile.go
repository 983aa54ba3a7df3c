package services

import (
	"github.com/skhandal/doi/pkg/domain/entities"
)

// Reconcile left-joins aggregated inventory against aggregated sales
// on (city, item, product). Every inventory row appears exactly once;
// sales totals without a matching inventory key are discarded, their
// volume lost with them. Inventory rows with no sales match get zero
// units sold. Quantity measures are truncated toward zero into
// count-like integers.
func Reconcile(inventory []entities.InventoryRecord, sales []entities.SalesAggregate) []entities.ReconciledRow {
	unitsByKey := make(map[entities.RowKey]int64, len(sales))
	for _, agg := range sales {
		unitsByKey[agg.Key()] = agg.UnitsSold
	}

	rows := make([]entities.ReconciledRow, 0, len(inventory))
	for _, inv := range inventory {
		rows = append(rows, entities.ReconciledRow{
			City:           inv.City,
			ItemCode:       inv.ItemCode,
			ProductName:    inv.ProductName,
			UnitsSold:      unitsByKey[inv.Key()],
			WarehouseQty:   inv.WarehouseQty.IntPart(),
			OpenPoQuantity: inv.OpenPoQuantity.IntPart(),
		})
	}
	return rows
}
