package tui

import (
	"fmt"
	"strings"

	"github.com/skhandal/doi/pkg/application/dto"
)

const maxVisibleRows = 20

// renderDetailTable renders reconciled rows as a fixed-width table
func renderDetailTable(rows []dto.Row) string {
	var b strings.Builder

	header := fmt.Sprintf("%-14s %-12s %-34s %12s %14s %18s %10s",
		"CITY", "ITEM_CODE", "PRODUCT_NAME", "UNITS_SOLD", "WAREHOUSE_QTY", "OPEN_PO_QUANTITY", "DOI")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	visible := rows
	if len(visible) > maxVisibleRows {
		visible = visible[:maxVisibleRows]
	}

	for _, row := range visible {
		fmt.Fprintf(&b, "%-14s %-12s %-34s %12s %14s %18s %10s\n",
			truncate(row.City, 14),
			truncate(row.ItemCode, 12),
			truncate(row.ProductName, 34),
			dto.FormatCell(row.UnitsSold),
			dto.FormatCell(row.WarehouseQty),
			dto.FormatCell(row.OpenPoQuantity),
			dto.FormatCell(row.DOI),
		)
	}

	if hidden := len(rows) - len(visible); hidden > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("... and %d more rows", hidden)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderGroupedTable renders one aggregate row per group key
func renderGroupedTable(keyHeader string, groups []dto.GroupRow) string {
	var b strings.Builder

	header := fmt.Sprintf("%-24s %12s %14s %18s %12s %10s",
		keyHeader, "UNITS_SOLD", "WAREHOUSE_QTY", "OPEN_PO_QUANTITY", "DAILY_SALES", "DOI")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	visible := groups
	if len(visible) > maxVisibleRows {
		visible = visible[:maxVisibleRows]
	}

	for _, group := range visible {
		fmt.Fprintf(&b, "%-24s %12s %14s %18s %12s %10s\n",
			truncate(group.Key, 24),
			dto.FormatCell(group.UnitsSold),
			dto.FormatCell(group.WarehouseQty),
			dto.FormatCell(group.OpenPoQuantity),
			dto.FormatCell(group.DailySales),
			dto.FormatCell(group.DOI),
		)
	}

	if hidden := len(groups) - len(visible); hidden > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("... and %d more rows", hidden)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
