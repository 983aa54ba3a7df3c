package output

import (
	"fmt"
	"time"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/infrastructure/export"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputDir  string
	Verbose    bool
	Elapsed    time.Duration
	InputFiles map[string]string
}

// Generate creates output in the specified format
func Generate(result *dto.Result, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	case "csv", "json", "xlsx", "sqlite":
		format, err := export.ParseFormat(config.Format)
		if err != nil {
			return err
		}
		path, err := export.Write(result, format, config.OutputDir)
		if err != nil {
			return err
		}
		if config.Verbose {
			fmt.Printf("💾 Results saved to: %s\n", path)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints a human-readable summary and the final table
func generateTextOutput(result *dto.Result, config Config) error {
	fmt.Printf("📊 DOI Results Summary\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Window: last %d distinct order dates\n", result.WindowDays)
	if len(result.WindowDates) > 0 {
		fmt.Printf("Dates: %s to %s\n",
			result.WindowDates[0].Format("2006-01-02"),
			result.WindowDates[len(result.WindowDates)-1].Format("2006-01-02"))
	}
	fmt.Printf("Sales Lines: %d (unmatched: %d)\n", result.SalesRecords, result.UnmatchedItems)
	fmt.Printf("Inventory Lines: %d\n", result.InventoryLines)
	fmt.Printf("Final Rows: %d (excluded: %d)\n", len(result.Rows), result.ExcludedRows)
	if config.Elapsed > 0 {
		fmt.Printf("Run Time: %v\n", config.Elapsed)
	}
	fmt.Println()

	PrintFinalTable(dto.RowsFrom(result.Rows))
	return nil
}

// PrintFinalTable renders reconciled rows as a fixed-width table
func PrintFinalTable(rows []dto.Row) {
	fmt.Printf("%-12s %-12s %-30s %-12s %-15s %-15s %-8s\n",
		"City", "Item Code", "Product", "Units Sold", "Warehouse Qty", "Open PO Qty", "DOI")
	fmt.Printf("%-12s %-12s %-30s %-12s %-15s %-15s %-8s\n",
		"------------", "------------", "------------------------------", "------------", "---------------", "---------------", "--------")

	for _, row := range rows {
		fmt.Printf("%-12s %-12s %-30s %-12d %-15d %-15d %-8s\n",
			row.City,
			row.ItemCode,
			row.ProductName,
			row.UnitsSold,
			row.WarehouseQty,
			row.OpenPoQuantity,
			dto.FormatCell(row.DOI))
	}
	fmt.Println()
}

// PrintGroupedTable renders grouped rows as a fixed-width table
func PrintGroupedTable(keyHeader string, groups []dto.GroupRow) {
	fmt.Printf("%-30s %-12s %-15s %-15s %-12s %-8s\n",
		keyHeader, "Units Sold", "Warehouse Qty", "Open PO Qty", "Daily Sales", "DOI")
	fmt.Printf("%-30s %-12s %-15s %-15s %-12s %-8s\n",
		"------------------------------", "------------", "---------------", "---------------", "------------", "--------")

	for _, group := range groups {
		fmt.Printf("%-30s %-12d %-15d %-15d %-12s %-8s\n",
			group.Key,
			group.UnitsSold,
			group.WarehouseQty,
			group.OpenPoQuantity,
			dto.FormatCell(group.DailySales),
			dto.FormatCell(group.DOI))
	}
	fmt.Println()
}
