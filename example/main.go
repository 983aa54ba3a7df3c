package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/pipeline"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	salesRepo := memory.NewSalesRepository()
	inventoryRepo := memory.NewInventoryRepository()

	// Set up a small snack catalog across two cities
	setupSnackScenario(salesRepo, inventoryRepo)

	// Create the reconciliation pipeline
	service := pipeline.New(pipeline.Config{WindowDays: 7})

	fmt.Println("🚀 Computing days of inventory...")
	fmt.Println()

	result, err := service.Run(ctx, salesRepo, inventoryRepo)
	if err != nil {
		fmt.Printf("❌ Reconciliation failed: %v\n", err)
		return
	}

	// Display results
	fmt.Println("📊 Run Summary:")
	fmt.Printf("  Sales Window: last %d order dates\n", result.WindowDays)
	fmt.Printf("  Sales Lines: %d (%d unmatched)\n", result.SalesRecords, result.UnmatchedItems)
	fmt.Printf("  Inventory Lines: %d\n", result.InventoryLines)
	fmt.Printf("  Final Rows: %d (%d excluded)\n", len(result.Rows), result.ExcludedRows)
	fmt.Println()

	// Show the final table
	fmt.Println("📈 Final Table:")
	for _, row := range dto.RowsFrom(result.Rows) {
		fmt.Printf("  %-8s %-7s %-22s units=%-4d wh=%-4d po=%-3d doi=%s\n",
			row.City, row.ItemCode, row.ProductName,
			row.UnitsSold, row.WarehouseQty, row.OpenPoQuantity,
			dto.FormatCell(row.DOI))
	}
	fmt.Println()

	// Slice the same table by city
	engine := slicer.New(result.Rows, result.WindowDays)
	view := engine.Slice(entities.Selection{Cities: []string{entities.SelectAll}})

	fmt.Println("🏙️ Grouped By City:")
	for _, group := range dto.GroupRowsFrom(view.Groups) {
		fmt.Printf("  %-8s units=%-4d wh=%-4d daily=%-6s doi=%s\n",
			group.Key, group.UnitsSold, group.WarehouseQty,
			dto.FormatCell(group.DailySales), dto.FormatCell(group.DOI))
	}
	fmt.Println()

	fmt.Println("✅ DOI analysis complete!")
}

func setupSnackScenario(salesRepo *memory.SalesRepository, inventoryRepo *memory.InventoryRepository) {
	// Seven days of orders across two cities. Sales city casing is
	// mixed on purpose; reconciliation canonicalizes it to upper case.
	baseDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for d := 0; d < 7; d++ {
		orderDate := baseDate.AddDate(0, 0, d)

		salesRepo.AddSalesRecord(entities.SalesRecord{
			OrderedDate: orderDate,
			City:        "mumbai",
			ItemCode:    "SNK001",
			UnitsSold:   12,
		})
		salesRepo.AddSalesRecord(entities.SalesRecord{
			OrderedDate: orderDate,
			City:        "Mumbai",
			ItemCode:    "SNK002",
			UnitsSold:   5,
		})
		salesRepo.AddSalesRecord(entities.SalesRecord{
			OrderedDate: orderDate,
			City:        "Delhi",
			ItemCode:    "SNK001",
			UnitsSold:   8,
		})
	}

	// Warehouse stock for both cities
	inventoryRepo.AddInventoryRecord(entities.InventoryRecord{
		City:           "Mumbai",
		ItemCode:       "SNK001",
		ProductName:    "Masala Peanuts 200g",
		WarehouseQty:   decimal.NewFromInt(420),
		OpenPoQuantity: decimal.NewFromInt(60),
	})
	inventoryRepo.AddInventoryRecord(entities.InventoryRecord{
		City:           "Mumbai",
		ItemCode:       "SNK002",
		ProductName:    "Banana Chips 150g",
		WarehouseQty:   decimal.NewFromInt(105),
		OpenPoQuantity: decimal.Zero,
	})
	inventoryRepo.AddInventoryRecord(entities.InventoryRecord{
		City:           "Delhi",
		ItemCode:       "SNK001",
		ProductName:    "Masala Peanuts 200g",
		WarehouseQty:   decimal.NewFromInt(168),
		OpenPoQuantity: decimal.NewFromInt(24),
	})

	// A giveaway line the exclusion denylist removes from the table
	inventoryRepo.AddInventoryRecord(entities.InventoryRecord{
		City:           "Delhi",
		ItemCode:       "SNK999",
		ProductName:    "Festive Gift Hamper",
		WarehouseQty:   decimal.NewFromInt(35),
		OpenPoQuantity: decimal.Zero,
	})
}
