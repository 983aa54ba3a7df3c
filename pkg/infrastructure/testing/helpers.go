package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/memory"
)

// Day returns midnight UTC on a day of June 2025, the month the
// canned scenarios draw their order dates from.
func Day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

// BuildTwoCityScenario returns loaded repositories for the standard
// five-day scenario. With the window clamped to its five distinct
// dates, MUMBAI/SKU1 sells 10 a day against 100 in stock (DOI 10) and
// DELHI/SKU2 sells 4 a day against 120 (DOI 30). DELHI/SKU9 "Gift Box"
// holds stock but lands on the name denylist. Sales cities arrive in
// mixed case to exercise canonicalization.
func BuildTwoCityScenario() (*memory.SalesRepository, *memory.InventoryRepository) {
	var sales []entities.SalesRecord
	for d := 1; d <= 5; d++ {
		sales = append(sales,
			entities.SalesRecord{OrderedDate: Day(d), City: "Mumbai", ItemCode: "SKU1", UnitsSold: 10},
			entities.SalesRecord{OrderedDate: Day(d), City: "Delhi", ItemCode: "SKU2", UnitsSold: 4},
		)
	}

	salesRepo := memory.NewSalesRepository()
	salesRepo.LoadSalesRecords(sales)

	inventoryRepo := memory.NewInventoryRepository()
	inventoryRepo.LoadInventoryRecords([]entities.InventoryRecord{
		{
			City:           "Mumbai",
			ItemCode:       "SKU1",
			ProductName:    "Widget",
			WarehouseQty:   decimal.NewFromInt(100),
			OpenPoQuantity: decimal.NewFromInt(10),
		},
		{
			City:           "Delhi",
			ItemCode:       "SKU2",
			ProductName:    "Gadget",
			WarehouseQty:   decimal.NewFromInt(120),
			OpenPoQuantity: decimal.NewFromInt(0),
		},
		{
			City:           "Delhi",
			ItemCode:       "SKU9",
			ProductName:    "Gift Box",
			WarehouseQty:   decimal.NewFromInt(50),
			OpenPoQuantity: decimal.NewFromInt(0),
		},
	})

	return salesRepo, inventoryRepo
}
