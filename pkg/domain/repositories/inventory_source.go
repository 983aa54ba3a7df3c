package repositories

import "github.com/skhandal/doi/pkg/domain/entities"

// InventorySource provides access to raw warehouse inventory lines
type InventorySource interface {
	GetInventoryRecords() ([]entities.InventoryRecord, error)
}
