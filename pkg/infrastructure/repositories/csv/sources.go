package csv

import (
	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/repositories"
)

// SalesFile binds a CSV path to the sales source interface, reading
// the file on every call so a re-run picks up a replaced file.
type SalesFile struct {
	loader *Loader
	path   string
}

// NewSalesFile creates a sales source backed by a CSV file
func NewSalesFile(path string) *SalesFile {
	return &SalesFile{loader: NewLoader(), path: path}
}

// Verify interface compliance
var _ repositories.SalesSource = (*SalesFile)(nil)

// GetSalesRecords loads the file's sales records
func (f *SalesFile) GetSalesRecords() ([]entities.SalesRecord, error) {
	return f.loader.LoadSales(f.path)
}

// InventoryFile binds a CSV path to the inventory source interface
type InventoryFile struct {
	loader *Loader
	path   string
}

// NewInventoryFile creates an inventory source backed by a CSV file
func NewInventoryFile(path string) *InventoryFile {
	return &InventoryFile{loader: NewLoader(), path: path}
}

// Verify interface compliance
var _ repositories.InventorySource = (*InventoryFile)(nil)

// GetInventoryRecords loads the file's inventory records
func (f *InventoryFile) GetInventoryRecords() ([]entities.InventoryRecord, error) {
	return f.loader.LoadInventory(f.path)
}
