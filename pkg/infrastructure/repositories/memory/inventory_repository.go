package memory

import (
	"sync"

	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory storage
type InventoryRepository struct {
	mu      sync.RWMutex
	records []entities.InventoryRecord
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Verify interface compliance
var _ repositories.InventorySource = (*InventoryRepository)(nil)

// LoadInventoryRecords replaces the stored records
func (r *InventoryRepository) LoadInventoryRecords(records []entities.InventoryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make([]entities.InventoryRecord, len(records))
	copy(r.records, records)
}

// AddInventoryRecord appends a single record
func (r *InventoryRepository) AddInventoryRecord(record entities.InventoryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

// GetInventoryRecords returns a copy of the stored records
func (r *InventoryRepository) GetInventoryRecords() ([]entities.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.InventoryRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
