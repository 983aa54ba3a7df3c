package memory

import (
	"sync"

	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/repositories"
)

// SalesRepository provides in-memory sales storage
type SalesRepository struct {
	mu      sync.RWMutex
	records []entities.SalesRecord
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository() *SalesRepository {
	return &SalesRepository{}
}

// Verify interface compliance
var _ repositories.SalesSource = (*SalesRepository)(nil)

// LoadSalesRecords replaces the stored records
func (r *SalesRepository) LoadSalesRecords(records []entities.SalesRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make([]entities.SalesRecord, len(records))
	copy(r.records, records)
}

// AddSalesRecord appends a single record
func (r *SalesRepository) AddSalesRecord(record entities.SalesRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

// GetSalesRecords returns a copy of the stored records
func (r *SalesRepository) GetSalesRecords() ([]entities.SalesRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.SalesRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
