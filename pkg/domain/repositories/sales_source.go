package repositories

import "github.com/skhandal/doi/pkg/domain/entities"

// SalesSource provides access to raw sales transactions
type SalesSource interface {
	GetSalesRecords() ([]entities.SalesRecord, error)
}
