package services

import (
	"strings"

	"github.com/skhandal/doi/pkg/domain/entities"
)

// ExcludedNameTerms lists the denylisted substrings. A product whose
// name contains any of them, case-insensitively, is removed from the
// final table.
var ExcludedNameTerms = []string{"gift", "celebration", "sample"}

// ExcludedProduct reports whether a product name matches the denylist.
// An empty name never matches.
func ExcludedProduct(name entities.ProductName) bool {
	lowered := strings.ToLower(string(name))
	for _, term := range ExcludedNameTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// ApplyExclusions removes denylisted rows, returning the survivors and
// the number removed. Applying it to its own output removes nothing.
func ApplyExclusions(rows []entities.ReconciledRow) ([]entities.ReconciledRow, int) {
	kept := make([]entities.ReconciledRow, 0, len(rows))
	for _, row := range rows {
		if ExcludedProduct(row.ProductName) {
			continue
		}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}
