package entities

import (
	"slices"
)

// SelectAll is the wildcard token a selection may contain to stand for
// every value of its dimension
const SelectAll = "All"

// Selection holds the slicer's raw multi-select state for both
// dimensions. It is immutable from the slicer's point of view: every
// derivation works on a snapshot, never by mutating it in place.
type Selection struct {
	Cities   []string
	Products []string
}

// CitiesSelected reports whether the raw city selection is non-empty.
// A selection containing only the wildcard still counts as selected;
// raw non-emptiness is what drives the output shape.
func (s Selection) CitiesSelected() bool {
	return len(s.Cities) > 0
}

// ProductsSelected reports whether the raw product selection is
// non-empty
func (s Selection) ProductsSelected() bool {
	return len(s.Products) > 0
}

// CitiesNarrow reports whether the city selection narrows its
// dimension, i.e. it is non-empty and does not contain the wildcard
func (s Selection) CitiesNarrow() bool {
	return len(s.Cities) > 0 && !slices.Contains(s.Cities, SelectAll)
}

// ProductsNarrow reports whether the product selection narrows its
// dimension
func (s Selection) ProductsNarrow() bool {
	return len(s.Products) > 0 && !slices.Contains(s.Products, SelectAll)
}

// ResolveCities returns the city values the raw selection stands for:
// the universe when the selection is empty or contains the wildcard,
// the raw values otherwise.
func (s Selection) ResolveCities(universe []string) []string {
	if !s.CitiesNarrow() {
		return universe
	}
	return s.Cities
}

// ResolveProducts returns the product values the raw selection stands
// for
func (s Selection) ResolveProducts(universe []string) []string {
	if !s.ProductsNarrow() {
		return universe
	}
	return s.Products
}
