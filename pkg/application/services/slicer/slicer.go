package slicer

import (
	"sort"

	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/services"
)

// Shape identifies which output form a selection produces
type Shape int

const (
	// ShapePrompt means neither dimension is selected yet
	ShapePrompt Shape = iota
	// ShapeByCity groups the table by city
	ShapeByCity
	// ShapeByProduct groups the table by product
	ShapeByProduct
	// ShapeDetail returns matching rows without re-grouping
	ShapeDetail
)

// String returns a human-readable shape name
func (s Shape) String() string {
	switch s {
	case ShapePrompt:
		return "prompt"
	case ShapeByCity:
		return "by city"
	case ShapeByProduct:
		return "by product"
	case ShapeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// GroupKeyColumn returns the column name the grouped key represents,
// or empty for non-grouped shapes.
func (s Shape) GroupKeyColumn() string {
	switch s {
	case ShapeByCity:
		return "CITY"
	case ShapeByProduct:
		return "PRODUCT_NAME"
	default:
		return ""
	}
}

// PromptMessage is shown when neither filter dimension is selected.
const PromptMessage = "Select cities and/or products to generate a custom DOI view."

// Result is the slicer's answer for one selection. Exactly one of
// Rows, Groups or Prompt is meaningful, according to Shape.
type Result struct {
	Shape  Shape
	Rows   []entities.ReconciledRow
	Groups []entities.GroupedRow
	Prompt string
}

// Engine answers slicing queries against a frozen final table. It
// never mutates the table; every query derives its answer from the
// same snapshot, so option narrowing and slicing cannot go stale
// against each other.
type Engine struct {
	table       []entities.ReconciledRow
	windowDays  int
	allCities   []string
	allProducts []string
}

// New creates a slicer over a final table computed with the given
// window. The table is the pipeline's output and is not copied.
func New(table []entities.ReconciledRow, windowDays int) *Engine {
	if windowDays < 1 {
		windowDays = 1
	}
	return &Engine{
		table:       table,
		windowDays:  windowDays,
		allCities:   distinctCities(table),
		allProducts: distinctProducts(table),
	}
}

// Cities returns every city in the table, sorted
func (e *Engine) Cities() []string {
	out := make([]string, len(e.allCities))
	copy(out, e.allCities)
	return out
}

// Products returns every product in the table, sorted
func (e *Engine) Products() []string {
	out := make([]string, len(e.allProducts))
	copy(out, e.allProducts)
	return out
}

// AvailableCities returns the cities offerable under the current
// product selection: cities with at least one row whose product is
// selected, or all cities when the product side does not narrow.
func (e *Engine) AvailableCities(sel entities.Selection) []string {
	if !sel.ProductsNarrow() {
		return e.Cities()
	}
	products := toSet(sel.Products)
	seen := make(map[string]bool)
	var out []string
	for _, row := range e.table {
		city := string(row.City)
		if products[string(row.ProductName)] && !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	sort.Strings(out)
	return out
}

// AvailableProducts is the mirror of AvailableCities
func (e *Engine) AvailableProducts(sel entities.Selection) []string {
	if !sel.CitiesNarrow() {
		return e.Products()
	}
	cities := toSet(sel.Cities)
	seen := make(map[string]bool)
	var out []string
	for _, row := range e.table {
		product := string(row.ProductName)
		if cities[string(row.City)] && !seen[product] {
			seen[product] = true
			out = append(out, product)
		}
	}
	sort.Strings(out)
	return out
}

// Slice resolves a selection to one of the four output shapes.
// Selecting only cities groups by city, selecting only products
// groups by product, and selecting both returns detail rows with the
// table's own DOI values. Grouped shapes re-sum the measures and
// recompute daily sales and DOI at the coarser granularity; a group's
// DOI is not the sum or average of its rows' DOIs.
func (e *Engine) Slice(sel entities.Selection) Result {
	citiesSelected := sel.CitiesSelected()
	productsSelected := sel.ProductsSelected()

	if !citiesSelected && !productsSelected {
		return Result{Shape: ShapePrompt, Prompt: PromptMessage}
	}

	cities := toSet(sel.ResolveCities(e.allCities))
	products := toSet(sel.ResolveProducts(e.allProducts))
	var filtered []entities.ReconciledRow
	for _, row := range e.table {
		if cities[string(row.City)] && products[string(row.ProductName)] {
			filtered = append(filtered, row)
		}
	}

	switch {
	case citiesSelected && !productsSelected:
		return Result{Shape: ShapeByCity, Groups: e.regroup(filtered, func(r entities.ReconciledRow) string {
			return string(r.City)
		})}
	case productsSelected && !citiesSelected:
		return Result{Shape: ShapeByProduct, Groups: e.regroup(filtered, func(r entities.ReconciledRow) string {
			return string(r.ProductName)
		})}
	default:
		return Result{Shape: ShapeDetail, Rows: filtered}
	}
}

func (e *Engine) regroup(rows []entities.ReconciledRow, key func(entities.ReconciledRow) string) []entities.GroupedRow {
	totals := make(map[string]*entities.GroupedRow)
	for _, row := range rows {
		k := key(row)
		group, ok := totals[k]
		if !ok {
			group = &entities.GroupedRow{Key: k}
			totals[k] = group
		}
		group.UnitsSold += row.UnitsSold
		group.WarehouseQty += row.WarehouseQty
		group.OpenPoQuantity += row.OpenPoQuantity
	}

	out := make([]entities.GroupedRow, 0, len(totals))
	for _, group := range totals {
		rate := services.DailySalesRate(group.UnitsSold, e.windowDays)
		group.DailySales = rate
		group.DOI = services.ComputeDOI(group.WarehouseQty, rate).Floor()
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func distinctCities(table []entities.ReconciledRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range table {
		city := string(row.City)
		if !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	sort.Strings(out)
	return out
}

func distinctProducts(table []entities.ReconciledRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range table {
		product := string(row.ProductName)
		if !seen[product] {
			seen[product] = true
			out = append(out, product)
		}
	}
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
