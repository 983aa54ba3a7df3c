package services

import (
	"sort"
	"strings"

	"github.com/skhandal/doi/pkg/domain/entities"
)

// CanonicalCity upper-cases a city value. Both aggregations apply it
// before grouping so the reconciliation join never misses on casing
// and the final table carries one canonical spelling per city.
func CanonicalCity(city entities.City) entities.City {
	return entities.City(strings.ToUpper(string(city)))
}

// AggregateInventory reduces raw inventory lines to one record per
// (city, product, item) key, summing both quantity measures. City
// values are canonicalized first; product and item keys compare
// case-sensitively with no trimming. Groups come back sorted by city,
// then product, then item.
func AggregateInventory(records []entities.InventoryRecord) []entities.InventoryRecord {
	totals := make(map[entities.RowKey]*entities.InventoryRecord, len(records))
	for _, rec := range records {
		key := entities.RowKey{
			City:        CanonicalCity(rec.City),
			ItemCode:    rec.ItemCode,
			ProductName: rec.ProductName,
		}
		acc, ok := totals[key]
		if !ok {
			acc = &entities.InventoryRecord{
				City:        key.City,
				ItemCode:    rec.ItemCode,
				ProductName: rec.ProductName,
			}
			totals[key] = acc
		}
		acc.OpenPoQuantity = acc.OpenPoQuantity.Add(rec.OpenPoQuantity)
		acc.WarehouseQty = acc.WarehouseQty.Add(rec.WarehouseQty)
	}

	out := make([]entities.InventoryRecord, 0, len(totals))
	for _, acc := range totals {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].ItemCode < out[j].ItemCode
	})
	return out
}

// ItemProductLookup builds the item code to product name mapping used
// to back-fill sales rows, from aggregated inventory. When an item
// code appears under several product names the last aggregated row
// wins.
func ItemProductLookup(aggregated []entities.InventoryRecord) map[entities.ItemCode]entities.ProductName {
	lookup := make(map[entities.ItemCode]entities.ProductName, len(aggregated))
	for _, rec := range aggregated {
		lookup[rec.ItemCode] = rec.ProductName
	}
	return lookup
}

// BackfillProductNames resolves each sales record's product name
// through the lookup. Records whose item code has no entry stay
// unresolved and are later dropped at aggregation; the second return
// value counts them.
func BackfillProductNames(records []entities.SalesRecord, lookup map[entities.ItemCode]entities.ProductName) ([]entities.SalesRecord, int) {
	out := make([]entities.SalesRecord, len(records))
	unmatched := 0
	for i, rec := range records {
		name, ok := lookup[rec.ItemCode]
		rec.ProductName = name
		rec.ProductKnown = ok
		if !ok {
			unmatched++
		}
		out[i] = rec
	}
	return out, unmatched
}

// AggregateSales reduces windowed sales records to one total per
// (city, product, item) key. City values are canonicalized before
// grouping so sales casing lines up with inventory's. Records without
// a resolved product name are dropped here. Groups come back sorted by
// city, then product, then item.
func AggregateSales(records []entities.SalesRecord) []entities.SalesAggregate {
	totals := make(map[entities.RowKey]*entities.SalesAggregate, len(records))
	for _, rec := range records {
		if !rec.ProductKnown {
			continue
		}
		key := entities.RowKey{
			City:        CanonicalCity(rec.City),
			ItemCode:    rec.ItemCode,
			ProductName: rec.ProductName,
		}
		acc, ok := totals[key]
		if !ok {
			acc = &entities.SalesAggregate{
				City:        key.City,
				ItemCode:    key.ItemCode,
				ProductName: key.ProductName,
			}
			totals[key] = acc
		}
		acc.UnitsSold += rec.UnitsSold
	}

	out := make([]entities.SalesAggregate, 0, len(totals))
	for _, acc := range totals {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].ItemCode < out[j].ItemCode
	})
	return out
}
