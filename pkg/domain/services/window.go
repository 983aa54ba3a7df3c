package services

import (
	"sort"
	"time"

	"github.com/skhandal/doi/pkg/domain/entities"
)

// DefaultWindowDays is the trailing window used when none is requested
const DefaultWindowDays = 7

// DistinctOrderDates returns the distinct order dates present in the
// sales data, sorted ascending
func DistinctOrderDates(records []entities.SalesRecord) []time.Time {
	seen := make(map[time.Time]bool, len(records))
	dates := make([]time.Time, 0)
	for _, rec := range records {
		if !seen[rec.OrderedDate] {
			seen[rec.OrderedDate] = true
			dates = append(dates, rec.OrderedDate)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ClampWindow bounds a requested window size to [1, distinct]. A
// request of zero or less falls back to the default before clamping.
func ClampWindow(days, distinct int) int {
	if days <= 0 {
		days = DefaultWindowDays
	}
	if distinct < 1 {
		return 1
	}
	if days > distinct {
		return distinct
	}
	return days
}

// SelectWindow keeps only the records falling on the last `days`
// distinct order dates. Records sharing a date are kept or dropped
// together. Returns the surviving records in input order along with
// the window's date set, ascending.
func SelectWindow(records []entities.SalesRecord, days int) ([]entities.SalesRecord, []time.Time) {
	dates := DistinctOrderDates(records)
	if days > len(dates) {
		days = len(dates)
	}
	window := dates[len(dates)-days:]

	inWindow := make(map[time.Time]bool, len(window))
	for _, d := range window {
		inWindow[d] = true
	}

	kept := make([]entities.SalesRecord, 0, len(records))
	for _, rec := range records {
		if inWindow[rec.OrderedDate] {
			kept = append(kept, rec)
		}
	}
	return kept, window
}
