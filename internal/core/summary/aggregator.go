package summary

import (
	"github.com/storepulse-lab/storepulse/internal/core/period"
)

// Aggregate reduces records into per-(store, period start) statistics.
// Grouping uses the same truncation rule as the window classification, so
// a record admitted into the window lands in exactly one unambiguous
// bucket. An empty input yields an empty map — a valid, non-error outcome.
func Aggregate(records []Transaction, spec period.Spec) map[GroupKey]*GroupStats {
	groups := make(map[GroupKey]*GroupStats)
	for _, r := range records {
		key := GroupKey{
			StoreID:     r.StoreID,
			PeriodStart: spec.Truncate(r.OrderedAt),
		}

		stats, ok := groups[key]
		if !ok {
			groups[key] = &GroupStats{
				TotalSales:  r.TotalPrice,
				TotalOrders: 1,
				visitors:    map[string]struct{}{r.UserID: {}},
			}
			continue
		}

		stats.TotalSales = stats.TotalSales.Add(r.TotalPrice)
		stats.TotalOrders++
		stats.visitors[r.UserID] = struct{}{}
	}
	return groups
}
