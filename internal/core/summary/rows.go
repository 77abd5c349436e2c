package summary

import (
	"sort"
	"time"

	"github.com/storepulse-lab/storepulse/internal/core/period"
)

// BuildRows shapes computed group statistics into sink rows, attaching the
// period-type label and the run's wall-clock start. Pure: same groups and
// createdAt always produce the same batch.
//
// Rows are sorted by (StoreID, PeriodStart) so re-running over a frozen
// input yields an identical batch. Consumers must still treat the sink as
// an unordered set — insertion order carries no meaning.
func BuildRows(groups map[GroupKey]*GroupStats, periodType period.Type, createdAt time.Time) []Row {
	rows := make([]Row, 0, len(groups))
	for key, stats := range groups {
		rows = append(rows, Row{
			PeriodType:     periodType,
			PeriodStart:    key.PeriodStart,
			StoreID:        key.StoreID,
			TotalSales:     stats.TotalSales,
			TotalOrders:    stats.TotalOrders,
			AvgOrderValue:  stats.AvgOrderValue(),
			UniqueVisitors: stats.UniqueVisitors(),
			CreatedAt:      createdAt,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StoreID != rows[j].StoreID {
			return rows[i].StoreID < rows[j].StoreID
		}
		return rows[i].PeriodStart.Before(rows[j].PeriodStart)
	})

	return rows
}
