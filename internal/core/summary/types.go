package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storepulse-lab/storepulse/internal/core/period"
)

// Transaction is one raw order record from the upstream transactional store.
// The shape is fixed and typed; the read adapter rejects rows that can't
// populate the required fields instead of carrying schemaless maps.
// This core never mutates source records.
type Transaction struct {
	StoreID    string
	UserID     string
	OrderID    string
	MenuID     string
	TotalPrice decimal.Decimal
	OrderedAt  time.Time
}

// GroupKey identifies one aggregation group: a store within a period bucket.
type GroupKey struct {
	StoreID     string
	PeriodStart time.Time
}

// GroupStats is the accumulating state for one group.
// Visitor identity is tracked in a set so distinct counting survives
// users who order more than once inside a window.
type GroupStats struct {
	TotalSales  decimal.Decimal
	TotalOrders int64
	visitors    map[string]struct{}
}

// UniqueVisitors returns the distinct user count seen by this group.
// Never exceeds TotalOrders.
func (g *GroupStats) UniqueVisitors() int64 {
	return int64(len(g.visitors))
}

// AvgOrderValue returns TotalSales / TotalOrders. Groups are only formed
// from existing records, so TotalOrders is at least 1.
func (g *GroupStats) AvgOrderValue() decimal.Decimal {
	return g.TotalSales.Div(decimal.NewFromInt(g.TotalOrders))
}

// Row is one materialized summary record, the sole output shape of the
// engine. Field order mirrors the sink column order of
// summary_stats_by_period. Rows are append-only: written once per run,
// never updated or deleted by this core.
type Row struct {
	PeriodType     period.Type
	PeriodStart    time.Time
	StoreID        string
	TotalSales     decimal.Decimal
	TotalOrders    int64
	AvgOrderValue  decimal.Decimal
	UniqueVisitors int64
	CreatedAt      time.Time
}
