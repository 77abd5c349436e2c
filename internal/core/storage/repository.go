package storage

import (
	"context"
	"time"

	"github.com/storepulse-lab/storepulse/internal/core/summary"
)

// OrderStore is the read connector over the upstream transaction dataset.
// Any tabular source that can serve orders filtered by ordered_at is
// substitutable behind this interface.
type OrderStore interface {
	// RetrieveOrdersSince fetches transactions with ordered_at >= since
	// (boundary inclusive). No upper bound is applied.
	RetrieveOrdersSince(ctx context.Context, since time.Time) ([]summary.Transaction, error)
}

// SummaryStore is the write connector over the derived summary dataset.
// The aggregation job is the sole writer; downstream retrieval consumers
// only read.
type SummaryStore interface {
	// AppendSummaries appends the batch without inspecting existing rows.
	// Never updates, never deletes. A zero-row batch is a successful no-op.
	AppendSummaries(ctx context.Context, rows []summary.Row) error

	// ReplaceSummaries rewrites the batch's natural keys
	// (period_type, period_start, store_id) in a single transaction:
	// matching rows are deleted, then the batch is inserted.
	ReplaceSummaries(ctx context.Context, rows []summary.Row) error
}
