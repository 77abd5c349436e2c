package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/storepulse-lab/storepulse/internal/core/summary"
)

// SummaryAdapter implements storage.SummaryStore using PostgreSQL.
// Each batch write is a single transaction — the batch lands whole or
// not at all from the caller's perspective.
type SummaryAdapter struct {
	db    *sql.DB
	table string
}

// NewSummaryAdapter creates a summary write adapter sharing the given connection.
func NewSummaryAdapter(db *sql.DB, table string) *SummaryAdapter {
	return &SummaryAdapter{db: db, table: table}
}

// AppendSummaries inserts the batch in one transaction. It never checks
// for existing rows: overlapping trailing windows re-run later will
// accumulate duplicate (period_type, period_start, store_id) rows, which
// is the sink's documented append-only contract.
func (a *SummaryAdapter) AppendSummaries(ctx context.Context, rows []summary.Row) error {
	if len(rows) == 0 {
		slog.Info("[SummaryAdapter] Empty batch, nothing to append", "table", a.table)
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("summary append: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertRows(ctx, tx, a.table, rows); err != nil {
		return fmt.Errorf("summary append: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("summary append: commit: %w", err)
	}

	slog.Info("[SummaryAdapter] Appended batch", "rows", len(rows), "table", a.table)
	return nil
}

// ReplaceSummaries rewrites the batch's natural keys in one transaction:
// delete every (period_type, period_start, store_id) present in the batch,
// then insert the batch. Keys absent from the batch are untouched, so a
// replace run never erases summaries outside its own window.
func (a *SummaryAdapter) ReplaceSummaries(ctx context.Context, rows []summary.Row) error {
	if len(rows) == 0 {
		slog.Info("[SummaryAdapter] Empty batch, nothing to replace", "table", a.table)
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("summary replace: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	deleteStmt, err := tx.PrepareContext(ctx, queryDeleteSummaryKey(a.table))
	if err != nil {
		return fmt.Errorf("summary replace: prepare delete: %w", err)
	}
	defer deleteStmt.Close()

	for _, row := range rows {
		if _, err := deleteStmt.ExecContext(ctx, row.PeriodType, row.PeriodStart, row.StoreID); err != nil {
			return fmt.Errorf("summary replace: delete key (%s, %s, %s): %w",
				row.PeriodType, row.PeriodStart.Format("2006-01-02"), row.StoreID, err)
		}
	}

	if err := insertRows(ctx, tx, a.table, rows); err != nil {
		return fmt.Errorf("summary replace: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("summary replace: commit: %w", err)
	}

	slog.Info("[SummaryAdapter] Replaced batch", "rows", len(rows), "table", a.table)
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, rows []summary.Row) error {
	insertStmt, err := tx.PrepareContext(ctx, queryInsertSummary(table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insertStmt.Close()

	for _, row := range rows {
		if _, err := insertStmt.ExecContext(ctx,
			row.PeriodType,
			row.PeriodStart,
			row.StoreID,
			row.TotalSales,
			row.TotalOrders,
			row.AvgOrderValue,
			row.UniqueVisitors,
			row.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert row (%s, %s, %s): %w",
				row.PeriodType, row.PeriodStart.Format("2006-01-02"), row.StoreID, err)
		}
	}
	return nil
}
