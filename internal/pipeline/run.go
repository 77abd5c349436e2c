package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse-lab/storepulse/internal/core/config"
	"github.com/storepulse-lab/storepulse/internal/core/period"
	"github.com/storepulse-lab/storepulse/internal/core/storage"
	"github.com/storepulse-lab/storepulse/internal/core/summary"
	"golang.org/x/sync/errgroup"
)

// Pipeline executes one summary aggregation run:
// resolve period → read orders → filter window → aggregate → shape → write.
// It is stateless between runs; the only durable state is the append-only
// sink itself. There are no retries and no checkpoints — a failed run is
// re-triggered whole by the external scheduler.
type Pipeline struct {
	orders    storage.OrderStore
	sink      storage.SummaryStore
	writeMode string
	now       func() time.Time
}

// Result describes a completed run for the caller's completion log.
type Result struct {
	RunID          string
	Period         period.Type
	WindowStart    time.Time
	OrdersScanned  int
	OrdersInWindow int
	RowsWritten    int
}

// New builds a pipeline over the given connectors. writeMode is one of
// the config write modes; anything but replace behaves as append.
func New(orders storage.OrderStore, sink storage.SummaryStore, writeMode string) *Pipeline {
	if writeMode != config.WriteModeReplace {
		writeMode = config.WriteModeAppend
	}
	return &Pipeline{
		orders:    orders,
		sink:      sink,
		writeMode: writeMode,
		now:       time.Now,
	}
}

// Run executes the pipeline for one period-type token.
// The token is resolved before any I/O: an unsupported token aborts the
// run without touching source or sink. Any stage failure terminates the
// run with a stage-named error; nothing is written on read failure, and a
// write failure loses the computed batch by design.
func (p *Pipeline) Run(ctx context.Context, token string) (Result, error) {
	spec, err := period.Resolve(token)
	if err != nil {
		return Result{}, fmt.Errorf("resolve period: %w", err)
	}

	runID := uuid.NewString()
	startedAt := p.now().UTC()
	boundary := spec.WindowStart(startedAt)

	slog.Info("[Pipeline] Starting summary aggregation",
		"run_id", runID,
		"period_type", spec.Type,
		"window_days", spec.WindowDays,
		"window_start", boundary,
	)

	records, err := p.orders.RetrieveOrdersSince(ctx, boundary)
	if err != nil {
		return Result{}, fmt.Errorf("read orders: %w", err)
	}

	windowed := summary.FilterWindow(records, boundary)
	groups := summary.Aggregate(windowed, spec)
	rows := summary.BuildRows(groups, spec.Type, startedAt)

	slog.Info("[Pipeline] Computed summary rows",
		"run_id", runID,
		"period_type", spec.Type,
		"orders_scanned", len(records),
		"orders_in_window", len(windowed),
		"rows", len(rows),
	)

	if p.writeMode == config.WriteModeReplace {
		err = p.sink.ReplaceSummaries(ctx, rows)
	} else {
		err = p.sink.AppendSummaries(ctx, rows)
	}
	if err != nil {
		return Result{}, fmt.Errorf("write summaries: %w", err)
	}

	slog.Info("[Pipeline] Run complete",
		"run_id", runID,
		"period_type", spec.Type,
		"rows_written", len(rows),
		"write_mode", p.writeMode,
	)

	return Result{
		RunID:          runID,
		Period:         spec.Type,
		WindowStart:    boundary,
		OrdersScanned:  len(records),
		OrdersInWindow: len(windowed),
		RowsWritten:    len(rows),
	}, nil
}

// RunAll executes every supported period type concurrently. Runs share no
// in-memory state and only append to the sink, so they need no
// coordination; the first failure cancels the remaining runs.
func (p *Pipeline) RunAll(ctx context.Context) ([]Result, error) {
	types := period.Types()
	results := make([]Result, len(types))

	g, ctx := errgroup.WithContext(ctx)
	for i, pt := range types {
		i, pt := i, pt
		g.Go(func() error {
			res, err := p.Run(ctx, string(pt))
			if err != nil {
				return fmt.Errorf("%s run: %w", pt, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
