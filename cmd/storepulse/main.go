package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/storepulse-lab/storepulse/internal/core/config"
	"github.com/storepulse-lab/storepulse/internal/core/period"
	"github.com/storepulse-lab/storepulse/internal/core/storage/postgres"
	"github.com/storepulse-lab/storepulse/internal/migrations"
	"github.com/storepulse-lab/storepulse/internal/pipeline"
)

// storepulse runs one summary aggregation batch and exits. The external
// orchestrator (Airflow in the reference deployment) owns the cadence,
// retries and alerting.
//
// Usage:
//
//	storepulse [-config storepulse.yaml] [-all] [period]
//
// period is one of daily, weekly, monthly, yearly; omitted, it falls back
// to job.default_period (monthly out of the box). -all runs every period
// type concurrently as independent runs.
func main() {
	configPath := flag.String("config", "storepulse.yaml", "Path to configuration file")
	runAll := flag.Bool("all", false, "Run every period type concurrently")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	token := cfg.Job.DefaultPeriod
	if flag.NArg() > 1 {
		slog.Error("Expected at most one period argument", "args", flag.Args())
		os.Exit(1)
	}
	if flag.NArg() == 1 {
		token = flag.Arg(0)
	}

	// Validate the token before opening any connection: an unrecognized
	// period must abort with zero side effects.
	if !*runAll {
		if _, err := period.Resolve(token); err != nil {
			slog.Error("Invalid period type", "error", err)
			os.Exit(1)
		}
	}

	ordersAdapter, err := postgres.NewOrdersAdapter(
		cfg.Database.DSN,
		cfg.Source.Table,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer ordersAdapter.Close()

	if err := migrations.RunMigrations(ordersAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	summaryAdapter := postgres.NewSummaryAdapter(ordersAdapter.DB(), cfg.Sink.Table)
	p := pipeline.New(ordersAdapter, summaryAdapter, cfg.Sink.WriteMode)

	// A signal mid-run cancels in-flight queries; whatever the last
	// completed append wrote stays written.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *runAll {
		results, err := p.RunAll(ctx)
		if err != nil {
			slog.Error("Aggregation failed", "error", err)
			os.Exit(1)
		}
		for _, res := range results {
			logCompletion(res)
		}
		return
	}

	res, err := p.Run(ctx, token)
	if err != nil {
		slog.Error("Aggregation failed", "period_type", token, "error", err)
		os.Exit(1)
	}
	logCompletion(res)
}

func logCompletion(res pipeline.Result) {
	slog.Info(fmt.Sprintf("%s summary stats aggregation completed successfully", res.Period),
		"run_id", res.RunID,
		"window_start", res.WindowStart,
		"orders_in_window", res.OrdersInWindow,
		"rows_written", res.RowsWritten,
	)
}
