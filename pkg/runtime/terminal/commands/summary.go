package commands

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/report/stats"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	dbPath   string
	input    string
	from, to string
	open     Opener
	reporter *export.Reporter
}

func NewSummaryCmd(open Opener, reporter *export.Reporter, defaultDb string) *cobra.Command {
	sc := &SummaryCmd{open: open, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregated ledger statistics",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dbPath, "db", defaultDb, "Path to the DuckDB event store")
	cmd.Flags().StringVar(&sc.input, "input", "", "Read events from this JSON file instead of the store")
	addRangeFlags(cmd, &sc.from, &sc.to)

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rng, err := dateRange(sc.from, sc.to)
	if err != nil {
		return err
	}

	src := Source{}
	if sc.input == "" {
		src.DbPath = sc.dbPath
	}
	svc, closeFn, err := sc.open(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer closeFn()

	txs, err := loadTransactions(ctx, svc, sc.input, rng)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	return sc.reporter.Handle(&export.SummaryReport{
		Title:   "Audit Ledger Summary",
		Period:  rng,
		Summary: stats.Aggregate(txs),
	})
}
