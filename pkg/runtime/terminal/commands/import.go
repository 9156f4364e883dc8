package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ImportCmd struct {
	dbPath string
	input  string
	open   Opener
}

func NewImportCmd(open Opener, defaultDb string) *cobra.Command {
	ic := &ImportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import ledger events into the event store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", defaultDb, "Path to the DuckDB event store")
	cmd.Flags().StringVar(&ic.input, "input", "", "JSON file with an array of events or {\"events\": [...]}")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	events, err := readEvents(ic.input)
	if err != nil {
		return err
	}

	svc, closeFn, err := ic.open(ctx, Source{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer closeFn()

	n, err := svc.Import(ctx, events)
	if err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events into %s\n", n, ic.dbPath)
	return nil
}
