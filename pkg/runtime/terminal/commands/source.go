package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/spf13/cobra"
)

// Source names where a command reads events and report profiles from. Empty fields are not opened.
type Source struct {
	DbPath   string
	Profiles string
}

// Opener builds the audit service behind a command; closeFn releases whatever it opened.
type Opener func(ctx context.Context, src Source) (svc audit.Service, closeFn func() error, err error)

func readEvents(path string) ([]api.AuditEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	events, err := adapters.DecodeAuditEvents(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return events, nil
}

// loadTransactions reads events from the input file when given, otherwise from the store.
func loadTransactions(
	ctx context.Context,
	svc audit.Service,
	input string,
	rng *domain.DateRange,
) ([]domain.AuditTransaction, error) {
	if input == "" {
		return svc.Transactions(ctx, rng)
	}

	events, err := readEvents(input)
	if err != nil {
		return nil, err
	}
	txs := adapters.ConvertToAuditTransactions(events, time.Now())
	if rng == nil {
		return txs, nil
	}

	filtered := make([]domain.AuditTransaction, 0, len(txs))
	for _, tx := range txs {
		if rng.Contains(tx.Timestamp) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

func dateRange(from, to string) (*domain.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	for _, v := range []struct{ name, value string }{{"from", from}, {"to", to}} {
		if v.value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v.value); err != nil {
			return nil, fmt.Errorf("invalid '%s' date format. Expected format: YYYY-MM-DD", v.name)
		}
	}
	return &domain.DateRange{From: from, To: to}, nil
}

func addRangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "End date (YYYY-MM-DD), inclusive")
}
