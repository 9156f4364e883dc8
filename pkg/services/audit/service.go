// Package audit ties the event store, the report profiles and the report generator together.
package audit

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/report"
	"github.com/de-tools/audit-atlas/pkg/report/export"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb/events"
	"github.com/rs/zerolog"
)

var ErrNoEventStore = errors.New("no event store configured")

type Service interface {
	// Import converts raw events and stores them. Events without an id get one derived from
	// their content, so importing the same file twice replaces rather than duplicates.
	Import(ctx context.Context, raw []api.AuditEvent) (int, error)
	Transactions(ctx context.Context, r *domain.DateRange) ([]domain.AuditTransaction, error)
	// ReportConfig resolves a named profile; an empty name gives the default configuration.
	// A non-nil range replaces the profile's own.
	ReportConfig(ctx context.Context, profile string, r *domain.DateRange) (domain.AuditReportConfig, error)
	Profiles(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, txs []domain.AuditTransaction, cfg domain.AuditReportConfig) (*report.Document, error)
	Publish(ctx context.Context, sink export.Sink, txs []domain.AuditTransaction, cfg domain.AuditReportConfig) (string, error)
	Summary(ctx context.Context, r *domain.DateRange) (stats.Summary, error)
}

type Options struct {
	DB       *sql.DB
	Store    events.Store
	Registry config.Registry
	Builder  export.Builder
	Clock    func() time.Time
}

type DefaultService struct {
	db       *sql.DB
	store    events.Store
	registry config.Registry
	builder  export.Builder
	clock    func() time.Time
}

func NewService(opts Options) *DefaultService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Builder == nil {
		opts.Builder = report.NewGenerator(report.Options{Clock: opts.Clock})
	}
	return &DefaultService{
		db:       opts.DB,
		store:    opts.Store,
		registry: opts.Registry,
		builder:  opts.Builder,
		clock:    opts.Clock,
	}
}

// DefaultReportConfig is used when no profile is named.
func DefaultReportConfig() domain.AuditReportConfig {
	return domain.AuditReportConfig{
		Platform:              domain.PlatformTreasury,
		IncludeBlockchainData: true,
		IncludeSignatures:     true,
	}
}

func (s *DefaultService) Import(ctx context.Context, raw []api.AuditEvent) (n int, err error) {
	logger := zerolog.Ctx(ctx)
	if s.store == nil {
		return 0, ErrNoEventStore
	}
	if len(raw) == 0 {
		return 0, nil
	}

	now := s.clock()
	rows := make([]store.AuditEventRow, 0, len(raw))
	for _, e := range raw {
		if e.ID == "" {
			e.ID = api.FlexString(ContentID(e))
		}
		tx := adapters.ConvertToAuditTransaction(e, now)
		rows = append(rows, adapters.MapAuditTransactionDomainToStore(tx))
	}

	if s.db != nil {
		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return 0, fmt.Errorf("failed to instantiate transaction: %w", txErr)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if cerr := tx.Commit(); cerr != nil {
				err = fmt.Errorf("commit import: %w", cerr)
			}
		}()
		ctx = duckdb.WithTransaction(ctx, tx)
	}

	if err = s.store.Add(ctx, rows); err != nil {
		logger.Error().Err(err).Int("events", len(rows)).Msg("failed to store audit events")
		return 0, fmt.Errorf("store audit events: %w", err)
	}

	logger.Info().Int("events", len(rows)).Msg("audit events imported")
	return len(rows), nil
}

// ContentID derives a stable id from the event body.
func ContentID(e api.AuditEvent) string {
	data, _ := json.Marshal(e)
	sum := sha256.Sum256(data)
	return "evt-" + hex.EncodeToString(sum[:8])
}

func (s *DefaultService) Transactions(ctx context.Context, r *domain.DateRange) ([]domain.AuditTransaction, error) {
	if s.store == nil {
		return nil, ErrNoEventStore
	}

	var from, to *time.Time
	if r != nil {
		from, to = r.Bounds()
	}

	rows, err := s.store.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	txs := make([]domain.AuditTransaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, adapters.MapStoreAuditEventToDomain(row))
	}
	return txs, nil
}

func (s *DefaultService) ReportConfig(
	ctx context.Context,
	profile string,
	r *domain.DateRange,
) (domain.AuditReportConfig, error) {
	cfg := DefaultReportConfig()
	if profile != "" {
		if s.registry == nil {
			return cfg, fmt.Errorf("%w: %s", config.ErrProfileNotFound, profile)
		}
		found, err := s.registry.GetConfig(ctx, profile)
		if err != nil {
			return cfg, err
		}
		cfg = *found
	}
	if r != nil && !r.IsZero() {
		cfg.DateRange = r
	}
	return cfg, nil
}

func (s *DefaultService) Profiles(ctx context.Context) ([]string, error) {
	if s.registry == nil {
		return []string{}, nil
	}
	return s.registry.GetProfiles(ctx)
}

func (s *DefaultService) Generate(
	ctx context.Context,
	txs []domain.AuditTransaction,
	cfg domain.AuditReportConfig,
) (*report.Document, error) {
	doc, err := s.builder.Generate(txs, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int("transactions", len(txs)).Msg("failed to generate audit report")
		return nil, err
	}
	return doc, nil
}

func (s *DefaultService) Publish(
	ctx context.Context,
	sink export.Sink,
	txs []domain.AuditTransaction,
	cfg domain.AuditReportConfig,
) (string, error) {
	return export.Download(ctx, s.builder, sink, txs, cfg)
}

func (s *DefaultService) Summary(ctx context.Context, r *domain.DateRange) (stats.Summary, error) {
	txs, err := s.Transactions(ctx, r)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Aggregate(txs), nil
}
