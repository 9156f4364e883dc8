// Package export hands finished audit reports to a storage target.
package export

import (
	"context"
	"errors"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report"
	"github.com/rs/zerolog"
)

var ErrEmptyDocument = errors.New("generated document is empty")

// Builder produces a complete document or an error; it never returns a partial document.
type Builder interface {
	Generate(txs []domain.AuditTransaction, cfg domain.AuditReportConfig) (*report.Document, error)
}

// Sink stores a named report and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Download builds the report and stores it under its AUDIT_<date>.pdf name. The sink is only
// called once the whole document is in memory. Errors are logged with context and returned as-is.
func Download(
	ctx context.Context,
	builder Builder,
	sink Sink,
	txs []domain.AuditTransaction,
	cfg domain.AuditReportConfig,
) (string, error) {
	logger := zerolog.Ctx(ctx)

	doc, err := builder.Generate(txs, cfg)
	if err != nil {
		logger.Error().Err(err).Int("transactions", len(txs)).Msg("Failed to generate audit report")
		return "", err
	}
	if len(doc.Bytes) == 0 {
		logger.Error().Err(ErrEmptyDocument).Msg("Refusing to store audit report")
		return "", ErrEmptyDocument
	}

	name := doc.Filename()
	location, err := sink.Put(ctx, name, doc.Bytes)
	if err != nil {
		logger.Error().Err(err).Str("file", name).Msg("Failed to store audit report")
		return "", err
	}

	logger.Info().
		Str("location", location).
		Int("pages", doc.Pages).
		Str("report_id", doc.ReportID).
		Msg("Audit report stored")
	return location, nil
}
