// Package report builds the multi-section audit report document from a list of ledger
// transactions.
package report

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/sections"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/rs/zerolog"
)

// Options customises a Generator. Zero-valued fields fall back to the defaults.
type Options struct {
	Palette    theme.Palette
	Branding   theme.Branding
	Geometry   layout.Geometry
	Clock      func() time.Time
	Logger     *zerolog.Logger
	NewSurface func() layout.Surface
}

// Generator renders audit reports. It holds configuration only; every Generate call creates its
// own surface and layout context, so one Generator may serve concurrent callers.
type Generator struct {
	palette    theme.Palette
	brand      theme.Branding
	geo        layout.Geometry
	clock      func() time.Time
	logger     zerolog.Logger
	newSurface func() layout.Surface
}

func NewGenerator(opts Options) *Generator {
	g := &Generator{
		palette:    opts.Palette,
		brand:      opts.Branding,
		geo:        opts.Geometry,
		clock:      opts.Clock,
		logger:     zerolog.Nop(),
		newSurface: opts.NewSurface,
	}
	if g.palette == (theme.Palette{}) {
		g.palette = theme.DefaultPalette()
	}
	if g.brand == (theme.Branding{}) {
		g.brand = theme.DefaultBranding()
	}
	if g.geo == (layout.Geometry{}) {
		g.geo = layout.A4()
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if opts.Logger != nil {
		g.logger = *opts.Logger
	}
	if g.newSurface == nil {
		g.newSurface = layout.NewPDFSurface
	}
	return g
}

func (g *Generator) Branding() theme.Branding {
	return g.brand
}

// Document is a finished, serialized report.
type Document struct {
	Bytes       []byte
	Pages       int
	Units       []layout.Placement
	ReportID    string
	GeneratedAt time.Time
}

// Filename is the download name, AUDIT_<YYYY-MM-DD>.pdf, taken from the generation date.
func (d *Document) Filename() string {
	return Filename(d.GeneratedAt)
}

func Filename(t time.Time) string {
	return "AUDIT_" + t.Format(time.DateOnly) + ".pdf"
}

// ReportID derives the presentation id printed on the cover from the generation time.
func ReportID(t time.Time) string {
	return "AUDIT-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// Generate renders the sections in fixed order, stamps page footers and serializes the result.
// Blockchain and signature sections are gated by the config switches. A serialization error is
// returned as produced by the surface.
func (g *Generator) Generate(txs []domain.AuditTransaction, cfg domain.AuditReportConfig) (*Document, error) {
	now := g.clock()
	in := sections.Input{
		Transactions: txs,
		Summary:      stats.Aggregate(txs),
		Config:       cfg,
		Brand:        g.brand,
		ReportID:     ReportID(now),
		GeneratedAt:  now,
	}

	g.logger.Debug().
		Int("transactions", len(txs)).
		Str("report_id", in.ReportID).
		Msg("Generating audit report")

	surface := g.newSurface()
	ctx := layout.NewContext(surface, g.palette, g.geo)

	for _, render := range pipeline(cfg) {
		render(ctx, in)
	}
	Decorate(ctx, g.brand)

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, err
	}

	doc := &Document{
		Bytes:       buf.Bytes(),
		Pages:       surface.PageCount(),
		Units:       ctx.Units(),
		ReportID:    in.ReportID,
		GeneratedAt: now,
	}
	g.logger.Info().
		Int("pages", doc.Pages).
		Int("transactions", len(txs)).
		Int("bytes", len(doc.Bytes)).
		Str("report_id", doc.ReportID).
		Msg("Audit report generated")
	return doc, nil
}

type renderer func(*layout.Context, sections.Input)

func pipeline(cfg domain.AuditReportConfig) []renderer {
	steps := []renderer{
		sections.Cover,
		sections.Analytics,
		sections.Traceability,
		sections.Transactions,
	}
	if cfg.IncludeBlockchainData {
		steps = append(steps, sections.Blockchain)
	}
	if cfg.IncludeSignatures {
		steps = append(steps, sections.Signatures)
	}
	return steps
}
