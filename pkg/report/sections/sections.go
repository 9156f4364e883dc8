// Package sections paints the logical sections of the audit report. Every renderer takes the
// shared drawing context and the immutable build input; list sections paginate through
// layout.Context.WithPagination so no unit crosses the bottom margin.
package sections

import (
	"fmt"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
)

const (
	NameCover        = "cover"
	NameAnalytics    = "analytics"
	NameTraceability = "traceability"
	NameTransactions = "transactions"
	NameBlockchain   = "blockchain"
	NameSignatures   = "signatures"
)

const (
	titleBarHeight = 10
	rowHeight      = 7
	headerHeight   = 8
)

// Input is everything a renderer may read. Renderers never mutate it.
type Input struct {
	Transactions []domain.AuditTransaction
	Summary      stats.Summary
	Config       domain.AuditReportConfig
	Brand        theme.Branding
	ReportID     string
	GeneratedAt  time.Time
}

// titleBar draws the coloured section heading and leaves gap below it.
func titleBar(ctx *layout.Context, title string, bg, fg theme.Color, gap float64) {
	g := ctx.Geometry()
	ctx.WithPagination(titleBarHeight, gap, func(y float64) {
		ctx.FillRounded(g.Margin, y, g.ContentWidth(), titleBarHeight, 2, bg)
		ctx.Label(g.Margin+5, y+7, title, fg, 11, layout.Bold, layout.AlignLeft)
	})
}

func alternate(i int, even, odd theme.Color) theme.Color {
	if i%2 == 0 {
		return even
	}
	return odd
}

func chainID(tx domain.AuditTransaction, brand theme.Branding) string {
	if tx.Blockchain != nil && tx.Blockchain.ChainID != 0 {
		return fmt.Sprint(tx.Blockchain.ChainID)
	}
	return fmt.Sprint(brand.ChainID)
}

func network(tx domain.AuditTransaction, brand theme.Branding) string {
	if tx.Blockchain != nil && tx.Blockchain.Network != "" {
		return tx.Blockchain.Network
	}
	return brand.NetworkName
}

func blockNumber(tx domain.AuditTransaction, fallback string) string {
	if tx.Blockchain != nil && tx.Blockchain.BlockNumber != 0 {
		return fmt.Sprint(tx.Blockchain.BlockNumber)
	}
	return fallback
}
