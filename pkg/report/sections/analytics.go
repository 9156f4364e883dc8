package sections

import (
	"fmt"
	"strconv"

	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
)

const (
	currencyColumns    = 5
	currencyCellHeight = 18
	currencyRowGap     = 3
	currencyColGap     = 4

	metricsHeight   = 28
	summaryCardH    = 55
	recentLimit     = 8
	recentRowHeight = 7
)

// Analytics paints the treasury currency grid, the per-type metric strip, the volume and network
// cards and the first eight records as a recent-activity list. All content is bounded, so the
// section always fits on one page.
func Analytics(ctx *layout.Context, in Input) {
	p := ctx.Palette()

	ctx.BeginSection(NameAnalytics)

	titleBar(ctx, "DAES TREASURY CURRENCIES - ISO 4217", p.Lemon, p.Bg1, 5)
	currencyGrid(ctx, theme.TreasuryCurrencies(), in.Brand)

	titleBar(ctx, "ANALYTICS DASHBOARD", p.Cyan, p.Bg1, 5)
	metricStrip(ctx, in)
	summaryCards(ctx, in)
	recentActivity(ctx, in)
}

func currencyGrid(ctx *layout.Context, currencies []theme.Currency, brand theme.Branding) {
	p := ctx.Palette()
	g := ctx.Geometry()

	rows := (len(currencies) + currencyColumns - 1) / currencyColumns
	height := float64(rows)*currencyCellHeight + float64(rows-1)*currencyRowGap
	cw := (g.ContentWidth() - 20) / currencyColumns

	ctx.WithPagination(height, 10, func(top float64) {
		for i, c := range currencies {
			x := g.Margin + float64(i%currencyColumns)*(cw+currencyColGap)
			y := top + float64(i/currencyColumns)*(currencyCellHeight+currencyRowGap)

			code, symbol := p.Gray, p.Muted
			if c.Active {
				ctx.FillRounded(x, y, cw, currencyCellHeight, 2, p.Bg4)
				ctx.StrokeRounded(x, y, cw, currencyCellHeight, 2, 0.5, p.Lemon)
				code, symbol = p.Lemon, p.LemonLight
			} else {
				ctx.FillRounded(x, y, cw, currencyCellHeight, 2, p.Bg3)
			}

			ctx.Label(x+3, y+7, c.Code, code, 9, layout.Bold, layout.AlignLeft)
			ctx.Label(x+cw-8, y+7, c.Symbol, symbol, 7, layout.Normal, layout.AlignLeft)
			ctx.Label(x+3, y+14, "ISO "+c.ISO, p.Dim, 6, layout.Normal, layout.AlignLeft)

			if c.Active {
				ctx.FillRounded(x+cw-22, y+10, 18, 6, 1, p.Lemon)
				ctx.Label(x+cw-13, y+14, brand.MintedAsset, p.Bg1, 5, layout.Bold, layout.AlignCenter)
			}
		}
	})
}

func metricStrip(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	s := in.Summary

	metrics := []struct {
		label string
		value int
		color theme.Color
	}{
		{"LOCKS", s.LockCreated, p.Gold},
		{"APPROVED", s.LockApproved, p.Lemon},
		{"REJECTED", s.LockRejected, p.Red},
		{"RESERVES", s.ReserveCreated, p.Cyan},
		{"MINTED", s.MintCompleted, p.Purple},
	}

	ctx.WithPagination(metricsHeight, 7, func(y float64) {
		ctx.FillRounded(g.Margin, y, g.ContentWidth(), metricsHeight, 3, p.Bg3)
		w := g.ContentWidth() / float64(len(metrics))
		for i, m := range metrics {
			x := g.Margin + w*float64(i) + w/2
			ctx.Label(x, y+13, strconv.Itoa(m.value), m.color, 16, layout.Bold, layout.AlignCenter)
			ctx.Label(x, y+22, m.label, p.Muted, 6, layout.Normal, layout.AlignCenter)
		}
	})
}

type keyValue struct {
	label string
	value string
	color theme.Color
}

func summaryCards(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	s := in.Summary
	b := in.Brand
	colW := (g.ContentWidth() - 5) / 2

	volumes := []keyValue{
		{"Total " + b.ReserveAsset + " Locked", format.Dollars(s.TotalVolume), p.Gold},
		{"Total " + b.MintedAsset + " Minted", format.Dollars(s.TotalMinted), p.Purple},
		{"Average Transaction", format.Dollars(s.AvgTransaction), p.Cyan},
		{"Largest Transaction", format.Dollars(s.MaxTransaction), p.Lemon},
	}
	facts := []keyValue{
		{"Network", b.NetworkFullName, p.Lemon},
		{"Chain ID", fmt.Sprint(b.ChainID), p.Cyan},
		{"Consensus", b.Consensus, p.Purple},
		{"Block Time", b.BlockTime, p.Green},
	}

	ctx.WithPagination(summaryCardH, 7, func(y float64) {
		card(ctx, g.Margin, y, colW, "Volume Analysis", volumes)
		card(ctx, g.Margin+colW+5, y, colW, b.NetworkName+" Network", facts)
	})
}

func card(ctx *layout.Context, x, y, w float64, title string, rows []keyValue) {
	p := ctx.Palette()

	ctx.FillRounded(x, y, w, summaryCardH, 3, p.Bg4)
	ctx.Label(x+5, y+10, title, p.White, 9, layout.Bold, layout.AlignLeft)
	for i, r := range rows {
		ry := y + 20 + float64(i)*9
		ctx.Label(x+5, ry, r.label, p.Muted, 7, layout.Normal, layout.AlignLeft)
		ctx.Label(x+w-5, ry, r.value, r.color, 7, layout.Normal, layout.AlignRight)
	}
}

func recentActivity(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()

	ctx.WithPagination(6, 0, func(y float64) {
		ctx.Label(g.Margin, y+4, "Recent Activity Timeline", p.White, 9, layout.Bold, layout.AlignLeft)
	})

	recent := in.Transactions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	for i, tx := range recent {
		ctx.WithPagination(recentRowHeight, 1, func(y float64) {
			ctx.FillRounded(g.Margin, y, g.ContentWidth(), recentRowHeight, 1, alternate(i, p.Bg3, p.Bg4))
			ctx.Dot(g.Margin+5, y+3.5, 1.5, p.StatusColor(tx.Status))
			ctx.Label(g.Margin+12, y+5, format.DateShort(tx.Timestamp), p.Gray, 7, layout.Normal, layout.AlignLeft)
			ctx.Label(g.Margin+40, y+5, format.TypeLabel(tx.Type), p.Light, 7, layout.Normal, layout.AlignLeft)
			ctx.Label(g.Margin+80, y+5, format.OrNA(tx.AuthorizationCode), p.Gold, 7, layout.Normal, layout.AlignLeft)
			ctx.Label(g.Width-g.Margin-5, y+5, "$"+format.Amount(tx.Amount), p.White, 7, layout.Normal, layout.AlignRight)
		})
	}
}
