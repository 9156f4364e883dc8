package sections

import (
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
)

const (
	defaultTitle = "AUDIT REPORT"

	coverStatsY      = 170
	coverStatsHeight = 52
	coverMetaY       = 230
	coverMetaHeight  = 34
	coverBadgeHeight = 14
)

// Cover opens and paints page 1. It has fixed content and never paginates.
func Cover(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	cx := g.Width / 2

	ctx.SetSection(NameCover)
	ctx.StartPage()

	ctx.FillRect(0, 0, g.Width, g.Height, p.Bg1)
	ctx.FillRect(0, 0, g.Width, 6, p.LemonDark)
	ctx.FillRect(0, 0, g.Width, 3, p.Lemon)

	ctx.Triangle(0, 0, 60, 0, 0, 60, p.Bg3)
	ctx.Triangle(0, 0, 40, 0, 0, 40, p.Bg2)
	ctx.Triangle(g.Width, 0, g.Width-60, 0, g.Width, 60, p.Bg3)
	ctx.Triangle(g.Width, 0, g.Width-40, 0, g.Width, 40, p.Bg2)

	coverLogo(ctx, cx, in.Brand)

	title := in.Config.Title
	if title == "" {
		title = defaultTitle
	}
	subtitle := in.Config.Subtitle
	if subtitle == "" {
		subtitle = in.Brand.CoverSubtitle
	}
	ctx.Label(cx, 125, title, p.White, 32, layout.Bold, layout.AlignCenter)
	ctx.Label(cx, 138, subtitle, p.Lemon, 13, layout.Normal, layout.AlignCenter)
	ctx.Line(cx-55, 148, cx+55, 148, 0.8, p.Lemon)
	ctx.Label(cx, 160, platformLabel(in.Config.Platform)+" - "+in.Brand.PlatformLine, p.Gray, 10, layout.Normal, layout.AlignCenter)

	ctx.SetY(coverStatsY)
	ctx.Place(coverStatsHeight, func(y float64) { coverStats(ctx, y, in) })

	ctx.SetY(coverMetaY)
	ctx.Place(coverMetaHeight, func(y float64) { coverMetadata(ctx, y, in) })

	ctx.SetY(g.Limit() - coverBadgeHeight - 1)
	ctx.Place(coverBadgeHeight, func(y float64) {
		ctx.FillRounded(cx-45, y, 90, coverBadgeHeight, 7, p.Lemon)
		ctx.Label(cx, y+9, in.Brand.Badge, p.Bg1, 9, layout.Bold, layout.AlignCenter)
	})

	ctx.FillRect(0, g.Height-4, g.Width, 4, p.Lemon)
}

// coverLogo builds the glyph from three nested rounded squares around the brand words.
func coverLogo(ctx *layout.Context, cx float64, brand theme.Branding) {
	p := ctx.Palette()

	ctx.FillRounded(cx-32, 35, 64, 64, 8, p.Bg4)
	ctx.FillRounded(cx-28, 39, 56, 56, 6, p.Lemon)
	ctx.FillRounded(cx-24, 43, 48, 48, 5, p.Bg1)

	ctx.Label(cx, 62, brand.LogoTop, p.Lemon, 11, layout.Bold, layout.AlignCenter)
	ctx.Label(cx, 74, brand.LogoBottom, p.Lemon, 14, layout.Bold, layout.AlignCenter)
	ctx.Label(cx, 82, brand.LogoCaption, p.LemonLight, 7, layout.Normal, layout.AlignCenter)
}

func coverStats(ctx *layout.Context, y float64, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	s := in.Summary

	ctx.FillRounded(g.Margin, y, g.ContentWidth(), coverStatsHeight, 4, p.Bg3)
	ctx.StrokeRounded(g.Margin, y, g.ContentWidth(), coverStatsHeight, 4, 0.4, p.Lemon)

	cells := []struct {
		label string
		value string
		color theme.Color
	}{
		{"TOTAL VOLUME", "$" + format.Compact(s.TotalVolume), p.Lemon},
		{in.Brand.MintedAsset + " MINTED", format.Compact(s.TotalMinted), p.Purple},
		{"TRANSACTIONS", strconv.Itoa(s.Transactions), p.Cyan},
		{"SUCCESS RATE", fmt.Sprintf("%.1f%%", s.SuccessRate), p.Green},
	}

	w := g.ContentWidth() / float64(len(cells))
	for i, c := range cells {
		x := g.Margin + w*float64(i) + w/2
		ctx.Label(x, y+22, c.value, c.color, 20, layout.Bold, layout.AlignCenter)
		ctx.Label(x, y+36, c.label, p.Muted, 7, layout.Normal, layout.AlignCenter)
	}
}

func coverMetadata(ctx *layout.Context, y float64, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()

	ctx.FillRounded(g.Margin, y, g.ContentWidth(), coverMetaHeight, 3, p.Bg4)

	col1 := g.Margin + 5
	col2 := g.Margin + 40
	col3 := g.Width/2 + 5
	col4 := g.Width/2 + 40

	generatedBy := in.Config.GeneratedBy
	if generatedBy == "" {
		generatedBy = format.NotAvailable
	}
	period := "All records"
	if r := in.Config.DateRange; r != nil && !r.IsZero() {
		period = format.DateShort(r.From) + " - " + format.DateShort(r.To)
	}

	rows := []struct {
		x, vx float64
		dy    float64
		label string
		value string
		color theme.Color
	}{
		{col1, col2, 9, "Report ID:", in.ReportID, p.Lemon},
		{col1, col2, 18, "Generated:", format.Date(in.GeneratedAt.Format(time.RFC3339)), p.Light},
		{col1, col2, 27, "Generated by:", format.Clip(generatedBy, 28), p.Light},
		{col3, col4, 9, "Network:", fmt.Sprintf("%s (ID: %d)", in.Brand.NetworkName, in.Brand.ChainID), p.Cyan},
		{col3, col4, 18, in.Brand.ContractLabel + ":", format.TruncHash(in.Brand.ContractAddress, 12), p.Purple},
		{col3, col4, 27, "Period:", period, p.Light},
	}

	for _, r := range rows {
		ctx.Label(r.x, y+r.dy, r.label, p.Muted, 8, layout.Normal, layout.AlignLeft)
		ctx.Label(r.vx, y+r.dy, r.value, r.color, 8, layout.Normal, layout.AlignLeft)
	}
}

func platformLabel(platform domain.Platform) string {
	switch platform {
	case domain.PlatformTreasury:
		return "DCB Treasury Platform"
	case domain.PlatformMinting:
		return "Treasury Minting Platform"
	default:
		return "Treasury Platform"
	}
}
