package sections

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
)

// Signatures paints the signer legend followed by one table row per signature, grouped by
// transaction. The authorization code is shown on the first row of each group only.
func Signatures(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	b := in.Brand
	m := g.Margin

	ctx.BeginSection(NameSignatures)
	titleBar(ctx, "CRYPTOGRAPHIC SIGNATURES & PROOF", p.Purple, p.White, 8)

	ctx.WithPagination(22, 6, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), 22, 2, p.Bg3)
		ctx.Label(m+5, y+7, "Signature chain", p.White, 8, layout.Bold, layout.AlignLeft)
		ordinals := []string{"1st", "2nd", "3rd"}
		for i, role := range b.SignerRoles {
			x := m + 5 + float64(i)*65
			ctx.Label(x, y+15, ordinals[i]+" Signature: "+role, p.RoleColor(role), 6, layout.Normal, layout.AlignLeft)
		}
	})

	s := in.Summary
	if s.WithSignatures == 0 {
		ctx.WithPagination(20, 0, func(y float64) {
			ctx.FillRounded(m, y, g.ContentWidth(), 20, 2, p.Bg4)
			ctx.Label(g.Width/2, y+12, "No signatures recorded yet", p.Muted, 9, layout.Normal, layout.AlignCenter)
		})
		return
	}

	header := func() {
		ctx.WithPagination(headerHeight, 0, func(y float64) {
			ctx.FillRect(m, y, g.ContentWidth(), headerHeight, p.Bg4)
			ctx.Label(m+3, y+5.5, "AUTH CODE", p.Lemon, 7, layout.Bold, layout.AlignLeft)
			ctx.Label(m+40, y+5.5, "ROLE", p.Lemon, 7, layout.Bold, layout.AlignLeft)
			ctx.Label(m+70, y+5.5, "SIGNATURE HASH", p.Lemon, 7, layout.Bold, layout.AlignLeft)
			ctx.Label(g.Width-m-25, y+5.5, "TIMESTAMP", p.Lemon, 7, layout.Bold, layout.AlignLeft)
		})
	}
	header()
	ctx.OnPageBreak(header)

	row := 0
	for _, tx := range in.Transactions {
		if len(tx.Signatures) == 0 {
			continue
		}
		for si, sig := range tx.Signatures {
			shade := alternate(row, p.Bg2, p.Bg3)
			row++
			ctx.WithPagination(rowHeight, 0, func(y float64) {
				ctx.FillRect(m, y, g.ContentWidth(), rowHeight, shade)
				if si == 0 {
					ctx.Label(m+3, y+5, format.Clip(format.OrNA(tx.AuthorizationCode), 18), p.Gold, 6, layout.Normal, layout.AlignLeft)
				}
				ctx.Label(m+40, y+5, format.Clip(sig.Role, 18), p.RoleColor(sig.Role), 6, layout.Normal, layout.AlignLeft)
				ctx.Label(m+70, y+5, format.TruncHash(sig.Hash, 40), p.Cyan, 5, layout.Normal, layout.AlignLeft)
				ts := format.NotAvailable
				if sig.Timestamp != "" {
					ts = format.DateShort(sig.Timestamp)
				}
				ctx.Label(g.Width-m-25, y+5, ts, p.Gray, 6, layout.Normal, layout.AlignLeft)
			})
		}
		ctx.Advance(2)
	}
	ctx.OnPageBreak(nil)

	ctx.Advance(5)
	ctx.WithPagination(15, 0, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), 15, 2, p.Bg4)
		ctx.Label(m+5, y+9, fmt.Sprintf("Total Signatures: %d", s.Signatures), p.White, 8, layout.Bold, layout.AlignLeft)
		ctx.Label(g.Width/2, y+9, fmt.Sprintf("Transactions with Signatures: %d", s.WithSignatures), p.Purple, 8, layout.Normal, layout.AlignCenter)
		ctx.Label(g.Width-m-5, y+9, fmt.Sprintf("Avg Signatures/TX: %.1f", s.AvgSignatures()), p.Cyan, 8, layout.Normal, layout.AlignRight)
	})
}
