package sections

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
)

const verifiedLimit = 18

// Blockchain paints the network card and lists up to eighteen hash-bearing transactions, with a
// trailing count of the ones left out.
func Blockchain(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	b := in.Brand
	m := g.Margin

	ctx.BeginSection(NameBlockchain)
	titleBar(ctx, b.NetworkName+" BLOCKCHAIN VERIFICATION", p.Lemon, p.Bg1, 8)

	ctx.WithPagination(40, 10, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), 40, 3, p.Bg3)
		ctx.StrokeRounded(m, y, g.ContentWidth(), 40, 3, 0.4, p.Lemon)

		ctx.FillRounded(m+6, y+8, 24, 24, 4, p.Lemon)
		ctx.Label(m+18, y+22, b.LogoTop, p.Bg1, 7, layout.Bold, layout.AlignCenter)

		ctx.Label(m+38, y+12, b.NetworkFullName, p.White, 12, layout.Bold, layout.AlignLeft)
		ctx.Label(m+38, y+21, fmt.Sprintf("Chain ID: %d  |  RPC: %s  |  Explorer: %s", b.ChainID, b.RPCHost, b.ExplorerHost),
			p.Gray, 7, layout.Normal, layout.AlignLeft)
		ctx.Label(m+38, y+30, b.ContractLabel+": "+b.ContractAddress, p.Purple, 7, layout.Normal, layout.AlignLeft)
	})

	var verified []domain.AuditTransaction
	for _, tx := range in.Transactions {
		if tx.HasTxHash() {
			verified = append(verified, tx)
		}
	}

	ctx.WithPagination(6, 2, func(y float64) {
		ctx.Label(m, y+4, fmt.Sprintf("Verified Transactions (%d)", len(verified)), p.White, 9, layout.Bold, layout.AlignLeft)
	})

	shown := verified
	if len(shown) > verifiedLimit {
		shown = shown[:verifiedLimit]
	}
	for i, tx := range shown {
		ctx.WithPagination(8, 1, func(y float64) {
			ctx.FillRounded(m, y, g.ContentWidth(), 8, 1, alternate(i, p.Bg3, p.Bg4))
			ctx.Label(m+3, y+5.5, format.Clip(format.OrNA(tx.AuthorizationCode), 20), p.Gold, 6, layout.Normal, layout.AlignLeft)
			ctx.Label(m+45, y+5.5, tx.TxHash(), p.Cyan, 5, layout.Normal, layout.AlignLeft)
			ctx.Label(g.Width-m-3, y+5.5, "Block: "+blockNumber(tx, format.NotAvailable), p.Gray, 6, layout.Normal, layout.AlignRight)
		})
	}

	if more := len(verified) - len(shown); more > 0 {
		ctx.WithPagination(10, 0, func(y float64) {
			ctx.Label(g.Width/2, y+6, fmt.Sprintf("...and %d more verified transactions", more), p.Muted, 7, layout.Normal, layout.AlignCenter)
		})
	}
}
