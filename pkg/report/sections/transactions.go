package sections

import (
	"fmt"
	"strings"

	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
)

type column struct {
	title  string
	offset float64
}

var historyColumns = []column{
	{"DATE", 3},
	{"TYPE", 28},
	{"AUTH CODE", 58},
	{"AMOUNT", 92},
	{"STATUS", 118},
	{"TX HASH", 145},
}

// Transactions paints the paginated history table. The column header is repeated at the top of
// every continuation page.
func Transactions(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	m := g.Margin

	ctx.BeginSection(NameTransactions)
	ctx.WithPagination(titleBarHeight, 5, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), titleBarHeight, 2, p.Purple)
		ctx.Label(m+5, y+7, "TRANSACTION HISTORY", p.White, 11, layout.Bold, layout.AlignLeft)
		ctx.Label(g.Width-m-5, y+7, fmt.Sprintf("%d transactions", len(in.Transactions)), p.White, 8, layout.Normal, layout.AlignRight)
	})

	header := func() {
		ctx.WithPagination(headerHeight, 2, func(y float64) {
			ctx.FillRect(m, y, g.ContentWidth(), headerHeight, p.Bg4)
			for _, c := range historyColumns {
				ctx.Label(m+c.offset, y+5.5, c.title, p.Lemon, 7, layout.Bold, layout.AlignLeft)
			}
		})
	}
	header()
	ctx.OnPageBreak(header)

	for i, tx := range in.Transactions {
		ctx.WithPagination(rowHeight, 0, func(y float64) {
			ctx.FillRect(m, y, g.ContentWidth(), rowHeight, alternate(i, p.Bg2, p.Bg3))
			ty := y + 5
			ctx.Label(m+3, ty, format.DateShort(tx.Timestamp), p.Gray, 6, layout.Normal, layout.AlignLeft)
			ctx.Label(m+28, ty, format.Clip(format.TypeLabel(tx.Type), 14), p.Light, 6, layout.Normal, layout.AlignLeft)
			ctx.Label(m+58, ty, format.Clip(format.OrNA(tx.AuthorizationCode), 16), p.Gold, 6, layout.Normal, layout.AlignLeft)
			ctx.Label(m+92, ty, "$"+format.Amount(tx.Amount), p.White, 6, layout.Bold, layout.AlignLeft)
			ctx.Label(m+118, ty, strings.ToUpper(format.OrNA(tx.Status)), p.StatusColor(tx.Status), 6, layout.Bold, layout.AlignLeft)
			ctx.Label(m+145, ty, format.TruncHash(tx.TxHash(), format.DefaultHashLen), p.Cyan, 5, layout.Normal, layout.AlignLeft)
		})
	}
	ctx.OnPageBreak(nil)

	ctx.Advance(5)
	ctx.WithPagination(10, 0, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), 10, 2, p.Bg4)
		ctx.Label(m+5, y+6.5, fmt.Sprintf("Total: %d transactions", len(in.Transactions)), p.White, 8, layout.Bold, layout.AlignLeft)
		ctx.Label(g.Width-m-5, y+6.5, fmt.Sprintf("Verified on %s: %d", in.Brand.NetworkName, in.Summary.WithTxHash),
			p.Lemon, 8, layout.Normal, layout.AlignRight)
	})
}
