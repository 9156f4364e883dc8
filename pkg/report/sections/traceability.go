package sections

import (
	"fmt"
	"strconv"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
)

const (
	traceBaseHeight    = 38
	traceContHeight    = 12
	traceSigRowHeight  = 6
	traceCardGap       = 4
	traceFooterHeight  = 12
	traceMaxSignatures = 38
)

// Traceability paints one card per transaction linking its lock, authorization, publication and
// on-chain coordinates, with any attached signatures listed inside the card. Cards are atomic;
// a signature list too long for one page continues on follow-up cards.
func Traceability(ctx *layout.Context, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	b := in.Brand

	ctx.BeginSection(NameTraceability)
	titleBar(ctx, "COMPLETE TRANSACTION TRACEABILITY", p.Gold, p.Bg1, 8)

	ctx.WithPagination(18, 7, func(y float64) {
		ctx.FillRounded(g.Margin, y, g.ContentWidth(), 18, 2, p.Bg3)
		ctx.Label(g.Margin+5, y+7, "Every transaction is traced from lock creation to on-chain settlement on "+b.NetworkFullName+".",
			p.Light, 7, layout.Normal, layout.AlignLeft)
		ctx.Label(g.Margin+5, y+13, b.ContractLabel+": "+b.ContractAddress, p.Purple, 7, layout.Normal, layout.AlignLeft)
	})

	for i, tx := range in.Transactions {
		traceCard(ctx, i+1, tx, in)
	}

	ctx.Advance(5)
	if !ctx.Fits(traceFooterHeight) {
		return
	}
	s := in.Summary
	ctx.Place(traceFooterHeight, func(y float64) {
		ctx.FillRounded(g.Margin, y, g.ContentWidth(), traceFooterHeight, 2, p.Bg4)
		ctx.Label(g.Margin+5, y+8, fmt.Sprintf("Total Traced: %d transactions", s.Transactions), p.White, 8, layout.Bold, layout.AlignLeft)
		ctx.Label(g.Width/2, y+8, fmt.Sprintf("With TX Hash: %d", s.WithTxHash), p.Cyan, 8, layout.Normal, layout.AlignCenter)
		ctx.Label(g.Width-g.Margin-5, y+8, fmt.Sprintf("With Signatures: %d", s.WithSignatures), p.Purple, 8, layout.Normal, layout.AlignRight)
	})
	ctx.Advance(traceFooterHeight)
}

func traceCard(ctx *layout.Context, n int, tx domain.AuditTransaction, in Input) {
	p := ctx.Palette()
	g := ctx.Geometry()
	b := in.Brand
	m := g.Margin

	first := tx.Signatures
	if len(first) > traceMaxSignatures {
		first = first[:traceMaxSignatures]
	}

	h := float64(traceBaseHeight + traceSigRowHeight*len(first))
	ctx.WithPagination(h, traceCardGap, func(y float64) {
		ctx.FillRounded(m, y, g.ContentWidth(), h, 2, alternate(n-1, p.Bg3, p.Bg4))
		ctx.FillRect(m, y, 1.5, h, p.StatusColor(tx.Status))

		ctx.FillRect(m+4, y+3.5, 3, 3, p.StatusColor(tx.Status))
		ctx.Label(m+9, y+6, fmt.Sprintf("#%d %s", n, format.TypeLabel(tx.Type)), p.White, 8, layout.Bold, layout.AlignLeft)
		ctx.Label(m+70, y+6, "AUTH: "+format.OrNA(tx.AuthorizationCode), p.Gold, 7, layout.Normal, layout.AlignLeft)
		ctx.Label(g.Width-m-5, y+6, format.Date(tx.Timestamp), p.Gray, 7, layout.Normal, layout.AlignRight)

		ctx.Label(m+5, y+13, "LOCK ID:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+25, y+13, format.Clip(format.OrNA(tx.LockID), 36), p.Light, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+100, y+13, "AMOUNT:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+120, y+13, "$"+format.Amount(tx.Amount)+" "+tx.Currency, p.Lemon, 7, layout.Bold, layout.AlignLeft)

		ctx.Label(m+5, y+19, "TX HASH:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		if tx.HasTxHash() {
			ctx.Label(m+25, y+19, tx.TxHash(), p.Cyan, 5, layout.Normal, layout.AlignLeft)
		} else {
			ctx.Label(m+25, y+19, "Pending blockchain confirmation", p.Gold, 6, layout.Normal, layout.AlignLeft)
		}

		ctx.Label(m+5, y+25, "BLOCK:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+25, y+25, blockNumber(tx, "Pending"), p.Light, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+60, y+25, "NETWORK:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+85, y+25, network(tx, b), p.Light, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+120, y+25, "CHAIN ID:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+145, y+25, chainID(tx, b), p.Light, 6, layout.Normal, layout.AlignLeft)

		ctx.Label(m+5, y+31, "PUB CODE:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+30, y+31, format.Clip(format.OrNA(tx.PublicationCode), 28), p.Light, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+90, y+31, "BENEFICIARY:", p.Muted, 6, layout.Normal, layout.AlignLeft)
		ctx.Label(m+110, y+31, beneficiary(tx), p.Light, 6, layout.Normal, layout.AlignLeft)

		if len(first) == 0 {
			return
		}
		ctx.Label(m+5, y+35, "SIGNATURES ("+strconv.Itoa(len(tx.Signatures))+"):", p.Purple, 6, layout.Bold, layout.AlignLeft)
		signatureLines(ctx, y+41, 1, first)
	})

	for rest, k := tx.Signatures[len(first):], len(first)+1; len(rest) > 0; {
		chunk := rest
		if len(chunk) > traceMaxSignatures {
			chunk = chunk[:traceMaxSignatures]
		}
		start := k
		ch := float64(traceContHeight + traceSigRowHeight*len(chunk))
		ctx.WithPagination(ch, traceCardGap, func(y float64) {
			ctx.FillRounded(m, y, g.ContentWidth(), ch, 2, p.Bg3)
			ctx.Label(m+5, y+7, fmt.Sprintf("#%d %s (cont.)", n, format.OrNA(tx.AuthorizationCode)), p.Purple, 6, layout.Bold, layout.AlignLeft)
			signatureLines(ctx, y+13, start, chunk)
		})
		rest = rest[len(chunk):]
		k += len(chunk)
	}
}

func signatureLines(ctx *layout.Context, y float64, first int, sigs []domain.Signature) {
	p := ctx.Palette()
	m := ctx.Geometry().Margin
	for i, sig := range sigs {
		ry := y + float64(i*traceSigRowHeight)
		ctx.Label(m+8, ry, fmt.Sprintf("%d. %s:", first+i, format.Clip(sig.Role, 22)), p.RoleColor(sig.Role), 5, layout.Normal, layout.AlignLeft)
		ctx.Label(m+40, ry, format.Clip(format.OrNA(sig.Hash), 110), p.Gray, 5, layout.Normal, layout.AlignLeft)
	}
}

func beneficiary(tx domain.AuditTransaction) string {
	name := format.OrNA(tx.Beneficiary)
	if tx.BankName != "" {
		name += " (" + tx.BankName + ")"
	}
	return format.Clip(name, 40)
}
