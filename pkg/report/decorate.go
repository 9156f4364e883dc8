package report

import (
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
)

const footerBand = 10

// Decorate stamps the footer band on every page after the cover. It depends only on the page
// count, so running it twice paints the same footers over themselves.
func Decorate(ctx *layout.Context, brand theme.Branding) {
	s := ctx.Surface()
	p := ctx.Palette()
	g := ctx.Geometry()

	total := s.PageCount()
	for i := 2; i <= total; i++ {
		s.SetPage(i)
		ctx.FillRect(0, g.Height-footerBand, g.Width, footerBand, p.Bg3)
		ctx.Label(g.Margin, g.Height-4, brand.Product, p.Muted, 7, layout.Normal, layout.AlignLeft)
		ctx.Label(g.Width/2, g.Height-4, fmt.Sprintf("Page %d of %d", i, total), p.Lemon, 7, layout.Bold, layout.AlignCenter)
		ctx.Label(g.Width-g.Margin, g.Height-4, brand.VerificationTag, p.Muted, 7, layout.Normal, layout.AlignRight)
	}
	if total > 0 {
		s.SetPage(total)
	}
}
