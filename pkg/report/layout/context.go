// Package layout owns the writable page state of one audit report build: the vertical cursor,
// the fixed page geometry and thin colour/font wrappers over the drawing surface.
package layout

import (
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/go-pdf/fpdf"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Weight int

const (
	Normal Weight = iota
	Bold
)

const fontFamily = "Helvetica"

// Geometry is the fixed page frame. Top is where the cursor resets on a new page; Bottom is the
// band kept free for the footer stamped by the decoration pass.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
	Top    float64
	Bottom float64
	// AccentBar is the height of the coloured strip painted at the top of every content page.
	AccentBar float64
}

func A4() Geometry {
	return Geometry{
		Width:     210,
		Height:    297,
		Margin:    12,
		Top:       15,
		Bottom:    12,
		AccentBar: 2,
	}
}

// ContentWidth is the page width between the left and right margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// Limit is the lowest y any content unit may reach.
func (g Geometry) Limit() float64 {
	return g.Height - g.Bottom
}

// Usable is the vertical space of an empty content page.
func (g Geometry) Usable() float64 {
	return g.Limit() - g.Top
}

// Placement records one atomic unit drawn by a renderer.
type Placement struct {
	Section string
	Page    int
	Y       float64
	Height  float64
}

// Context is the single-owner drawing context of one build. It must not be shared between
// concurrent builds.
type Context struct {
	surface Surface
	palette theme.Palette
	geo     Geometry

	y       float64
	section string
	onBreak func()
	units   []Placement
}

func NewContext(surface Surface, palette theme.Palette, geo Geometry) *Context {
	return &Context{
		surface: surface,
		palette: palette,
		geo:     geo,
		y:       geo.Top,
	}
}

func (c *Context) Palette() theme.Palette { return c.palette }
func (c *Context) Geometry() Geometry     { return c.geo }
func (c *Context) Surface() Surface       { return c.surface }

// Units returns the placement log in drawing order.
func (c *Context) Units() []Placement {
	out := make([]Placement, len(c.units))
	copy(out, c.units)
	return out
}

func (c *Context) Y() float64 { return c.y }

func (c *Context) Advance(dy float64) {
	c.y += dy
}

// SetY moves the cursor to an absolute position, used by fixed single-page layouts.
func (c *Context) SetY(y float64) {
	c.y = y
}

// Remaining is the space left between the cursor and the bottom margin.
func (c *Context) Remaining() float64 {
	return c.geo.Limit() - c.y
}

func (c *Context) Fill(col theme.Color) {
	c.surface.SetFillColor(col.R, col.G, col.B)
}

func (c *Context) Stroke(col theme.Color) {
	c.surface.SetDrawColor(col.R, col.G, col.B)
}

func (c *Context) TextColor(col theme.Color) {
	c.surface.SetTextColor(col.R, col.G, col.B)
}

func (c *Context) Font(size float64, weight Weight) {
	style := ""
	if weight == Bold {
		style = "B"
	}
	c.surface.SetFont(fontFamily, style, size)
}

func (c *Context) LineWidth(w float64) {
	c.surface.SetLineWidth(w)
}

func (c *Context) FillRect(x, y, w, h float64, col theme.Color) {
	c.Fill(col)
	c.surface.Rect(x, y, w, h, "F")
}

func (c *Context) FillRounded(x, y, w, h, r float64, col theme.Color) {
	c.Fill(col)
	c.surface.RoundedRect(x, y, w, h, r, "1234", "F")
}

func (c *Context) StrokeRounded(x, y, w, h, r, width float64, col theme.Color) {
	c.Stroke(col)
	c.LineWidth(width)
	c.surface.RoundedRect(x, y, w, h, r, "1234", "D")
}

func (c *Context) Dot(x, y, r float64, col theme.Color) {
	c.Fill(col)
	c.surface.Circle(x, y, r, "F")
}

func (c *Context) Triangle(x1, y1, x2, y2, x3, y3 float64, col theme.Color) {
	c.Fill(col)
	c.surface.Polygon([]fpdf.PointType{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}, "F")
}

func (c *Context) Line(x1, y1, x2, y2, width float64, col theme.Color) {
	c.Stroke(col)
	c.LineWidth(width)
	c.surface.Line(x1, y1, x2, y2)
}

// Text places txt with its baseline at y; x is the left edge, centre or right edge depending on align.
func (c *Context) Text(x, y float64, txt string, align Align) {
	switch align {
	case AlignCenter:
		x -= c.surface.GetStringWidth(txt) / 2
	case AlignRight:
		x -= c.surface.GetStringWidth(txt)
	}
	c.surface.Text(x, y, txt)
}

// Label sets colour and font, then places the text.
func (c *Context) Label(x, y float64, txt string, col theme.Color, size float64, weight Weight, align Align) {
	c.Font(size, weight)
	c.TextColor(col)
	c.Text(x, y, txt, align)
}
