package layout

// safetyMargin is added to every unit height when checking whether it still fits.
const safetyMargin = 0.5

// StartPage opens the first physical page of a document without painting anything.
func (c *Context) StartPage() {
	c.surface.AddPage()
	c.y = c.geo.Top
}

// SetSection names the section that subsequent placements are logged under.
func (c *Context) SetSection(name string) {
	c.section = name
}

// BeginSection opens a fresh content page for a new logical section and clears any page-break
// hook left by the previous section.
func (c *Context) BeginSection(name string) {
	c.section = name
	c.onBreak = nil
	c.NewPage()
}

// OnPageBreak installs fn to run right after every page break of the current section, e.g. to
// redraw a table header.
func (c *Context) OnPageBreak(fn func()) {
	c.onBreak = fn
}

// NewPage adds a physical page, paints its background and accent bar and resets the cursor.
func (c *Context) NewPage() {
	c.surface.AddPage()
	c.PaintBackground()
	c.y = c.geo.Top
}

func (c *Context) PaintBackground() {
	c.FillRect(0, 0, c.geo.Width, c.geo.Height, c.palette.Bg1)
	c.FillRect(0, 0, c.geo.Width, c.geo.AccentBar, c.palette.Lemon)
}

// Fits reports whether a unit of height h fits above the bottom margin.
func (c *Context) Fits(h float64) bool {
	return c.Remaining() >= h+safetyMargin
}

// WithPagination draws one atomic unit of height h at the cursor, breaking to a new page first
// when it would cross the bottom margin, then advances the cursor by h+gap. Units are never split.
// A unit taller than an empty page is drawn at the top of its own page; callers keep units below
// Geometry.Usable.
func (c *Context) WithPagination(h, gap float64, draw func(y float64)) {
	if !c.Fits(h) && c.y > c.geo.Top {
		c.NewPage()
		if c.onBreak != nil {
			c.onBreak()
		}
	}
	c.Place(h, draw)
	c.y += h + gap
}

// Place draws a unit at the cursor without moving it and records the placement.
func (c *Context) Place(h float64, draw func(y float64)) {
	c.units = append(c.units, Placement{
		Section: c.section,
		Page:    c.surface.PageNo(),
		Y:       c.y,
		Height:  h,
	})
	draw(c.y)
}
