// Package layouttest provides a drawing surface that records calls instead of producing a PDF.
package layouttest

import (
	"errors"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

type Op struct {
	Page  int
	Kind  string
	X, Y  float64
	W, H  float64
	Text  string
	Style string
	// Fill is the fill colour active when a rect was drawn.
	Fill [3]int
}

type Recorder struct {
	pages   int
	current int
	fill    [3]int
	Ops     []Op

	// OutputErr, when set, is returned by Output.
	OutputErr error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(op Op) {
	op.Page = r.current
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) AddPage() {
	r.pages++
	r.current = r.pages
	r.record(Op{Kind: "page"})
}

func (r *Recorder) SetPage(n int) {
	if n >= 1 && n <= r.pages {
		r.current = n
	}
}

func (r *Recorder) PageNo() int    { return r.current }
func (r *Recorder) PageCount() int { return r.pages }

func (r *Recorder) SetFillColor(red, green, blue int) { r.fill = [3]int{red, green, blue} }
func (r *Recorder) SetDrawColor(_, _, _ int)          {}
func (r *Recorder) SetTextColor(_, _, _ int)          {}
func (r *Recorder) SetFont(_, _ string, _ float64)    {}
func (r *Recorder) SetLineWidth(_ float64)            {}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) Circle(x, y, rad float64, style string) {
	r.record(Op{Kind: "circle", X: x, Y: y, W: rad, Style: style})
}

func (r *Recorder) Rect(x, y, w, h float64, style string) {
	r.record(Op{Kind: "rect", X: x, Y: y, W: w, H: h, Style: style, Fill: r.fill})
}

func (r *Recorder) RoundedRect(x, y, w, h, _ float64, _, style string) {
	r.record(Op{Kind: "rounded", X: x, Y: y, W: w, H: h, Style: style})
}

func (r *Recorder) Polygon(_ []fpdf.PointType, style string) {
	r.record(Op{Kind: "polygon", Style: style})
}

func (r *Recorder) Text(x, y float64, txt string) {
	r.record(Op{Kind: "text", X: x, Y: y, Text: txt})
}

// GetStringWidth approximates Helvetica at an average 2mm per character.
func (r *Recorder) GetStringWidth(s string) float64 {
	return float64(len([]rune(s))) * 2
}

func (r *Recorder) Output(w io.Writer) error {
	if r.OutputErr != nil {
		return r.OutputErr
	}
	if r.pages == 0 {
		return errors.New("no pages")
	}
	_, err := io.WriteString(w, "%PDF-recorded\n")
	return err
}

// Texts returns all text placed on page (0 for every page) in drawing order.
func (r *Recorder) Texts(page int) []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" && (page == 0 || op.Page == page) {
			out = append(out, op.Text)
		}
	}
	return out
}

// CountText counts text operations on any page that contain substr.
func (r *Recorder) CountText(substr string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == "text" && strings.Contains(op.Text, substr) {
			n++
		}
	}
	return n
}

// HasText reports whether some text operation equals txt exactly.
func (r *Recorder) HasText(txt string) bool {
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Text == txt {
			return true
		}
	}
	return false
}
