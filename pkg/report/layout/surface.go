package layout

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Surface is the vector drawing primitive the renderers paint on. *fpdf.Fpdf provides every
// method; NewPDFSurface wraps it so text goes through the core-font code page.
type Surface interface {
	AddPage()
	SetPage(n int)
	PageNo() int
	PageCount() int

	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetFont(family, style string, size float64)
	SetLineWidth(width float64)

	Rect(x, y, w, h float64, style string)
	RoundedRect(x, y, w, h, r float64, corners, style string)
	Circle(x, y, r float64, style string)
	Polygon(points []fpdf.PointType, style string)
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, txt string)
	GetStringWidth(s string) float64

	Output(w io.Writer) error
}

type pdfSurface struct {
	*fpdf.Fpdf
	tr func(string) string
}

// NewPDFSurface creates an empty portrait A4 document measured in millimetres.
// Automatic page breaks are off: pagination is decided by the renderers.
func NewPDFSurface() Surface {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return &pdfSurface{
		Fpdf: pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *pdfSurface) Text(x, y float64, txt string) {
	s.Fpdf.Text(x, y, s.tr(txt))
}

func (s *pdfSurface) GetStringWidth(txt string) float64 {
	return s.Fpdf.GetStringWidth(s.tr(txt))
}

func (s *pdfSurface) Output(w io.Writer) error {
	if err := s.Fpdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := s.Fpdf.Output(w); err != nil {
		return fmt.Errorf("serialize pdf: %w", err)
	}
	return nil
}
