package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/idef0/pkg/idef0"
)

// pdfFont is a PDF core font, so documents need no embedded font files.
const pdfFont = "Helvetica"

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	created time.Time
}

// WithCreationDate fixes the document's creation date, which otherwise is
// the time of rendering.
func WithCreationDate(t time.Time) PDFOption {
	return func(r *pdfRenderer) { r.created = t }
}

// RenderPDF draws the diagram on a single page sized to fit it, in points.
// The document title is the diagram name.
func RenderPDF(d *idef0.Diagram, opts ...PDFOption) ([]byte, error) {
	var r pdfRenderer
	for _, opt := range opts {
		opt(&r)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: max(d.Width(), 1), Ht: max(d.Height(), 1)},
	})
	if !r.created.IsZero() {
		pdf.SetCreationDate(r.created)
	}
	pdf.SetTitle(d.Name(), true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont(pdfFont, "", d.Style().FontSize)
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(0, 0, 0)

	ox, oy := d.X1(), d.Y1()
	text := func(s string, p idef0.Point, anchor float64) {
		s = tr(s)
		pdf.Text(p.X-ox-pdf.GetStringWidth(s)*anchor, p.Y-oy, s)
	}

	for _, b := range d.Boxes() {
		pdf.Rect(b.X1()-ox, b.Y1()-oy, b.Width(), b.Height(), "D")
		text(b.Name(), b.NamePosition(), 0.5)
		text(b.NodeNumber(), b.NodeNumberPosition(), 1)
	}

	for _, l := range d.Lines() {
		for i, p := range l.Points() {
			if i == 0 {
				pdf.MoveTo(p.X-ox, p.Y-oy)
			} else {
				pdf.LineTo(p.X-ox, p.Y-oy)
			}
		}
		pdf.DrawPath("D")

		head := l.Arrowhead()
		tri := make([]gofpdf.PointType, len(head))
		for i, p := range head {
			tri[i] = gofpdf.PointType{X: p.X - ox, Y: p.Y - oy}
		}
		pdf.Polygon(tri, "F")

		label, _ := l.LabelPosition()
		text(l.Label(), label, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
