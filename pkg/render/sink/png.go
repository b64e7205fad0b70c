package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/idef0/pkg/fonts"
	"github.com/matzehuels/idef0/pkg/idef0"
)

// DefaultScale renders PNGs at twice the diagram's point size.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
}

// WithScale sets the number of pixels per diagram point. Values <= 0 are
// ignored.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground sets the fill behind the diagram. Pass color.Transparent
// for a transparent image.
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the diagram.
func RenderPNG(d *idef0.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}

	w := max(1, int(math.Ceil(d.Width()*r.scale)))
	h := max(1, int(math.Ceil(d.Height()*r.scale)))
	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()

	face, err := fonts.Face(d.Style().FontSize * r.scale)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.SetLineWidth(r.scale)

	at := func(p idef0.Point) (float64, float64) {
		return (p.X - d.X1()) * r.scale, (p.Y - d.Y1()) * r.scale
	}

	for _, b := range d.Boxes() {
		x, y := at(idef0.Point{X: b.X1(), Y: b.Y1()})
		dc.DrawRectangle(x, y, b.Width()*r.scale, b.Height()*r.scale)
		dc.Stroke()

		x, y = at(b.NamePosition())
		dc.DrawStringAnchored(b.Name(), x, y, 0.5, 0)
		x, y = at(b.NodeNumberPosition())
		dc.DrawStringAnchored(b.NodeNumber(), x, y, 1, 0)
	}

	for _, l := range d.Lines() {
		for i, p := range l.Points() {
			x, y := at(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()

		for i, p := range l.Arrowhead() {
			x, y := at(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Fill()

		label, _ := l.LabelPosition()
		x, y := at(label)
		dc.DrawString(l.Label(), x, y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
