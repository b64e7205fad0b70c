package sink

import (
	"encoding/json"

	"github.com/matzehuels/idef0/pkg/idef0"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style bool
}

// WithJSONStyle includes the style the diagram was laid out with, so a
// consumer can reproduce font sizes and spacing.
func WithJSONStyle() JSONOption { return func(r *jsonRenderer) { r.style = true } }

type jsonOutput struct {
	Name   string       `json:"name"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Style  *idef0.Style `json:"style,omitempty"`
	Boxes  []jsonBox    `json:"boxes"`
	Lines  []jsonLine   `json:"lines"`
}

type jsonBox struct {
	Name   string  `json:"name"`
	Node   string  `json:"node"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonLine struct {
	Kind   string       `json:"kind"`
	Label  string       `json:"label"`
	Source string       `json:"source"`
	Target string       `json:"target"`
	Points [][2]float64 `json:"points"`
	LabelX float64      `json:"label_x"`
	LabelY float64      `json:"label_y"`
}

// RenderJSON exports box and line geometry as a pretty-printed JSON
// document. Boxes appear in sequence order and lines in creation order,
// the same order the SVG draws them in.
func RenderJSON(d *idef0.Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:   d.Name(),
		Width:  d.Width(),
		Height: d.Height(),
		Boxes:  make([]jsonBox, 0),
		Lines:  make([]jsonLine, 0),
	}
	if r.style {
		s := d.Style()
		out.Style = &s
	}

	for _, b := range d.Boxes() {
		out.Boxes = append(out.Boxes, jsonBox{
			Name:   b.Name(),
			Node:   b.NodeNumber(),
			X:      b.X1(),
			Y:      b.Y1(),
			Width:  b.Width(),
			Height: b.Height(),
		})
	}

	for _, l := range d.Lines() {
		pts := l.Points()
		jl := jsonLine{
			Kind:   l.Kind().String(),
			Label:  l.Label(),
			Source: l.Source().Name(),
			Target: l.Target().Name(),
			Points: make([][2]float64, len(pts)),
		}
		for i, p := range pts {
			jl.Points[i] = [2]float64{p.X, p.Y}
		}
		at, _ := l.LabelPosition()
		jl.LabelX, jl.LabelY = at.X, at.Y
		out.Lines = append(out.Lines, jl)
	}

	return json.MarshalIndent(out, "", "  ")
}
