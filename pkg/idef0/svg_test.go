package idef0

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"
)

var (
	sizeRe    = regexp.MustCompile(`width='([0-9.]+)pt' height='([0-9.]+)pt'`)
	viewBoxRe = regexp.MustCompile(`viewBox='([-0-9. ]+)'`)
)

func parseFloats(t *testing.T, fields ...string) []float64 {
	t.Helper()
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", f, err)
		}
		out[i] = v
	}
	return out
}

func TestSVGDocumentShape(t *testing.T) {
	d := restaurant(t)
	doc := string(d.SVG())

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`) {
		t.Errorf("missing XML declaration: %.60q", doc)
	}
	if !strings.Contains(doc, `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.0//EN"`) {
		t.Error("missing SVG 1.0 DOCTYPE")
	}
	if !strings.Contains(doc, "font-size: 12px;") {
		t.Error("missing font size rule")
	}

	m := sizeRe.FindStringSubmatch(doc)
	if m == nil {
		t.Fatal("no width/height attributes")
	}
	size := parseFloats(t, m[1], m[2])
	if size[0] != d.Width() || size[1] != d.Height() {
		t.Errorf("declared size %vx%v, diagram is %vx%v", size[0], size[1], d.Width(), d.Height())
	}

	vb := viewBoxRe.FindStringSubmatch(doc)
	if vb == nil {
		t.Fatal("no viewBox")
	}
	box := parseFloats(t, strings.Fields(vb[1])...)
	if len(box) != 4 || box[0] != d.X1() || box[1] != d.Y1() || box[2] != d.Width() || box[3] != d.Height() {
		t.Errorf("viewBox = %v", box)
	}
}

func TestSVGDrawsBoxesBeforeLines(t *testing.T) {
	d := restaurant(t)
	doc := string(d.SVG())

	if n := strings.Count(doc, "<rect "); n != len(d.Boxes()) {
		t.Errorf("%d rects, want %d", n, len(d.Boxes()))
	}
	if n := strings.Count(doc, "<path "); n != len(d.Lines()) {
		t.Errorf("%d paths, want %d", n, len(d.Lines()))
	}
	if strings.LastIndex(doc, "<rect ") > strings.Index(doc, "<path ") {
		t.Error("a box is drawn after a line")
	}
	for _, b := range d.Boxes() {
		if !strings.Contains(doc, ">"+b.NodeNumber()+"<") {
			t.Errorf("node number %s missing", b.NodeNumber())
		}
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	d := Build("R&D", func(d *Diagram) {
		d.Receives("<Ideas> & 'Hunches'")
		d.Box("Research & Develop", func(b *Builder) { b.Receives("<Ideas> & 'Hunches'") })
	})
	doc := string(d.SVG())

	if strings.Contains(doc, "<Ideas>") || strings.Contains(doc, "Research & Develop") {
		t.Error("raw markup characters leaked into the document")
	}
	if !strings.Contains(doc, "Research &amp; Develop") {
		t.Error("escaped box name missing")
	}
	if !strings.Contains(doc, "&lt;Ideas&gt; &amp; &#39;Hunches&#39;") {
		t.Error("escaped line label missing")
	}
}

func TestSVGParsesWithOksvg(t *testing.T) {
	d := restaurant(t)
	// oksvg reads unitless lengths only.
	doc := bytes.ReplaceAll(d.SVG(), []byte("pt'"), []byte("'"))

	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		t.Fatalf("ReadIconStream() error: %v", err)
	}
	vb := icon.ViewBox
	if vb.X != d.X1() || vb.Y != d.Y1() || vb.W != d.Width() || vb.H != d.Height() {
		t.Errorf("ViewBox = %+v, diagram %vx%v", vb, d.Width(), d.Height())
	}
	if len(icon.SVGPaths) < len(d.Boxes())+len(d.Lines()) {
		t.Errorf("parsed %d shapes, want at least %d", len(icon.SVGPaths), len(d.Boxes())+len(d.Lines()))
	}
}

func TestNumFormatting(t *testing.T) {
	tests := map[float64]string{0: "0", 12: "12", 12.5: "12.5", -3: "-3"}
	for v, want := range tests {
		if got := num(v); got != want {
			t.Errorf("num(%v) = %q, want %q", v, got, want)
		}
	}
	if got := num(math.Copysign(0, -1)); got != "0" {
		t.Errorf("num(-0) = %q", got)
	}
}
