package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/idef0/pkg/idef0"
)

func coffee() *idef0.Diagram {
	return idef0.Build("Brew Coffee", func(d *idef0.Diagram) {
		d.Receives("Beans")
		d.Requires("Barista")
		d.Produces("Espresso")
		d.Box("Grind", func(b *idef0.Builder) { b.Receives("Beans").Produces("Grounds") })
		d.Box("Extract", func(b *idef0.Builder) {
			b.Receives("Grounds").Requires("Barista").Produces("Espresso")
		})
	})
}

func TestRenderPNGSize(t *testing.T) {
	d := coffee()

	tests := []struct {
		name  string
		opts  []PNGOption
		scale float64
	}{
		{"default scale", nil, DefaultScale},
		{"custom scale", []PNGOption{WithScale(1)}, 1},
		{"ignores non-positive", []PNGOption{WithScale(-3)}, DefaultScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(d, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			wantW := int(math.Ceil(d.Width() * tt.scale))
			wantH := int(math.Ceil(d.Height() * tt.scale))
			if cfg.Width != wantW || cfg.Height != wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, wantW, wantH)
			}
		})
	}
}

func TestRenderPNGDrawsBoxOutline(t *testing.T) {
	d := coffee()
	data, err := RenderPNG(d, WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	b := d.Boxes()[0]
	x := int(2 * (b.X1() + b.Width()/2))
	if !darkNear(img, x, int(2*b.Y1())) {
		t.Errorf("no stroke at top edge of %q", b.Name())
	}
	if darkNear(img, int(2*b.X1())+6, int(2*b.Y1())+6) {
		t.Errorf("box interior should be blank")
	}
}

func darkNear(img image.Image, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		g := color.GrayModel.Convert(img.At(x, y+dy)).(color.Gray)
		if g.Y < 128 {
			return true
		}
	}
	return false
}

func TestRenderPNGTransparentBackground(t *testing.T) {
	data, err := RenderPNG(coffee(), WithBackground(color.Transparent))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(coffee(), WithCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header: %q", data[:min(len(data), 16)])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("missing PDF trailer")
	}
	if !bytes.Contains(data, []byte("Helvetica")) {
		t.Error("core font not referenced")
	}
}

func TestRenderJSON(t *testing.T) {
	d := coffee()
	data, err := RenderJSON(d, WithJSONStyle())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var got jsonOutput
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var boxes []string
	for _, b := range got.Boxes {
		boxes = append(boxes, b.Node+" "+b.Name)
	}
	if diff := cmp.Diff([]string{"A1 Grind", "A2 Extract"}, boxes); diff != "" {
		t.Errorf("boxes mismatch (-want +got):\n%s", diff)
	}

	if len(got.Lines) != len(d.Lines()) {
		t.Fatalf("got %d lines, want %d", len(got.Lines), len(d.Lines()))
	}
	for i, l := range d.Lines() {
		jl := got.Lines[i]
		if jl.Kind != l.Kind().String() || jl.Label != l.Label() {
			t.Errorf("line %d = %s %q, want %s %q", i, jl.Kind, jl.Label, l.Kind(), l.Label())
		}
		if len(jl.Points) != len(l.Points()) {
			t.Errorf("line %d has %d points, want %d", i, len(jl.Points), len(l.Points()))
		}
	}

	if got.Style == nil || got.Style.FontSize != d.Style().FontSize {
		t.Errorf("style = %+v, want font size %v", got.Style, d.Style().FontSize)
	}
}

func TestRenderJSONEmptyDiagram(t *testing.T) {
	d := idef0.Build("Nothing", func(*idef0.Diagram) {})
	data, err := RenderJSON(d)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"boxes": []`)) || !bytes.Contains(data, []byte(`"lines": []`)) {
		t.Errorf("empty collections should serialize as []:\n%s", data)
	}
	if bytes.Contains(data, []byte(`"style"`)) {
		t.Error("style should be omitted by default")
	}
}
