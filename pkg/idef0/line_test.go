package idef0

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lineByLabel(t *testing.T, d *Diagram, label string) *Line {
	t.Helper()
	for _, l := range d.Lines() {
		if l.Label() == label {
			return l
		}
	}
	t.Fatalf("no line labelled %q", label)
	return nil
}

func assertOrthogonal(t *testing.T, l *Line) {
	t.Helper()
	for _, s := range segments(l.Points()) {
		if !s.horizontal() && !s.vertical() {
			t.Errorf("%s has a diagonal segment %v→%v", l.Label(), s.a, s.b)
		}
	}
}

func TestForwardInputRoute(t *testing.T) {
	d := Build("S", func(d *Diagram) {
		d.Box("A", func(b *Builder) { b.Produces("X") })
		d.Box("B", func(b *Builder) { b.Receives("X") })
	})
	a, b := d.Boxes()[0], d.Boxes()[1]
	l := lineByLabel(t, d, "X")

	pts := l.Points()
	if len(pts) != 4 {
		t.Fatalf("len(Points()) = %d, want 4: %v", len(pts), pts)
	}
	from, _ := a.AnchorPoint(SideRight, "X")
	to, _ := b.AnchorPoint(SideLeft, "X")
	if pts[0] != from || pts[3] != to {
		t.Errorf("route runs %v→%v, want %v→%v", pts[0], pts[3], from, to)
	}
	if x := pts[1].X; x <= a.X2() || x >= b.X1() {
		t.Errorf("channel x = %v, want between %v and %v", x, a.X2(), b.X1())
	}
	assertOrthogonal(t, l)
}

func TestRoutesAreOrthogonal(t *testing.T) {
	d := restaurant(t)
	for _, l := range d.Lines() {
		assertOrthogonal(t, l)
	}
}

func TestAvoidSeparatesChannels(t *testing.T) {
	d := Build("S", func(d *Diagram) {
		d.Box("A", func(b *Builder) { b.Produces("X", "Y") })
		d.Box("B", func(b *Builder) { b.Receives("X", "Y") })
	})
	x, y := lineByLabel(t, d, "X"), lineByLabel(t, d, "Y")

	gap := d.Style().LineGap
	if diff := cmp.Diff([]float64{gap, 0}, []float64{x.Shift(), y.Shift()}); diff != "" {
		t.Errorf("shifts mismatch (-want +got):\n%s", diff)
	}
	if x.Points()[1].X == y.Points()[1].X {
		t.Error("both lines share one vertical channel")
	}
}

func TestAvoidSharesTrunkForSameOutput(t *testing.T) {
	d := Build("S", func(d *Diagram) {
		d.Box("A", func(b *Builder) { b.Produces("X") })
		d.Box("B", func(b *Builder) { b.Receives("X") })
		d.Box("C", func(b *Builder) { b.Requires("X") })
	})
	for _, l := range d.Lines() {
		if l.Shift() != 0 {
			t.Errorf("%s shifted by %v", l.Kind(), l.Shift())
		}
	}
}

func TestExternalLinesAlign(t *testing.T) {
	d := Build("S", func(d *Diagram) {
		d.Receives("P", "Quite A Long Input")
		d.Respects("R", "S")
		d.Box("A", func(b *Builder) { b.Receives("P").Respects("R") })
		d.Box("B", func(b *Builder) { b.Receives("Quite A Long Input").Respects("S") })
	})

	p, q := lineByLabel(t, d, "P"), lineByLabel(t, d, "Quite A Long Input")
	if ps, qs := p.Points()[0].X, q.Points()[0].X; ps != 0 || qs != 0 {
		t.Errorf("inputs start at x=%v and x=%v, want 0", ps, qs)
	}
	r, s := lineByLabel(t, d, "R"), lineByLabel(t, d, "S")
	if rs, ss := r.Points()[0].Y, s.Points()[0].Y; rs != 0 || ss != 0 {
		t.Errorf("controls start at y=%v and y=%v, want 0", rs, ss)
	}
	if p.Extension() == 0 && q.Extension() == 0 {
		t.Error("neither input was extended")
	}
}

func TestLinesFollowBoxes(t *testing.T) {
	d := restaurant(t)
	before := make(map[*Line][]Point)
	for _, l := range d.Lines() {
		before[l] = l.Points()
	}
	for _, b := range d.Boxes() {
		b.Translate(5, 7)
	}
	for _, l := range d.Lines() {
		want := make([]Point, 0, len(before[l]))
		for _, p := range before[l] {
			want = append(want, p.Add(5, 7))
		}
		if diff := cmp.Diff(want, l.Points()); diff != "" {
			t.Errorf("%s did not move with its boxes (-want +got):\n%s", l.Label(), diff)
		}
	}
}

func TestEdgesIncludeLabel(t *testing.T) {
	d := Build("S", func(d *Diagram) {
		d.Receives("In")
		d.Produces("Out")
		d.Box("A", func(b *Builder) { b.Receives("In").Produces("Out") })
	})
	in, out := lineByLabel(t, d, "In"), lineByLabel(t, d, "Out")

	_, inLabel := in.LabelPosition()
	if in.TopEdge() != inLabel.Y1 {
		t.Errorf("TopEdge() = %v, want label top %v", in.TopEdge(), inLabel.Y1)
	}
	if got, want := out.RightEdge(), out.Points()[1].X; got != want {
		t.Errorf("RightEdge() = %v, want %v", got, want)
	}
	if got := in.LeftEdge(); got != 0 {
		t.Errorf("LeftEdge() = %v, want 0", got)
	}
}

func TestArrowheadPointsAtTarget(t *testing.T) {
	tests := []struct {
		name   string
		build  func(d *Diagram)
		label  string
		dx, dy float64
	}{
		{"input", func(d *Diagram) {
			d.Receives("I")
			d.Box("A", func(b *Builder) { b.Receives("I") })
		}, "I", 1, 0},
		{"control", func(d *Diagram) {
			d.Respects("C")
			d.Box("A", func(b *Builder) { b.Respects("C") })
		}, "C", 0, 1},
		{"mechanism", func(d *Diagram) {
			d.Requires("M")
			d.Box("A", func(b *Builder) { b.Requires("M") })
		}, "M", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Build("S", tt.build)
			l := lineByLabel(t, d, tt.label)
			head := l.Arrowhead()
			pts := l.Points()
			tip := pts[len(pts)-1]
			if head[0] != tip {
				t.Errorf("tip = %v, want %v", head[0], tip)
			}
			base := tip.Add(-tt.dx*arrowLength, -tt.dy*arrowLength)
			mid := Point{(head[1].X + head[2].X) / 2, (head[1].Y + head[2].Y) / 2}
			if mid != base {
				t.Errorf("arrow base = %v, want %v", mid, base)
			}
		})
	}
}

func TestLineKindString(t *testing.T) {
	if got := BackwardMechanism.String(); got != "BackwardMechanism" {
		t.Errorf("String() = %q", got)
	}
	if got := LineKind(42).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}
