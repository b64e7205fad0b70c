package idef0

import (
	"cmp"

	"github.com/matzehuels/idef0/pkg/orderedset"
	"github.com/matzehuels/idef0/pkg/statement"
)

type lineKey struct {
	kind           LineKind
	source, target Boundary
	label          string
}

// Diagram is the system boundary of an IDEF0 model. It owns the process
// boxes and the lines between them and runs the build pipeline:
// [Diagram.SortBoxes], [Diagram.CreateLines], [Diagram.SortAnchors] and
// [Diagram.Layout], in that order.
type Diagram struct {
	sides

	name  string
	boxes *orderedset.Set[*ProcessBox, string]
	lines *orderedset.Set[*Line, lineKey]

	topLeft       Point
	width, height float64

	style Style
}

// Option configures a diagram.
type Option func(*Diagram)

// WithStyle sets the measurements used for layout and rendering. Zero
// fields fall back to [DefaultStyle].
func WithStyle(s Style) Option { return func(d *Diagram) { d.style = s.withDefaults() } }

// New returns an empty diagram for the process called name.
func New(name string, opts ...Option) *Diagram {
	d := &Diagram{
		sides: newSides(),
		name:  name,
		boxes: orderedset.New(func(b *ProcessBox) string { return b.name }),
		lines: orderedset.New(func(l *Line) lineKey {
			return lineKey{l.kind, l.source, l.target, l.label}
		}),
		style: DefaultStyle(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the name of the root process.
func (d *Diagram) Name() string { return d.name }

// Style returns the style in effect.
func (d *Diagram) Style() Style { return d.style }

// Box returns the process box called name, creating it on first use, and
// passes a builder for it to configure. configure may be nil.
func (d *Diagram) Box(name string, configure func(*Builder)) *ProcessBox {
	b := d.boxes.Get(name, func() *ProcessBox { return newProcessBox(name, &d.style) })
	if configure != nil {
		configure(NewBuilder(b))
	}
	return b
}

// Receives declares inputs entering the diagram from the left.
func (d *Diagram) Receives(labels ...string) { NewBuilder(d).Receives(labels...) }

// Respects declares controls entering the diagram from the top.
func (d *Diagram) Respects(labels ...string) { NewBuilder(d).Respects(labels...) }

// Requires declares mechanisms entering the diagram from the bottom.
func (d *Diagram) Requires(labels ...string) { NewBuilder(d).Requires(labels...) }

// Produces declares outputs leaving the diagram on the right.
func (d *Diagram) Produces(labels ...string) { NewBuilder(d).Produces(labels...) }

// Apply declares label on the diagram's own boundary according to p.
func (d *Diagram) Apply(p statement.Predicate, label string) bool {
	return NewBuilder(d).Apply(p, label)
}

// Boxes returns the process boxes in their current order.
func (d *Diagram) Boxes() []*ProcessBox { return d.boxes.Items() }

// Lines returns the lines in creation order.
func (d *Diagram) Lines() []*Line { return d.lines.Items() }

// SortBoxes orders the boxes by precedence, keeping insertion order among
// equals, and numbers them 0..n-1 in that order.
func (d *Diagram) SortBoxes() {
	d.deriveDepths()
	d.boxes = d.boxes.SortBy(func(a, b *ProcessBox) int {
		return cmp.Compare(a.Precedence(), b.Precedence())
	})
	for i, b := range d.boxes.All() {
		b.SetSequence(i)
	}
}

// deriveDepths sets each box's depth to the length of the longest chain of
// boxes whose outputs feed its inputs. Cycles stop growing after one round
// per box.
func (d *Diagram) deriveDepths() {
	boxes := d.boxes.Items()
	for _, b := range boxes {
		b.depth = 0
	}
	for range boxes {
		changed := false
		for _, t := range boxes {
			for _, s := range boxes {
				if s != t && feeds(s, t) && s.depth+1 > t.depth {
					t.depth = s.depth + 1
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func feeds(s, t *ProcessBox) bool {
	for _, o := range s.right.All() {
		if t.left.Expects(o) {
			return true
		}
	}
	return false
}

// CreateLines classifies every flow between the boxes and the boundary.
// Each line is created at most once however often this runs.
func (d *Diagram) CreateLines() {
	for _, b := range d.boxes.All() {
		for _, in := range b.left.All() {
			if d.left.Expects(in) {
				d.line(ExternalInput, d, b, in)
			}
		}
		for _, g := range b.top.All() {
			if d.top.Expects(g) {
				d.line(ExternalGuidance, d, b, g)
			}
		}
		for _, m := range b.bottom.All() {
			if d.bottom.Expects(m) {
				d.line(ExternalMechanism, d, b, m)
			}
		}
		for _, out := range b.right.All() {
			if d.right.Expects(out) {
				d.line(ExternalOutput, b, d, out)
			}
			for _, t := range d.boxes.After(b) {
				if t.left.Expects(out) {
					d.line(ForwardInput, b, t, out)
				}
				if t.top.Expects(out) {
					d.line(ForwardGuidance, b, t, out)
				}
				if t.bottom.Expects(out) {
					d.line(ForwardMechanism, b, t, out)
				}
			}
			for _, t := range d.boxes.Before(b) {
				if t.top.Expects(out) {
					d.line(BackwardGuidance, b, t, out)
				}
				if t.bottom.Expects(out) {
					d.line(BackwardMechanism, b, t, out)
				}
			}
		}
	}
}

func (d *Diagram) line(kind LineKind, source, target Boundary, label string) *Line {
	return d.lines.Get(lineKey{kind, source, target, label}, func() *Line {
		return newLine(kind, source, target, label, &d.style)
	})
}

// SortAnchors orders the anchors on every box.
func (d *Diagram) SortAnchors() {
	for _, b := range d.boxes.All() {
		b.SortAnchors()
	}
}

// Layout places the boxes in a diagonal cascade from the top-left corner,
// lets every line avoid the others, shifts the boxes so no line reaches
// into negative coordinates and sizes the diagram to its content.
func (d *Diagram) Layout() {
	lines := d.lines.Items()

	p := d.topLeft
	for _, b := range d.boxes.All() {
		b.MoveTo(p)
		b.Layout(lines)
		p = Point{b.X2() + b.right.Margin(), b.Y2() + b.bottom.Margin()}
	}

	for _, l := range lines {
		l.shift, l.extend = 0, 0
	}
	for _, l := range lines {
		l.Avoid(d.lines.Without(l))
	}

	var dx, dy float64
	for _, l := range lines {
		dx = max(dx, -l.LeftEdge())
		dy = max(dy, -l.TopEdge())
	}
	for _, b := range d.boxes.All() {
		b.Translate(dx, dy)
	}

	d.Resize(d.RightEdge(), d.BottomEdge())
}

// Resize sets the diagram's size.
func (d *Diagram) Resize(width, height float64) { d.width, d.height = width, height }

// Width returns the diagram width set by the last layout.
func (d *Diagram) Width() float64 { return d.width }

// Height returns the diagram height set by the last layout.
func (d *Diagram) Height() float64 { return d.height }

// X1 returns the left edge of the diagram.
func (d *Diagram) X1() float64 { return d.topLeft.X }

// Y1 returns the top edge of the diagram.
func (d *Diagram) Y1() float64 { return d.topLeft.Y }

// X2 returns the right edge of the diagram.
func (d *Diagram) X2() float64 { return d.topLeft.X + d.width }

// Y2 returns the bottom edge of the diagram.
func (d *Diagram) Y2() float64 { return d.topLeft.Y + d.height }

// RightEdge is the largest x reached by any box or line, or 0 when empty.
func (d *Diagram) RightEdge() float64 {
	return d.extent(func(r Rect) float64 { return r.X2 })
}

// BottomEdge is the largest y reached by any box or line, or 0 when empty.
func (d *Diagram) BottomEdge() float64 {
	return d.extent(func(r Rect) float64 { return r.Y2 })
}

func (d *Diagram) extent(edge func(Rect) float64) float64 {
	var out float64
	first := true
	take := func(v float64) {
		if first || v > out {
			out = v
			first = false
		}
	}
	for _, b := range d.boxes.All() {
		take(edge(b.Bounds()))
	}
	for _, l := range d.lines.All() {
		take(edge(l.Bounds()))
	}
	return out
}
