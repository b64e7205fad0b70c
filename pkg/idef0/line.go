package idef0

import (
	"math"
	"slices"
)

// LineKind classifies an arrow by where it starts and ends.
type LineKind int

const (
	ExternalInput LineKind = iota
	ExternalGuidance
	ExternalMechanism
	ExternalOutput
	ForwardInput
	ForwardGuidance
	ForwardMechanism
	BackwardGuidance
	BackwardMechanism
)

var lineKindNames = [...]string{
	ExternalInput:     "ExternalInput",
	ExternalGuidance:  "ExternalGuidance",
	ExternalMechanism: "ExternalMechanism",
	ExternalOutput:    "ExternalOutput",
	ForwardInput:      "ForwardInput",
	ForwardGuidance:   "ForwardGuidance",
	ForwardMechanism:  "ForwardMechanism",
	BackwardGuidance:  "BackwardGuidance",
	BackwardMechanism: "BackwardMechanism",
}

// String returns the kind name, such as "ForwardInput".
func (k LineKind) String() string {

	if k >= 0 && int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "Unknown"
}

// internal reports whether both ends are process boxes.
func (k LineKind) internal() bool { return k >= ForwardInput }

// channelled reports whether the route runs through the source's vertical
// channel and can therefore be shifted sideways.
func (k LineKind) channelled() bool { return k.internal() && k != ForwardGuidance }

// targetSide is the side of the target the line enters.
func (k LineKind) targetSide() SideKind {
	switch k {
	case ExternalInput, ForwardInput:
		return SideLeft
	case ExternalGuidance, ForwardGuidance, BackwardGuidance:
		return SideTop
	case ExternalMechanism, ForwardMechanism, BackwardMechanism:
		return SideBottom
	}
	return SideRight
}

const (
	labelInset   = 4
	arrowLength  = 8
	arrowHalf    = 3
	maxAvoidance = 16
)

// Line is a labelled arrow between two boundaries. Its route is derived from
// the current positions of the boxes it connects plus two routing offsets
// adjusted by [Line.Avoid], so moving a box moves its lines.
type Line struct {
	kind           LineKind
	source, target Boundary
	src, dst       *ProcessBox
	label          string
	from, to       *Anchor

	shift  float64 // channel offset of internal lines
	extend float64 // extra length at the open end of external lines

	labelWidth float64
	style      *Style
}

func newLine(kind LineKind, source, target Boundary, label string, style *Style) *Line {
	l := &Line{
		kind:       kind,
		source:     source,
		target:     target,
		label:      label,
		style:      style,
		labelWidth: style.textWidth(label),
	}
	if b, ok := source.(*ProcessBox); ok {
		l.src = b
		l.from = b.right.attach(label, l)
	}
	if b, ok := target.(*ProcessBox); ok {
		l.dst = b
		l.to = b.Side(kind.targetSide()).attach(label, l)
	}
	return l
}

// Kind returns how the line connects its endpoints.
func (l *Line) Kind() LineKind { return l.kind }

// Label returns the flow label carried by the line.
func (l *Line) Label() string { return l.label }

// Source returns the boundary the line leaves.
func (l *Line) Source() Boundary { return l.source }

// Target returns the boundary the line enters.
func (l *Line) Target() Boundary { return l.target }

// LabelWidth returns the measured width of the label text.
func (l *Line) LabelWidth() float64 { return l.labelWidth }

// Shift returns the horizontal offset applied by collision avoidance.
func (l *Line) Shift() float64 { return l.shift }

// Extension returns the vertical offset applied by collision avoidance.
func (l *Line) Extension() float64 { return l.extend }

func (l *Line) start() Point { return l.src.anchorPoint(l.from) }
func (l *Line) end() Point   { return l.dst.anchorPoint(l.to) }

func (l *Line) channelX() float64 { return l.src.ChannelX() + l.shift }

// route returns the polyline before collapsing repeated points.
func (l *Line) route() []Point {
	st := l.style
	c := st.Clearance
	switch l.kind {
	case ExternalInput:
		e := l.end()
		return []Point{{e.X - 2*c - l.labelWidth - l.extend, e.Y}, e}
	case ExternalOutput:
		s := l.start()
		return []Point{s, {s.X + 2*c + l.labelWidth + l.extend, s.Y}}
	case ExternalGuidance:
		e := l.end()
		return []Point{{e.X, e.Y - 2*c - st.FontSize - l.extend}, e}
	case ExternalMechanism:
		e := l.end()
		return []Point{{e.X, e.Y + 2*c + st.FontSize + l.extend}, e}
	}

	s, e := l.start(), l.end()
	cx := l.channelX()
	switch l.kind {
	case ForwardInput:
		return []Point{s, {cx, s.Y}, {cx, e.Y}, e}
	case ForwardGuidance:
		return []Point{s, {e.X, s.Y}, e}
	case BackwardGuidance:
		y := e.Y - c - l.shift
		return []Point{s, {cx, s.Y}, {cx, y}, {e.X, y}, e}
	default: // ForwardMechanism, BackwardMechanism
		y := e.Y + c + l.shift
		return []Point{s, {cx, s.Y}, {cx, y}, {e.X, y}, e}
	}
}

// Points returns the route from source to target.
func (l *Line) Points() []Point {
	return slices.Compact(l.route())
}

// LabelPosition returns the text baseline origin of the label and the box
// the text occupies.
func (l *Line) LabelPosition() (Point, Rect) {
	fs := l.style.FontSize
	pts := l.route()
	var at Point
	switch l.kind {
	case ExternalInput:
		at = pts[0].Add(0, -labelInset)
	case ExternalOutput:
		at = pts[len(pts)-1].Add(-l.labelWidth, -labelInset)
	case ExternalGuidance:
		at = pts[0].Add(labelInset, fs)
	case ExternalMechanism:
		at = pts[0].Add(labelInset, 0)
	default:
		at = pts[0].Add(labelInset, -labelInset)
	}
	return at, Rect{at.X, at.Y - fs, at.X + l.labelWidth, at.Y}
}

// Bounds returns the box covering the route and the label.
func (l *Line) Bounds() Rect {
	r := emptyRect()
	for _, p := range l.route() {
		r = r.include(p)
	}
	_, lr := l.LabelPosition()
	return r.union(lr)
}

// LeftEdge returns the leftmost coordinate of the route and label.
func (l *Line) LeftEdge() float64 { return l.Bounds().X1 }

// TopEdge returns the topmost coordinate of the route and label.
func (l *Line) TopEdge() float64 { return l.Bounds().Y1 }

// RightEdge returns the rightmost coordinate of the route and label.
func (l *Line) RightEdge() float64 { return l.Bounds().X2 }

// BottomEdge returns the lowest coordinate of the route and label.
func (l *Line) BottomEdge() float64 { return l.Bounds().Y2 }

// Avoid adjusts the route against the other lines of the diagram. Lines
// from the boundary extend their open end so all lines of one kind start
// (or end) at the same coordinate. Lines between boxes shift their channel
// by the line gap while it runs along another line.
func (l *Line) Avoid(others []*Line) {
	switch {
	case !l.kind.internal():
		l.align(others)
	case l.kind.channelled():
		l.separate(others)
	}
}

func (l *Line) align(others []*Line) {
	// The open end of an unextended line.
	pts := l.route()
	var base float64
	switch l.kind {
	case ExternalInput:
		base = pts[0].X + l.extend
	case ExternalOutput:
		base = pts[1].X - l.extend
	case ExternalGuidance:
		base = pts[0].Y + l.extend
	default:
		base = pts[0].Y - l.extend
	}

	target := base
	for _, o := range others {
		if o.kind != l.kind {
			continue
		}
		op := o.route()
		switch l.kind {
		case ExternalInput:
			target = min(target, op[0].X)
		case ExternalOutput:
			target = max(target, op[1].X)
		case ExternalGuidance:
			target = min(target, op[0].Y)
		default:
			target = max(target, op[0].Y)
		}
	}
	l.extend = math.Abs(target - base)
}

func (l *Line) separate(others []*Line) {
	l.shift = 0
	for range maxAvoidance {
		if !l.crowds(others) {
			return
		}
		l.shift += l.style.LineGap
	}
}

// crowds reports whether a shiftable segment of l runs along a segment of
// another line. Lines carrying the same output from the same box share their
// trunk and are not considered.
func (l *Line) crowds(others []*Line) bool {
	movable := l.movableSegments()
	for _, o := range others {
		if o.src == l.src && o.label == l.label {
			continue
		}
		for _, os := range segments(o.Points()) {
			for _, ms := range movable {
				if ms.overlaps(os, l.style.LineGap) {
					return true
				}
			}
		}
	}
	return false
}

// movableSegments are the segments whose position depends on the shift:
// all but the first and the last.
func (l *Line) movableSegments() []segment {
	pts := l.route()
	if len(pts) < 4 {
		return nil
	}
	return segments(pts[1 : len(pts)-1])
}

func segments(pts []Point) []segment {
	if len(pts) < 2 {
		return nil
	}
	out := make([]segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		out = append(out, segment{pts[i-1], pts[i]})
	}
	return out
}

// Arrowhead returns the triangle drawn at the target end, tip first.
func (l *Line) Arrowhead() [3]Point {
	pts := l.Points()
	tip := pts[len(pts)-1]
	if len(pts) < 2 {
		return [3]Point{tip, tip, tip}
	}
	prev := pts[len(pts)-2]
	ux, uy := sign(tip.X-prev.X), sign(tip.Y-prev.Y)
	base := tip.Add(-ux*arrowLength, -uy*arrowLength)
	return [3]Point{
		tip,
		base.Add(-uy*arrowHalf, ux*arrowHalf),
		base.Add(uy*arrowHalf, -ux*arrowHalf),
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// rankAt places the line among the others attached to the same side of b.
// Anchors are banded so arrows arriving from different directions do not
// cross at the box edge: on the right, feedback above boundary outputs above
// forward outputs; on the other sides, lines from earlier boxes first (the
// latest of them closest to the corner), then the boundary, then feedback.
func (l *Line) rankAt(b *ProcessBox) anchorRank {
	if l.src == b {
		switch l.kind {
		case BackwardGuidance, BackwardMechanism:
			return anchorRank{0, l.dst.sequence}
		case ExternalOutput:
			return anchorRank{1, 0}
		}
		return anchorRank{2, l.dst.sequence}
	}
	switch l.kind {
	case ForwardInput, ForwardGuidance:
		return anchorRank{0, -l.src.sequence}
	case ForwardMechanism:
		return anchorRank{0, l.src.sequence}
	case BackwardGuidance, BackwardMechanism:
		return anchorRank{2, l.src.sequence}
	}
	return anchorRank{1, 0}
}
