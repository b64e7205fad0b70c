package idef0

import (
	"cmp"
	"iter"

	"github.com/matzehuels/idef0/pkg/orderedset"
)

// SideKind names one of the four edges of a boundary.
type SideKind int

const (
	SideLeft SideKind = iota
	SideTop
	SideRight
	SideBottom
)

// String returns the side name.
func (k SideKind) String() string {

	switch k {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Side is one edge of a boundary. It declares the labelled flows it expects
// and, on process boxes, holds one anchor per label that lines attach to.
type Side struct {
	kind    SideKind
	labels  *orderedset.Set[string, string]
	anchors *orderedset.Set[*Anchor, string]
	margin  float64
}

func newSide(kind SideKind) *Side {
	return &Side{
		kind:    kind,
		labels:  orderedset.New(func(s string) string { return s }),
		anchors: orderedset.New(func(a *Anchor) string { return a.Label }),
	}
}

// Kind reports which edge this is.
func (s *Side) Kind() SideKind { return s.kind }

// Expect adds label to the expected flows. Adding a label twice is a no-op.
func (s *Side) Expect(label string) { s.labels.Add(label) }

// Expects reports whether label is one of the side's expected flows.
func (s *Side) Expects(label string) bool { return s.labels.Contains(label) }

// Labels returns the expected labels in declaration order.
func (s *Side) Labels() []string { return s.labels.Items() }

// All iterates over the expected labels in declaration order.
func (s *Side) All() iter.Seq2[int, string] { return s.labels.All() }

// Margin is the layout gap kept free beyond this side.
func (s *Side) Margin() float64 { return s.margin }

// Anchors returns the attached anchors in their current order.
func (s *Side) Anchors() []*Anchor { return s.anchors.Items() }

// Anchor returns the anchor for label, if a line is attached there.
func (s *Side) Anchor(label string) (*Anchor, bool) { return s.anchors.Lookup(label) }

func (s *Side) attach(label string, l *Line) *Anchor {
	a := s.anchors.Get(label, func() *Anchor { return &Anchor{Label: label, side: s.kind} })
	a.lines = append(a.lines, l)
	return a
}

// sortAnchors stably reorders the anchors by rank, where rank is evaluated
// for each anchor and the smallest value over its lines wins.
func (s *Side) sortAnchors(rank func(*Line) anchorRank) {
	best := make(map[*Anchor]anchorRank, s.anchors.Len())
	for _, a := range s.anchors.All() {
		for i, l := range a.lines {
			r := rank(l)
			if i == 0 || r.less(best[a]) {
				best[a] = r
			}
		}
	}
	s.anchors = s.anchors.SortBy(func(a, b *Anchor) int {
		ra, rb := best[a], best[b]
		if c := cmp.Compare(ra.band, rb.band); c != 0 {
			return c
		}
		return cmp.Compare(ra.order, rb.order)
	})
}

// Anchor is the attachment point of one label on a process box side.
// Offset is measured from the side's starting corner (top for vertical
// sides, left for horizontal ones).
type Anchor struct {
	Label  string
	Offset float64

	side  SideKind
	lines []*Line
}

// Lines returns the lines attached at this anchor.
func (a *Anchor) Lines() []*Line { return a.lines }

type anchorRank struct {
	band, order int
}

func (r anchorRank) less(o anchorRank) bool {
	return r.band < o.band || (r.band == o.band && r.order < o.order)
}

// sides bundles the four edges shared by diagrams and process boxes.
type sides struct {
	left, top, right, bottom *Side
}

func newSides() sides {
	return sides{
		left:   newSide(SideLeft),
		top:    newSide(SideTop),
		right:  newSide(SideRight),
		bottom: newSide(SideBottom),
	}
}

// LeftSide returns the input side.
func (s *sides) LeftSide() *Side { return s.left }

// TopSide returns the control side.
func (s *sides) TopSide() *Side { return s.top }

// RightSide returns the output side.
func (s *sides) RightSide() *Side { return s.right }

// BottomSide returns the mechanism side.
func (s *sides) BottomSide() *Side { return s.bottom }

// Side returns the edge of the given kind.
func (s *sides) Side(k SideKind) *Side {
	switch k {
	case SideLeft:
		return s.left
	case SideTop:
		return s.top
	case SideRight:
		return s.right
	default:
		return s.bottom
	}
}

func (s *sides) each(fn func(*Side)) {
	fn(s.left)
	fn(s.top)
	fn(s.right)
	fn(s.bottom)
}
