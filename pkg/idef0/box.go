package idef0

import (
	"fmt"
	"math"
)

// ProcessBox is one process of the model, drawn as a rectangle with inputs
// entering on the left, controls from the top, mechanisms from the bottom and
// outputs leaving on the right.
type ProcessBox struct {
	sides

	name string

	precedence    int
	hasPrecedence bool
	depth         int
	sequence      int

	x, y          float64
	width, height float64
	labelRoom     float64

	style *Style
}

func newProcessBox(name string, style *Style) *ProcessBox {
	return &ProcessBox{sides: newSides(), name: name, style: style}
}

// Name returns the process name.
func (b *ProcessBox) Name() string { return b.name }

// Precedence is the sort key used to order boxes. Unless set explicitly it
// is the box's dataflow depth: the longest chain of boxes whose outputs feed
// its inputs.
func (b *ProcessBox) Precedence() int {
	if b.hasPrecedence {
		return b.precedence
	}
	return b.depth
}

// SetPrecedence overrides the derived precedence.
func (b *ProcessBox) SetPrecedence(p int) {
	b.precedence = p
	b.hasPrecedence = true
}

// Sequence is the 0-based rank assigned by [Diagram.SortBoxes].
func (b *ProcessBox) Sequence() int { return b.sequence }

// SetSequence assigns the box's rank.
func (b *ProcessBox) SetSequence(i int) { b.sequence = i }

// NodeNumber is the IDEF0 node label drawn in the box's corner.
func (b *ProcessBox) NodeNumber() string { return fmt.Sprintf("A%d", b.sequence+1) }

// MoveTo places the top-left corner at p.
func (b *ProcessBox) MoveTo(p Point) { b.x, b.y = p.X, p.Y }

// Translate moves the box by (dx, dy).
func (b *ProcessBox) Translate(dx, dy float64) { b.x += dx; b.y += dy }

// X1 returns the left edge of the box.
func (b *ProcessBox) X1() float64 { return b.x }

// Y1 returns the top edge of the box.
func (b *ProcessBox) Y1() float64 { return b.y }

// X2 returns the right edge of the box.
func (b *ProcessBox) X2() float64 { return b.x + b.width }

// Y2 returns the bottom edge of the box.
func (b *ProcessBox) Y2() float64 { return b.y + b.height }

// Width returns the horizontal span of the box.
func (b *ProcessBox) Width() float64 { return b.width }

// Height returns the vertical span of the box.
func (b *ProcessBox) Height() float64 { return b.height }

// Bounds returns the rectangle the box occupies.
func (b *ProcessBox) Bounds() Rect { return Rect{b.X1(), b.Y1(), b.X2(), b.Y2()} }

// RightEdge returns the rightmost coordinate the box occupies.
func (b *ProcessBox) RightEdge() float64 { return b.X2() }

// BottomEdge returns the lowest coordinate the box occupies.
func (b *ProcessBox) BottomEdge() float64 { return b.Y2() }

// NamePosition is the baseline point the box name is centred on.
func (b *ProcessBox) NamePosition() Point {
	return Point{b.X1() + b.width/2, b.Y1() + b.height/2 + b.style.FontSize/3}
}

// NodeNumberPosition is the baseline point the node number ends at.
func (b *ProcessBox) NodeNumberPosition() Point {
	return Point{b.X2() - labelInset, b.Y2() - labelInset}
}

// ChannelX is the x coordinate of the vertical channel that lines leaving
// this box run down or up before any shift.
func (b *ProcessBox) ChannelX() float64 {
	return b.X2() + b.style.Clearance + b.labelRoom
}

// AnchorPoint returns where label attaches on side k. The second result is
// false when no line is attached there.
func (b *ProcessBox) AnchorPoint(k SideKind, label string) (Point, bool) {
	a, ok := b.Side(k).Anchor(label)
	if !ok {
		return Point{}, false
	}
	return b.anchorPoint(a), true
}

func (b *ProcessBox) anchorPoint(a *Anchor) Point {
	switch a.side {
	case SideLeft:
		return Point{b.X1(), b.Y1() + a.Offset}
	case SideRight:
		return Point{b.X2(), b.Y1() + a.Offset}
	case SideTop:
		return Point{b.X1() + a.Offset, b.Y1()}
	default:
		return Point{b.X1() + a.Offset, b.Y2()}
	}
}

// SortAnchors orders each side's anchors so lines reaching the box from
// different places do not cross at its edge.
func (b *ProcessBox) SortAnchors() {
	b.each(func(s *Side) {
		s.sortAnchors(func(l *Line) anchorRank { return l.rankAt(b) })
	})
}

// Layout sizes the box for its name and anchors, spaces the anchors evenly
// along each side and sets the side margins from the lines that use them.
func (b *ProcessBox) Layout(lines []*Line) {
	st := b.style

	b.width = max(
		st.BoxMinWidth,
		st.textWidth(b.name)+2*st.BoxPadding,
		spanFor(b.top.anchors.Len(), st.AnchorSpacing),
		spanFor(b.bottom.anchors.Len(), st.AnchorSpacing),
	)
	b.height = max(
		st.BoxMinHeight,
		2*st.FontSize+2*st.BoxPadding,
		spanFor(b.left.anchors.Len(), st.AnchorSpacing),
		spanFor(b.right.anchors.Len(), st.AnchorSpacing),
	)

	b.each(func(s *Side) {
		length := b.height
		if s.kind == SideTop || s.kind == SideBottom {
			length = b.width
		}
		n := s.anchors.Len()
		for i, a := range s.anchors.All() {
			a.Offset = math.Round(length * float64(i+1) / float64(n+1))
		}
	})

	var channels, under int
	b.labelRoom = 0
	for _, l := range lines {
		if l.src == b && l.kind.internal() {
			b.labelRoom = max(b.labelRoom, l.labelWidth+labelInset)
			if l.kind.channelled() {
				channels++
			}
		}
		if l.dst == b && (l.kind == ForwardMechanism || l.kind == BackwardMechanism) {
			under++
		}
	}
	b.right.margin = st.SideMargin + st.Clearance + b.labelRoom + st.LineGap*float64(channels)
	b.bottom.margin = st.SideMargin + 2*st.Clearance + st.LineGap*float64(under)
}

func spanFor(anchors int, spacing float64) float64 {
	return float64(anchors+1) * spacing
}
