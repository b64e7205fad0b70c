package idef0

import "github.com/matzehuels/idef0/pkg/statement"

// Boundary is anything with four sides that lines can connect to: the
// diagram itself and each process box inside it.
type Boundary interface {
	Name() string
	LeftSide() *Side
	TopSide() *Side
	RightSide() *Side
	BottomSide() *Side
	Side(SideKind) *Side
}

var (
	_ Boundary = (*Diagram)(nil)
	_ Boundary = (*ProcessBox)(nil)
)

// Builder declares the flows of a boundary. It is handed to the callback of
// [Diagram.Box] and exposes only the four flow operations.
type Builder struct {
	target Boundary
}

// NewBuilder returns a builder for b.
func NewBuilder(b Boundary) *Builder { return &Builder{target: b} }

// Receives declares inputs, which enter on the left.
func (b *Builder) Receives(labels ...string) *Builder { return b.expect(SideLeft, labels) }

// Respects declares controls, which enter from the top.
func (b *Builder) Respects(labels ...string) *Builder { return b.expect(SideTop, labels) }

// Requires declares mechanisms, which enter from the bottom.
func (b *Builder) Requires(labels ...string) *Builder { return b.expect(SideBottom, labels) }

// Produces declares outputs, which leave on the right.
func (b *Builder) Produces(labels ...string) *Builder { return b.expect(SideRight, labels) }

// Apply declares label according to a parsed predicate. Composition and
// unknown predicates are ignored and reported as false.
func (b *Builder) Apply(p statement.Predicate, label string) bool {
	k, ok := predicateSide(p)
	if !ok {
		return false
	}
	b.target.Side(k).Expect(label)
	return true
}

func (b *Builder) expect(k SideKind, labels []string) *Builder {
	s := b.target.Side(k)
	for _, l := range labels {
		s.Expect(l)
	}
	return b
}

func predicateSide(p statement.Predicate) (SideKind, bool) {
	switch p {
	case statement.Receives:
		return SideLeft, true
	case statement.Respects:
		return SideTop, true
	case statement.Requires:
		return SideBottom, true
	case statement.Produces:
		return SideRight, true
	}
	return 0, false
}
