package idef0

import "math"

// Point is a position in diagram coordinates; y grows downward.
type Point struct {
	X, Y float64
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Rect is an axis-aligned bounding box.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

func emptyRect() Rect {
	return Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (r Rect) include(p Point) Rect {
	return Rect{min(r.X1, p.X), min(r.Y1, p.Y), max(r.X2, p.X), max(r.Y2, p.Y)}
}

func (r Rect) union(o Rect) Rect {
	return Rect{min(r.X1, o.X1), min(r.Y1, o.Y1), max(r.X2, o.X2), max(r.Y2, o.Y2)}
}

// segment is one straight piece of an orthogonal line route.
type segment struct {
	a, b Point
}

func (s segment) vertical() bool { return s.a.X == s.b.X && s.a.Y != s.b.Y }

func (s segment) horizontal() bool { return s.a.Y == s.b.Y && s.a.X != s.b.X }

// overlaps reports whether two parallel segments run closer than tol to each
// other along a shared stretch longer than tol.
func (s segment) overlaps(o segment, tol float64) bool {
	switch {
	case s.vertical() && o.vertical():
		if math.Abs(s.a.X-o.a.X) >= tol {
			return false
		}
		return spanOverlap(s.a.Y, s.b.Y, o.a.Y, o.b.Y) > tol
	case s.horizontal() && o.horizontal():
		if math.Abs(s.a.Y-o.a.Y) >= tol {
			return false
		}
		return spanOverlap(s.a.X, s.b.X, o.a.X, o.b.X) > tol
	}
	return false
}

func spanOverlap(a1, a2, b1, b2 float64) float64 {
	lo := max(min(a1, a2), min(b1, b2))
	hi := min(max(a1, a2), max(b1, b2))
	return hi - lo
}
