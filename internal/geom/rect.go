package geom

import "fmt"

// Rect is an integer axis-aligned rectangle. W and H may be zero, in which case
// the rect is empty.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the width and height as a point.
func (r Rect) Size() Point {
	return Point{X: r.W, Y: r.H}
}

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Eq reports component-wise equality.
func (r Rect) Eq(o Rect) bool {
	return r == o
}

// Contains reports whether pt lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.Right() && pt.Y >= r.Y && pt.Y < r.Bottom()
}

// Intersect returns the overlap of r and o, or the zero Rect when they do not
// overlap. Rects that only share an edge do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	if r.IsEmpty() || o.IsEmpty() {
		return Rect{}
	}

	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())

	if x1 >= x2 || y1 >= y2 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Offset translates r by pt.
func (r Rect) Offset(pt Point) Rect {
	return Rect{X: r.X + pt.X, Y: r.Y + pt.Y, W: r.W, H: r.H}
}

// OffsetNeg translates r by -pt.
func (r Rect) OffsetNeg(pt Point) Rect {
	return Rect{X: r.X - pt.X, Y: r.Y - pt.Y, W: r.W, H: r.H}
}

// Deflate shrinks r by k on every side.
func (r Rect) Deflate(k int) Rect {
	return Rect{X: r.X + k, Y: r.Y + k, W: r.W - 2*k, H: r.H - 2*k}
}

// DeflateDim shrinks r by d.W horizontally and d.H vertically on each side.
func (r Rect) DeflateDim(d Dimension) Rect {
	w, h := int(d.W), int(d.H)
	return Rect{X: r.X + w, Y: r.Y + h, W: r.W - 2*w, H: r.H - 2*h}
}

// CenterIn places r inside target, centering on the requested axes. On an axis
// that is not centered the result is aligned with target's origin.
func (r Rect) CenterIn(target Rect, horizontal, vertical bool) Rect {
	out := Rect{X: target.X, Y: target.Y, W: r.W, H: r.H}
	if horizontal {
		out.X += (target.W - r.W) / 2
	}
	if vertical {
		out.Y += (target.H - r.H) / 2
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("RECT(xy[%d,%d],wh[%d,%d])", r.X, r.Y, r.W, r.H)
}
