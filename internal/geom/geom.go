package geom

import "fmt"

// Point is an integer 2D coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dimension is a pair of small magnitudes used for margins, padding, border
// widths and minimum sizes.
type Dimension struct {
	W uint8
	H uint8
}

// Uniform returns a Dimension with the same value on both axes.
func Uniform(n uint8) Dimension {
	return Dimension{W: n, H: n}
}

// Add combines two insets.
func (d Dimension) Add(o Dimension) Dimension {
	return Dimension{W: d.W + o.W, H: d.H + o.H}
}

// NonZero reports whether either component is set.
func (d Dimension) NonZero() bool {
	return d.W != 0 || d.H != 0
}
