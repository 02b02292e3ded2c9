package grid

import "fmt"

// Point addresses a single cell in a puzzle of any dimensionality.
// Coordinate i runs along dimension i; every coordinate lies in [0, order²).
// The origin is the top-left corner, with x (dimension 0) increasing to the
// right and y (dimension 1) increasing downward.
type Point []int

// Origin returns the zero point in the given number of dimensions.
func Origin(dims int) Point {
	return make(Point, dims)
}

// WithX returns a copy of the point with dimension 0 replaced.
func (p Point) WithX(x int) Point {
	q := p.Clone()
	q[0] = x
	return q
}

// WithY returns a copy of the point with dimension 1 replaced.
func (p Point) WithY(y int) Point {
	q := p.Clone()
	q[1] = y
	return q
}

// With returns a copy of the point with the given dimension replaced.
func (p Point) With(dim, value int) Point {
	q := p.Clone()
	q[dim] = value
	return q
}

// Clone returns an independent copy of the point.
func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

// Fold maps the point to its linear cell index, treating the axis length
// order² as a mixed-radix base with dimension 0 least significant.
func (p Point) Fold(order int) int {
	axis := order * order
	index := 0
	for i := len(p) - 1; i >= 0; i-- {
		index = index*axis + p[i]
	}
	return index
}

// Unfold is the inverse of Fold: it recovers the point addressed by a linear
// cell index in a puzzle of the given order and dimensionality.
func Unfold(index, order, dims int) Point {
	axis := order * order
	p := make(Point, dims)
	for i := dims - 1; i >= 0; i-- {
		radix := 1
		for j := 0; j < i; j++ {
			radix *= axis
		}
		p[i] = index / radix
		index %= radix
	}
	return p
}

// Snap rounds every coordinate down to the nearest multiple of order,
// yielding the origin of the box containing the point.
func (p Point) Snap(order int) Point {
	q := make(Point, len(p))
	for i, c := range p {
		q[i] = c - c%order
	}
	return q
}

// String renders the point as a coordinate tuple, e.g. "(3, 0)".
func (p Point) String() string {
	s := "("
	for i, c := range p {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", c)
	}
	return s + ")"
}
