package grid

import "fmt"

// GroupKind tags the role a group plays in the grouping rules.
type GroupKind int

const (
	// BoxGroup is the order-sized hyper-cube block containing a cell.
	BoxGroup GroupKind = iota
	// StackGroup is the line of cells sharing every coordinate except
	// dimension 0.
	StackGroup
	// BandGroup is a line of cells sharing every coordinate except one of
	// dimensions 1..dims. There are dims-1 bands per cell.
	BandGroup
)

// String returns the group kind's conventional name.
func (k GroupKind) String() string {
	switch k {
	case BoxGroup:
		return "box"
	case StackGroup:
		return "stack"
	case BandGroup:
		return "band"
	}
	return fmt.Sprintf("GroupKind(%d)", int(k))
}

// Group is the smallest subdivision of the grid to which the rules apply.
// Each group may contain each element value at most once.
type Group struct {
	Kind GroupKind

	// Elements holds a copy of the group's cell values in enumeration
	// order, EmptyCell for unfilled cells.
	Elements []int
}

// IsValid reports whether the group contains only unique elements,
// ignoring empty cells.
func (g Group) IsValid() bool {
	var seen uint64
	for _, v := range g.Elements {
		if v == EmptyCell {
			continue
		}
		mask := uint64(1) << (v - 1)
		if seen&mask != 0 {
			return false
		}
		seen |= mask
	}
	return true
}

// IsComplete reports whether the group contains every possible element value
// exactly once. A group with any empty cell is not complete.
func (g Group) IsComplete() bool {
	for _, v := range g.Elements {
		if v == EmptyCell {
			return false
		}
	}
	return g.IsValid()
}

// Groups returns the rule groups covering the given point: the containing
// box, the stack along dimension 0, and one band per dimension 1..dims.
// The result always holds dims+1 groups.
//
// The point must be in bounds; Groups panics otherwise.
func (s *Sudoku) Groups(p Point) []Group {
	if !s.inBounds(p) {
		panic(fmt.Sprintf("grid: point %v out of bounds for order %d, dims %d", p, s.order, s.dims))
	}

	groups := make([]Group, 0, s.dims+1)
	groups = append(groups, Group{Kind: BoxGroup, Elements: s.boxElements(p)})
	groups = append(groups, Group{Kind: StackGroup, Elements: s.lineElements(p, 0)})
	for dim := 1; dim < s.dims; dim++ {
		groups = append(groups, Group{Kind: BandGroup, Elements: s.lineElements(p, dim)})
	}
	return groups
}

// boxElements collects the order^dims cells of the box containing p.
func (s *Sudoku) boxElements(p Point) []int {
	origin := p.Snap(s.order)
	size := 1
	for i := 0; i < s.dims; i++ {
		size *= s.order
	}

	elements := make([]int, 0, size)
	offset := make(Point, s.dims)
	cell := make(Point, s.dims)
	for i := 0; i < size; i++ {
		for d := 0; d < s.dims; d++ {
			cell[d] = origin[d] + offset[d]
		}
		elements = append(elements, s.cells[cell.Fold(s.order)])

		// Advance the offset like a dims-digit odometer in base order.
		for d := 0; d < s.dims; d++ {
			offset[d]++
			if offset[d] < s.order {
				break
			}
			offset[d] = 0
		}
	}
	return elements
}

// lineElements collects the axis cells matching p in every dimension except
// the given one.
func (s *Sudoku) lineElements(p Point, dim int) []int {
	axis := s.Axis()
	elements := make([]int, 0, axis)
	cell := p.Clone()
	for c := 0; c < axis; c++ {
		cell[dim] = c
		elements = append(elements, s.cells[cell.Fold(s.order)])
	}
	return elements
}
