package grid

import (
	"errors"
	"fmt"
)

// Special cell values
const (
	EmptyCell   = 0
	InvalidCell = -1
)

// MaxOrder bounds the puzzle order so that a candidate set for one cell
// always fits in a single machine word (order² ≤ 64).
const MaxOrder = 8

var (
	ErrInvalidOrder      = errors.New("order must be between 1 and 8")
	ErrInvalidDimensions = errors.New("dimensions must be at least 2")
	ErrInvalidValue      = errors.New("value out of range for this order")
)

// Sudoku is a (partial) n-dimensional grid of elements.
//
// Cells are stored flat in Fold order: order^(2+dims) cells, each holding a
// value in [1, order²] or EmptyCell. Dimensionality is fixed at construction
// and shared by every Point passed to the receiver's methods.
type Sudoku struct {
	order int
	dims  int
	cells []int

	// emptyCount tracks unfilled cells for quick completion checks.
	// Once initialized, it is only touched by Substitute and clearIndex.
	emptyCount int
}

// New creates an empty Sudoku of the given order and dimensionality.
func New(order, dims int) (*Sudoku, error) {
	if order < 1 || order > MaxOrder {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if dims < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimensions, dims)
	}
	size := 1
	for i := 0; i < 2+dims; i++ {
		size *= order
	}
	return &Sudoku{
		order:      order,
		dims:       dims,
		cells:      make([]int, size),
		emptyCount: size,
	}, nil
}

// Order returns the base size of the puzzle; values run 1..order².
func (s *Sudoku) Order() int { return s.order }

// Dims returns the puzzle's dimensionality.
func (s *Sudoku) Dims() int { return s.dims }

// Axis returns order², the side length of the grid along one dimension.
func (s *Sudoku) Axis() int { return s.order * s.order }

// CellCount returns the total number of cells, order^(2+dims).
func (s *Sudoku) CellCount() int { return len(s.cells) }

// Clone creates an independent copy of the Sudoku.
func (s *Sudoku) Clone() *Sudoku {
	if s == nil {
		return nil
	}
	clone := *s
	clone.cells = make([]int, len(s.cells))
	copy(clone.cells, s.cells)
	return &clone
}

// Get returns the value at the given point.
// Returns InvalidCell for out-of-range points.
func (s *Sudoku) Get(p Point) int {
	if !s.inBounds(p) {
		return InvalidCell
	}
	return s.cells[p.Fold(s.order)]
}

// At returns the value at the given linear index.
// Returns InvalidCell for out-of-range indices.
func (s *Sudoku) At(index int) int {
	if index < 0 || index >= len(s.cells) {
		return InvalidCell
	}
	return s.cells[index]
}

// Substitute overwrites the cell at the given point.
// Pass EmptyCell to clear the cell. The move is not checked against the
// grouping rules; use IsValid to audit the whole grid.
func (s *Sudoku) Substitute(p Point, val int) error {
	if !s.inBounds(p) {
		return fmt.Errorf("point %v out of bounds for order %d", p, s.order)
	}
	if val != EmptyCell && (val < 1 || val > s.Axis()) {
		return fmt.Errorf("%w: got %d", ErrInvalidValue, val)
	}
	s.setIndex(p.Fold(s.order), val)
	return nil
}

// SubstituteIndex overwrites the cell at the given linear index without
// validation. Callers hold indices produced by Fold or Points enumeration;
// use Substitute for anything user-supplied.
func (s *Sudoku) SubstituteIndex(index, val int) {
	s.setIndex(index, val)
}

// setIndex overwrites a cell by linear index without validation.
// Use only when certain the index and value are in range.
func (s *Sudoku) setIndex(index, val int) {
	old := s.cells[index]
	s.cells[index] = val
	if old == EmptyCell && val != EmptyCell {
		s.emptyCount--
	} else if old != EmptyCell && val == EmptyCell {
		s.emptyCount++
	}
}

// clearIndex empties a cell by linear index.
// No harm is done clearing an already empty cell.
func (s *Sudoku) clearIndex(index int) {
	s.setIndex(index, EmptyCell)
}

// Points enumerates every cell of the grid exactly once, in Fold order.
func (s *Sudoku) Points() []Point {
	points := make([]Point, len(s.cells))
	for i := range s.cells {
		points[i] = Unfold(i, s.order, s.dims)
	}
	return points
}

// EmptyCount returns the number of empty cells in the grid.
func (s *Sudoku) EmptyCount() int {
	return s.emptyCount
}

// IsComplete reports whether every cell holds a value.
func (s *Sudoku) IsComplete() bool {
	return s.emptyCount == 0
}

// IsValid reports whether the grid satisfies the grouping rules.
// Empty cells are ignored.
func (s *Sudoku) IsValid() bool {
	for _, p := range s.Points() {
		for _, g := range s.Groups(p) {
			if !g.IsValid() {
				return false
			}
		}
	}
	return true
}

// IsSolved reports whether the grid is complete and every group is complete.
func (s *Sudoku) IsSolved() bool {
	if !s.IsComplete() {
		return false
	}
	for _, p := range s.Points() {
		for _, g := range s.Groups(p) {
			if !g.IsComplete() {
				return false
			}
		}
	}
	return true
}

// inBounds reports whether a point addresses a cell of this grid.
func (s *Sudoku) inBounds(p Point) bool {
	if len(p) != s.dims {
		return false
	}
	for _, c := range p {
		if c < 0 || c >= s.Axis() {
			return false
		}
	}
	return true
}
