package solver

import (
	"math/bits"

	"github.com/Aehmlo/ku/internal/grid"
)

// PossibilitySet is the set of candidate values remaining for one cell.
// Bit i represents value i+1 (bit 0 = value 1), mirroring the grid's value
// range [1, order²]; order is capped so the set fits one word.
type PossibilitySet uint64

// NewPossibilitySet returns the full candidate set for the given order.
func NewPossibilitySet(order int) PossibilitySet {
	axis := order * order
	if axis >= 64 {
		return ^PossibilitySet(0)
	}
	return PossibilitySet(1)<<axis - 1
}

// Contains reports whether the value remains a candidate.
func (s PossibilitySet) Contains(v int) bool {
	return s&(1<<(v-1)) != 0
}

// Eliminate removes a value from the set. The second return is false if the
// elimination emptied the set, signalling a contradiction to the caller.
func (s PossibilitySet) Eliminate(v int) (PossibilitySet, bool) {
	s &^= 1 << (v - 1)
	return s, s != 0
}

// Freedom returns the number of remaining candidates.
func (s PossibilitySet) Freedom() int {
	return bits.OnesCount64(uint64(s))
}

// Values lists the remaining candidates in ascending order.
func (s PossibilitySet) Values() []int {
	values := make([]int, 0, s.Freedom())
	for rest := uint64(s); rest != 0; {
		v := bits.TrailingZeros64(rest) + 1
		values = append(values, v)
		rest &= rest - 1
	}
	return values
}

// PossibilityMap holds one candidate set per unfilled cell of a grid
// snapshot, derived by a single pass of constraint elimination: each empty
// cell starts from the full set and loses every value already present in any
// of its groups. Filled cells carry no set.
//
// The pass is not iterated to fixpoint; the search recursion supplies the
// rest of the constraint strength.
type PossibilityMap struct {
	sets   []PossibilitySet
	active []bool
}

// NewPossibilityMap builds a fresh map from a grid snapshot.
func NewPossibilityMap(s *grid.Sudoku) *PossibilityMap {
	m := &PossibilityMap{
		sets:   make([]PossibilitySet, s.CellCount()),
		active: make([]bool, s.CellCount()),
	}

	full := NewPossibilitySet(s.Order())
	for i, p := range s.Points() {
		if s.At(i) != grid.EmptyCell {
			continue
		}
		set := full
		for _, g := range s.Groups(p) {
			for _, v := range g.Elements {
				if v == grid.EmptyCell {
					continue
				}
				// An emptied set is kept: Next hands it back with zero
				// freedom and the search treats the branch as dead.
				set, _ = set.Eliminate(v)
			}
		}
		m.sets[i] = set
		m.active[i] = true
	}
	return m
}

// Next returns the linear index and candidate set of the unfilled cell with
// minimum freedom, ties broken by enumeration order. The third return is
// false when no unfilled cell remains, the recursion's base-case signal; the
// caller decides whether that means solved or stuck by checking the grid.
func (m *PossibilityMap) Next() (int, PossibilitySet, bool) {
	best := -1
	bestFreedom := 0
	for i, ok := range m.active {
		if !ok {
			continue
		}
		f := m.sets[i].Freedom()
		if best == -1 || f < bestFreedom {
			best, bestFreedom = i, f
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return best, m.sets[best], true
}
