package grid

import "testing"

// completed fills a grid of the given order with a valid solved pattern:
// each row is the previous one shifted, with an extra shift between bands.
func completed(t *testing.T, order int) *Sudoku {
	t.Helper()
	s, err := New(order, 2)
	if err != nil {
		t.Fatalf("New(%d, 2) failed: %v", order, err)
	}
	axis := order * order
	for y := 0; y < axis; y++ {
		for x := 0; x < axis; x++ {
			val := (order*y+y/order+x)%axis + 1
			if err := s.Substitute(Point{x, y}, val); err != nil {
				t.Fatalf("Substitute(%d, %d): %v", x, y, err)
			}
		}
	}
	return s
}

func TestNewAllocatesEveryCell(t *testing.T) {
	cases := []struct {
		order, dims, cells int
	}{
		{3, 2, 81},
		{4, 2, 256},
		{2, 3, 32},
		{1, 2, 1},
	}
	for _, c := range cases {
		s, err := New(c.order, c.dims)
		if err != nil {
			t.Fatalf("New(%d, %d): %v", c.order, c.dims, err)
		}
		if got := s.CellCount(); got != c.cells {
			t.Errorf("New(%d, %d) has %d cells, want %d", c.order, c.dims, got, c.cells)
		}
		if got := len(s.Points()); got != c.cells {
			t.Errorf("Points() yields %d points, want %d", got, c.cells)
		}
		if s.IsComplete() {
			t.Errorf("a fresh grid must not be complete")
		}
		if s.EmptyCount() != c.cells {
			t.Errorf("EmptyCount = %d, want %d", s.EmptyCount(), c.cells)
		}
	}
}

func TestNewRejectsBadParameters(t *testing.T) {
	if _, err := New(0, 2); err == nil {
		t.Error("order 0 accepted")
	}
	if _, err := New(9, 2); err == nil {
		t.Error("order 9 accepted; candidate sets no longer fit one word")
	}
	if _, err := New(3, 1); err == nil {
		t.Error("one-dimensional grid accepted")
	}
}

func TestSubstituteTracksEmptyCount(t *testing.T) {
	s, _ := New(3, 2)
	p := Point{4, 4}
	if err := s.Substitute(p, 5); err != nil {
		t.Fatal(err)
	}
	if s.Get(p) != 5 {
		t.Fatalf("Get after Substitute = %d", s.Get(p))
	}
	if s.EmptyCount() != 80 {
		t.Fatalf("EmptyCount = %d, want 80", s.EmptyCount())
	}

	// Overwriting in place keeps the count.
	if err := s.Substitute(p, 6); err != nil {
		t.Fatal(err)
	}
	if s.EmptyCount() != 80 {
		t.Fatalf("EmptyCount after overwrite = %d, want 80", s.EmptyCount())
	}

	if err := s.Substitute(p, EmptyCell); err != nil {
		t.Fatal(err)
	}
	if s.EmptyCount() != 81 || s.Get(p) != EmptyCell {
		t.Fatalf("clearing failed: count %d, value %d", s.EmptyCount(), s.Get(p))
	}
}

func TestSubstituteRejectsBadInput(t *testing.T) {
	s, _ := New(3, 2)
	if err := s.Substitute(Point{9, 0}, 1); err == nil {
		t.Error("out-of-range point accepted")
	}
	if err := s.Substitute(Point{0}, 1); err == nil {
		t.Error("point with wrong dimensionality accepted")
	}
	if err := s.Substitute(Point{0, 0}, 10); err == nil {
		t.Error("value above order² accepted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s, _ := New(3, 2)
	s.Substitute(Point{0, 0}, 1)
	clone := s.Clone()
	clone.Substitute(Point{0, 0}, 2)
	if s.Get(Point{0, 0}) != 1 {
		t.Fatal("mutating a clone leaked into the original")
	}
}

func TestCompletedGridIsSolved(t *testing.T) {
	s := completed(t, 3)
	if !s.IsComplete() {
		t.Fatal("completed grid reports incomplete")
	}
	if !s.IsValid() {
		t.Fatal("completed grid reports invalid")
	}
	if !s.IsSolved() {
		t.Fatal("completed grid reports unsolved")
	}
}

func TestDuplicateBreaksValidity(t *testing.T) {
	s, _ := New(3, 2)
	s.Substitute(Point{0, 0}, 1)
	s.Substitute(Point{5, 0}, 1)
	if s.IsValid() {
		t.Fatal("duplicate in a stack went undetected")
	}
}
