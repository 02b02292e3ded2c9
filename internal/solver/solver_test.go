package solver

import (
	"errors"
	"testing"
	"time"

	"github.com/Aehmlo/ku/internal/grid"
)

// completed fills a grid of the given order with a valid solved pattern.
func completed(t *testing.T, order int) *grid.Sudoku {
	t.Helper()
	s, err := grid.New(order, 2)
	if err != nil {
		t.Fatal(err)
	}
	axis := order * order
	for y := 0; y < axis; y++ {
		for x := 0; x < axis; x++ {
			val := (order*y+y/order+x)%axis + 1
			if err := s.Substitute(grid.Point{x, y}, val); err != nil {
				t.Fatal(err)
			}
		}
	}
	return s
}

func TestSolvedGridScoresZero(t *testing.T) {
	s := completed(t, 3)
	score, ok := Score(s)
	if !ok {
		t.Fatal("solved grid is unscorable")
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
	if Grade(score) != Beginner {
		t.Fatalf("grade = %v, want beginner", Grade(score))
	}
}

func TestSolvedGridIsItsOwnSolution(t *testing.T) {
	s := completed(t, 3)
	solution, err := Solution(s)
	if err != nil {
		t.Fatalf("Solution failed: %v", err)
	}
	if solution.String() != s.String() {
		t.Fatal("solution differs from the already solved grid")
	}
	if !IsUniquelySolvable(s) {
		t.Fatal("solved grid reported not uniquely solvable")
	}
}

func TestSingleHoleSolvesWithMinimalScore(t *testing.T) {
	s := completed(t, 3)
	hole := grid.Point{4, 4}
	want := s.Get(hole)
	s.Substitute(hole, grid.EmptyCell)

	solution, err := Solution(s)
	if err != nil {
		t.Fatalf("Solution failed: %v", err)
	}
	if solution.Get(hole) != want {
		t.Fatalf("solved value %d, want %d", solution.Get(hole), want)
	}

	// One empty cell, one forced candidate: no branching, so the score is
	// exactly the empty-cell count.
	score, ok := Score(s)
	if !ok || score != 1 {
		t.Fatalf("score = %d (ok=%v), want 1", score, ok)
	}
}

func TestSolverDoesNotMutateInput(t *testing.T) {
	s := completed(t, 3)
	s.Substitute(grid.Point{0, 0}, grid.EmptyCell)
	before := s.String()
	if _, err := Solution(s); err != nil {
		t.Fatal(err)
	}
	if s.String() != before {
		t.Fatal("solving mutated the input puzzle")
	}
}

func TestEmptyGridIsNotUnique(t *testing.T) {
	s, _ := grid.New(3, 2)
	if IsUniquelySolvable(s) {
		t.Fatal("empty grid reported uniquely solvable")
	}
	if _, err := Solution(s); !errors.Is(err, ErrNoUniqueSolution) {
		t.Fatalf("got %v, want ErrNoUniqueSolution", err)
	}
	if DifficultyOf(s) != Unplayable {
		t.Fatalf("difficulty = %v, want unplayable", DifficultyOf(s))
	}
}

func TestInvalidGridFailsToSolve(t *testing.T) {
	// A filled grid with a duplicate must not pass as its own solution.
	s := completed(t, 3)
	s.Substitute(grid.Point{0, 0}, s.Get(grid.Point{1, 0}))
	if s.IsValid() {
		t.Fatal("duplicate went undetected; the case is broken")
	}

	if _, err := Solution(s); !errors.Is(err, ErrInvalidPuzzle) {
		t.Fatalf("got %v, want ErrInvalidPuzzle", err)
	}
	if IsUniquelySolvable(s) {
		t.Fatal("invalid grid reported uniquely solvable")
	}
	if _, ok := Score(s); ok {
		t.Fatal("invalid grid was scored")
	}
	if DifficultyOf(s) != Unplayable {
		t.Fatalf("difficulty = %v, want unplayable", DifficultyOf(s))
	}
}

func TestEmptiedSetBacktracksCleanly(t *testing.T) {
	// The grid is valid, but (0, 0) sees every value: 1..8 along its row
	// and 9 below it. The map hands back a zero-freedom set and the search
	// must backtrack past it, not panic.
	text := "_ 1 2 3 4 5 6 7 8\n" +
		"9 _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n" +
		"_ _ _ _ _ _ _ _ _\n"
	s, err := grid.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsValid() {
		t.Fatal("grid should be valid; only search can expose the dead end")
	}

	m := NewPossibilityMap(s)
	if set := m.sets[grid.Point{0, 0}.Fold(3)]; set.Freedom() != 0 {
		t.Fatalf("candidate set = %v, want empty", set.Values())
	}
	if _, ok := Score(s); ok {
		t.Fatal("puzzle with a dead cell was scored")
	}
	if _, err := Solution(s); !errors.Is(err, ErrNoUniqueSolution) {
		t.Fatalf("got %v, want ErrNoUniqueSolution", err)
	}
}

func TestClassicPuzzleSolves(t *testing.T) {
	text := "5 3 _ _ 7 _ _ _ _\n" +
		"6 _ _ 1 9 5 _ _ _\n" +
		"_ 9 8 _ _ _ _ 6 _\n" +
		"8 _ _ _ 6 _ _ _ 3\n" +
		"4 _ _ 8 _ 3 _ _ 1\n" +
		"7 _ _ _ 2 _ _ _ 6\n" +
		"_ 6 _ _ _ _ 2 8 _\n" +
		"_ _ _ 4 1 9 _ _ 5\n" +
		"_ _ _ _ 8 _ _ 7 9\n"
	s, err := grid.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	solution, err := Solution(s)
	if err != nil {
		t.Fatalf("Solution failed: %v", err)
	}
	if !solution.IsSolved() {
		t.Fatal("returned grid is not solved")
	}
	// Givens survive the search.
	for _, p := range s.Points() {
		if v := s.Get(p); v != grid.EmptyCell && solution.Get(p) != v {
			t.Fatalf("given at %v changed from %d to %d", p, v, solution.Get(p))
		}
	}
}

func TestSearchTimeout(t *testing.T) {
	s, _ := grid.New(3, 2)
	solver := New(s, &Options{MaxSolutions: 2, Timeout: time.Nanosecond})
	if _, err := solver.Search(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestScoreWithTimeout(t *testing.T) {
	s, _ := grid.New(3, 2)
	_, err := ScoreWith(s, &Options{MaxSolutions: 2, Timeout: time.Nanosecond})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestDifficultyGrading(t *testing.T) {
	cases := []struct {
		score int
		want  Difficulty
	}{
		{0, Beginner}, {50, Beginner},
		{51, Easy}, {125, Easy},
		{126, Intermediate}, {200, Intermediate},
		{201, Difficult}, {300, Difficult},
		{301, Advanced}, {999, Advanced},
	}
	for _, c := range cases {
		if got := Grade(c.score); got != c.want {
			t.Errorf("Grade(%d) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestDifficultyOrdering(t *testing.T) {
	order := []Difficulty{Unplayable, Beginner, Easy, Intermediate, Difficult, Advanced}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("%v is not below %v", order[i-1], order[i])
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Beginner, Easy, Intermediate, Difficult, Advanced} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
	}
	if got, err := ParseDifficulty(" Easy "); err != nil || got != Easy {
		t.Errorf("ParseDifficulty with spaces and case = %v, %v", got, err)
	}
	if _, err := ParseDifficulty("unplayable"); err == nil {
		t.Error("unplayable accepted as a difficulty name")
	}
}
