package solver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/Aehmlo/ku/internal/grid"
)

var (
	ErrInvalidPuzzle    = errors.New("puzzle violates the grouping rules")
	ErrNoUniqueSolution = errors.New("puzzle is unsolvable or not uniquely solvable")
	ErrTimeout          = errors.New("solver timeout exceeded")
)

// Options configures a search.
type Options struct {
	// MaxSolutions stops the search once this many solutions were found.
	// Uniqueness detection needs 2; generation stops at 1.
	MaxSolutions int
	// Rand, when set, shuffles candidate order at every decision point.
	// Candidate order affects search time, never the outcome.
	Rand *rand.Rand
	// Timeout bounds the search; zero means no limit.
	Timeout time.Duration
}

// DefaultOptions returns options suitable for uniqueness-detecting solves.
func DefaultOptions() *Options {
	return &Options{MaxSolutions: 2}
}

// Solver performs recursive backtracking search over a puzzle's possibility
// map, finding a solution, detecting non-uniqueness, and accumulating the
// branch-difficulty score along the way.
//
// A Solver owns its working snapshot; the puzzle handed to New is cloned and
// never mutated. Assignments during the search are undone on backtrack, so a
// single mutable grid serves every branch.
type Solver struct {
	sudoku  *grid.Sudoku
	options *Options

	solution   *grid.Sudoku
	solutions  int
	difficulty int
	aborted    bool
}

// New creates a solver for the given puzzle.
func New(s *grid.Sudoku, options *Options) *Solver {
	if options == nil {
		options = DefaultOptions()
	}
	return &Solver{
		sudoku:  s.Clone(),
		options: options,
	}
}

// Search runs the backtracking search to the configured solution bound.
// It returns the number of solutions found; the first one found is kept and
// available via Solution after a successful run.
//
// The input must satisfy the grouping rules; a grid that already holds a
// duplicate has no solutions and fails with ErrInvalidPuzzle.
func (s *Solver) Search() (int, error) {
	if !s.sudoku.IsValid() {
		return 0, ErrInvalidPuzzle
	}

	ctx, cancel := s.makeContext()
	defer cancel()

	s.search(ctx)
	if s.aborted {
		return s.solutions, ErrTimeout
	}
	return s.solutions, nil
}

// search recurses over the most-constrained empty cell.
func (s *Solver) search(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.aborted = true
		return
	default:
	}

	m := NewPossibilityMap(s.sudoku)
	index, set, ok := m.Next()
	if !ok {
		// No unfilled cell is reachable by the map. Whether that means
		// solved or stuck depends on the underlying grid.
		if s.sudoku.IsComplete() {
			if s.solutions == 0 {
				s.solution = s.sudoku.Clone()
			}
			s.solutions++
		}
		return
	}

	// A cell with zero freedom is a contradiction left by the last
	// assignment; the empty candidate list below backtracks past it.
	candidates := set.Values()
	if s.options.Rand != nil {
		s.options.Rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	if freedom := set.Freedom(); freedom > 0 {
		s.difficulty += pow(freedom-1, s.sudoku.Dims())
	}

	for _, val := range candidates {
		s.sudoku.SubstituteIndex(index, val)
		s.search(ctx)
		if s.solutions >= s.options.MaxSolutions {
			// Enough solutions found; unwind without exploring siblings.
			s.sudoku.SubstituteIndex(index, grid.EmptyCell)
			return
		}
	}
	s.sudoku.SubstituteIndex(index, grid.EmptyCell)
}

// Difficulty returns the branch-difficulty score accumulated by the search.
func (s *Solver) Difficulty() int {
	return s.difficulty
}

// Solution returns the first solution found, or nil.
func (s *Solver) Solution() *grid.Sudoku {
	return s.solution
}

// makeContext derives the search context from the configured timeout.
func (s *Solver) makeContext() (context.Context, context.CancelFunc) {
	if s.options.Timeout > 0 {
		return context.WithTimeout(context.Background(), s.options.Timeout)
	}
	return context.WithCancel(context.Background())
}

// Solution returns the puzzle's unique solution if it exists.
func Solution(s *grid.Sudoku) (*grid.Sudoku, error) {
	solver := New(s, DefaultOptions())
	n, err := solver.Search()
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, ErrNoUniqueSolution
	}
	return solver.Solution(), nil
}

// IsUniquelySolvable reports whether the puzzle has exactly one solution.
func IsUniquelySolvable(s *grid.Sudoku) bool {
	_, err := Solution(s)
	return err == nil
}

// Score returns the raw difficulty score of the puzzle, or false if the
// puzzle has no unique solution.
//
// The score is S*C + E: S is the branch-difficulty accumulated over the
// search, C the smallest power of 10 not less than order⁴, and E the number
// of empty cells in the original puzzle.
func Score(s *grid.Sudoku) (int, bool) {
	score, err := ScoreWith(s, DefaultOptions())
	return score, err == nil
}

// ScoreWith scores the puzzle under the given search options, letting the
// caller bound the search with a timeout. Options must permit finding two
// solutions for uniqueness detection.
func ScoreWith(s *grid.Sudoku, options *Options) (int, error) {
	empty := s.EmptyCount()
	solver := New(s, options)
	n, err := solver.Search()
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, ErrNoUniqueSolution
	}

	c := 1
	for c < pow(s.Order(), 4) {
		c *= 10
	}
	return solver.Difficulty()*c + empty, nil
}

// DifficultyOf grades the puzzle's score, or Unplayable if it has no unique
// solution.
func DifficultyOf(s *grid.Sudoku) Difficulty {
	score, ok := Score(s)
	if !ok {
		return Unplayable
	}
	return Grade(score)
}

// pow raises base to a non-negative integer power.
func pow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
