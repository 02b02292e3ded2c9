package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aehmlo/ku/internal/grid"
	"github.com/Aehmlo/ku/internal/solver"
)

// MaxHardenIterations bounds how many cell-pair removals a single hardening
// pass may attempt before giving up on the current level.
const MaxHardenIterations = 20

var (
	ErrGenerationFailed = errors.New("failed to generate a complete grid")
	ErrInvalidTarget    = errors.New("target difficulty must be playable")
	ErrHardeningFailed  = errors.New("hardening budget exhausted before reaching target")
)

// Generator creates randomized puzzles hardened toward a target difficulty.
type Generator struct {
	options *Options
	rng     *rand.Rand
	log     *logrus.Entry
}

// New creates a puzzle generator with the given options.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions(3)
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options: options,
		rng:     rand.New(rand.NewSource(seed)),
		log: logrus.WithFields(logrus.Fields{
			"order": options.Order,
			"dims":  options.Dims,
		}),
	}
}

// Generate creates a new puzzle at (or as near as reachable to) the target
// difficulty, along with its full solution.
func (g *Generator) Generate() (puzzle *grid.Sudoku, solution *grid.Sudoku, err error) {
	if g.options.Target == solver.Unplayable {
		return nil, nil, ErrInvalidTarget
	}

	solution, err = g.Grid()
	if err != nil {
		return nil, nil, err
	}

	puzzle = solution.Clone()
	if err := g.harden(puzzle, g.options.Target); err != nil {
		// Best effort: a usable puzzle below target beats no puzzle.
		g.log.WithFields(logrus.Fields{
			"target":  g.options.Target,
			"reached": solver.DifficultyOf(puzzle),
		}).Warn("hardening fell short of target difficulty")
	}
	return puzzle, solution, nil
}

// Grid creates a random fully-solved grid of the configured order and
// dimensionality.
//
// A shuffled permutation of 1..order² is staggered across the first band of
// boxes, so the seed already touches multiple groups, then the remainder is
// completed by backtracking with randomized candidate order. The first full
// completion wins; uniqueness plays no role at this stage.
func (g *Generator) Grid() (*grid.Sudoku, error) {
	s, err := grid.New(g.options.Order, g.options.Dims)
	if err != nil {
		return nil, err
	}

	order := g.options.Order
	axis := s.Axis()
	perm := g.rng.Perm(axis)
	for i, v := range perm {
		p := grid.Origin(g.options.Dims)
		p[1] = i / order
		p[0] = (i%order)*order + p[1]
		s.SubstituteIndex(p.Fold(order), v+1)
	}

	search := solver.New(s, &solver.Options{
		MaxSolutions: 1,
		Rand:         g.rng,
		Timeout:      g.options.Timeout,
	})
	n, err := search.Search()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if n == 0 {
		return nil, ErrGenerationFailed
	}
	return search.Solution(), nil
}

// harden raises the puzzle's difficulty toward the target by clearing random
// cell pairs, in place.
//
// A trial pair is kept only when it strictly increases the score without
// overshooting the target band; a kept pair at target ends hardening, a kept
// pair below target recurses with a fresh budget. Exhausting the budget
// without a keepable pair fails the pass.
func (g *Generator) harden(s *grid.Sudoku, target solver.Difficulty) error {
	current, ok := solver.Score(s)
	if !ok {
		return ErrHardeningFailed
	}

	points := s.Points()
	g.rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	for i := 0; i < MaxHardenIterations; i++ {
		if len(points) < 2 {
			break
		}
		var one, two grid.Point
		one, points = takeRandom(points, g.rng)
		two, points = takeRandom(points, g.rng)
		oneIdx, twoIdx := one.Fold(s.Order()), two.Fold(s.Order())

		trial := s.Clone()
		trial.SubstituteIndex(oneIdx, grid.EmptyCell)
		trial.SubstituteIndex(twoIdx, grid.EmptyCell)

		score, ok := solver.Score(trial)
		if !ok || score <= current {
			// Removable without raising difficulty, or uniqueness lost.
			continue
		}
		difficulty := solver.Grade(score)
		if difficulty > target {
			continue // overshot
		}

		s.SubstituteIndex(oneIdx, grid.EmptyCell)
		s.SubstituteIndex(twoIdx, grid.EmptyCell)
		g.log.WithFields(logrus.Fields{
			"score":      score,
			"difficulty": difficulty,
		}).Debug("committed cell pair")

		if difficulty == target {
			return nil
		}
		return g.harden(s, target)
	}
	return ErrHardeningFailed
}

// takeRandom removes and returns a random element of points.
func takeRandom(points []grid.Point, rng *rand.Rand) (grid.Point, []grid.Point) {
	i := rng.Intn(len(points))
	p := points[i]
	points[i] = points[len(points)-1]
	return p, points[:len(points)-1]
}

// Generate is a convenience function using default options for the order.
func Generate(order int, target solver.Difficulty) (*grid.Sudoku, error) {
	options := DefaultOptions(order)
	options.Target = target
	puzzle, _, err := New(options).Generate()
	return puzzle, err
}
