package generator

import (
	"time"

	"github.com/Aehmlo/ku/internal/solver"
)

// Options configures puzzle generation behavior.
type Options struct {
	Order int // Order is the base size of the generated puzzle
	Dims  int // Dims is the puzzle's dimensionality (minimum 2)
	// Target is the difficulty band hardening aims for. Generation falls
	// back to the best difficulty reached if the target proves out of
	// reach within the hardening budget.
	Target  solver.Difficulty
	Seed    int64         // Seed for reproducible puzzles (0 = random)
	Timeout time.Duration // Timeout bounds each embedded solve (0 = none)
}

// DefaultOptions returns standard generator options for the given order.
func DefaultOptions(order int) *Options {
	return &Options{
		Order:  order,
		Dims:   2,
		Target: solver.Beginner,
		Seed:   0,
	}
}
