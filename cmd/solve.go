package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aehmlo/ku/internal/grid"
	"github.com/Aehmlo/ku/internal/solver"
)

var solveTimeout time.Duration

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a sudoku puzzle",
		Long: `Solve the given sudoku, reading from a file or standard input.

The puzzle must have exactly one solution; anything else is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Abort the search after this long")

	rootCmd.AddCommand(solveCmd)
}

// readPuzzle parses a puzzle from the named file, or stdin if none given.
func readPuzzle(args []string) (*grid.Sudoku, error) {
	var reader io.Reader = os.Stdin
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}
	text, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return grid.Parse(string(text))
}

func runSolve(cmd *cobra.Command, args []string) error {
	puzzle, err := readPuzzle(args)
	if err != nil {
		return err
	}

	s := solver.New(puzzle, &solver.Options{MaxSolutions: 2, Timeout: solveTimeout})
	n, err := s.Search()
	if err != nil {
		return err
	}
	if n != 1 {
		return solver.ErrNoUniqueSolution
	}

	fmt.Print(s.Solution())
	return nil
}
