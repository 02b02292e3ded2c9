package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aehmlo/ku/internal/solver"
)

func init() {
	scoreCmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score a sudoku puzzle",
		Long: `Score the given sudoku, reading from a file or standard input.

The score reflects how much backtracking a solver needs plus how many cells
are empty; it only exists for uniquely solvable puzzles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScore,
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	puzzle, err := readPuzzle(args)
	if err != nil {
		return err
	}

	score, ok := solver.Score(puzzle)
	if !ok {
		fmt.Println("Couldn't score puzzle.")
		return nil
	}
	fmt.Printf("Score: %d (%s)\n", score, solver.Grade(score))
	return nil
}
