package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aehmlo/ku/internal/generator"
	"github.com/Aehmlo/ku/internal/grid"
	"github.com/Aehmlo/ku/internal/solver"
	"github.com/Aehmlo/ku/internal/store"
)

var (
	numPuzzles int
	genOrder   int
	genDims    int
	difficulty string
	seed       int64
	outputFile string
	storePath  string
	genTimeout time.Duration
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate sudoku puzzles",
		Long: `Generate one or more sudoku puzzles at a target difficulty.

Examples:
  ku gen --difficulty easy
  ku gen -n 5 --order 4 --difficulty intermediate
  ku gen --difficulty advanced --output puzzles.html
  ku gen --seed 42 --save library.db`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&numPuzzles, "number", "n", 1, "Number of puzzles to generate")
	genCmd.Flags().IntVar(&genOrder, "order", 3, "Puzzle order (1-8)")
	genCmd.Flags().IntVar(&genDims, "dims", 2, "Puzzle dimensionality (2+)")
	genCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "beginner", "Target difficulty: beginner, easy, intermediate, difficult, advanced")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible puzzles (0 = random)")
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (e.g., puzzles.html)")
	genCmd.Flags().StringVar(&storePath, "save", "", "Save generated puzzles to this SQLite library")
	genCmd.Flags().DurationVar(&genTimeout, "timeout", 0, "Per-solve timeout during generation")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	// Config file values apply wherever the flag was left at its default.
	if !cmd.Flags().Changed("order") {
		genOrder = viper.GetInt("order")
	}
	if !cmd.Flags().Changed("dims") {
		genDims = viper.GetInt("dims")
	}
	if !cmd.Flags().Changed("difficulty") {
		difficulty = viper.GetString("difficulty")
	}
	if !cmd.Flags().Changed("save") {
		storePath = viper.GetString("store")
	}

	target, err := solver.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}

	var library *store.Store
	if storePath != "" {
		library, err = store.Open(storePath)
		if err != nil {
			return err
		}
		defer library.Close()
	}

	var puzzles, solutions []*grid.Sudoku
	outputHTML := outputFile != ""

	for i := 0; i < numPuzzles; i++ {
		options := &generator.Options{
			Order:   genOrder,
			Dims:    genDims,
			Target:  target,
			Timeout: genTimeout,
		}
		if seed != 0 {
			// Offset so repeated -n runs don't produce n copies.
			options.Seed = seed + int64(i)
		}

		puzzle, solution, err := generator.New(options).Generate()
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if library != nil {
			id, err := library.Save(puzzle, solution)
			if err != nil {
				return err
			}
			logrus.WithField("id", id).Info("saved puzzle")
		}

		if outputHTML {
			puzzles = append(puzzles, puzzle)
			solutions = append(solutions, solution)
		} else if genDims == 2 {
			score, _ := solver.Score(puzzle)
			fmt.Printf("Puzzle #%d (%s, score %d):\n", i+1, solver.Grade(score), score)
			fmt.Println(puzzle.Format())
			fmt.Println("\nSolution:")
			fmt.Println(solution.Format())
			fmt.Println()
		} else {
			fmt.Printf("Puzzle #%d: %s\n", i+1, puzzle)
		}
	}

	if outputHTML {
		filename := outputFile
		if filepath.Ext(filename) != ".html" {
			filename = filename + ".html"
		}
		if err := writeHTML(filename, genOrder, puzzles, solutions); err != nil {
			return fmt.Errorf("failed to write HTML file: %w", err)
		}
		fmt.Printf("Generated %d puzzle(s) in %s\n", numPuzzles, filename)
	}
	return nil
}

// writeHTML creates a printable HTML file with puzzles, one per page.
func writeHTML(filename string, order int, puzzles, solutions []*grid.Sudoku) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Sudoku Puzzles</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .page {
            page-break-after: always;
            background-color: white;
            padding: 40px;
            margin-bottom: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .page:last-child {
            page-break-after: auto;
        }
        h1 {
            color: #333;
            margin-bottom: 30px;
            text-align: center;
        }
        h2 {
            color: #666;
            margin-top: 20px;
            margin-bottom: 15px;
            font-size: 1.2em;
        }
        .sudoku-grid {
            display: inline-block;
            border: 3px solid #000;
            margin: 20px auto;
            font-family: 'Courier New', monospace;
            font-size: 24px;
            line-height: 1.5;
        }
        .sudoku-grid table {
            border-collapse: collapse;
            margin: 0 auto;
        }
        .sudoku-grid td {
            width: 40px;
            height: 40px;
            text-align: center;
            vertical-align: middle;
            border: 1px solid #333;
            padding: 0;
        }
        .sudoku-grid td.empty {
            color: #ccc;
        }
        .sudoku-grid tr:nth-child(%dn) td {
            border-bottom: 2px solid #000;
        }
        .sudoku-grid td:nth-child(%dn) {
            border-right: 2px solid #000;
        }
        @media print {
            body {
                background-color: white;
            }
            .page {
                margin-bottom: 0;
                box-shadow: none;
            }
        }
    </style>
</head>
<body>
`, order, order)
	if err != nil {
		return err
	}

	for i := 0; i < len(puzzles); i++ {
		_, err = fmt.Fprintf(file, `    <div class="page">
        <h1>Sudoku Puzzle #%d</h1>
        <h2>Puzzle</h2>
        %s
        <h2>Solution</h2>
        %s
    </div>
`, i+1, gridToHTML(puzzles[i]), gridToHTML(solutions[i]))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(file, `</body>
</html>
`)
	return err
}

// gridToHTML converts a 2-D puzzle to an HTML table representation.
func gridToHTML(s *grid.Sudoku) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"sudoku-grid\"><table>")

	axis := s.Axis()
	for y := 0; y < axis; y++ {
		sb.WriteString("<tr>")
		for x := 0; x < axis; x++ {
			val := s.Get(grid.Point{x, y})
			if val == grid.EmptyCell {
				sb.WriteString("<td class=\"empty\">·</td>")
			} else {
				sb.WriteString(fmt.Sprintf("<td class=\"\">%d</td>", val))
			}
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</table></div>")
	return sb.String()
}
