package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is the text-format stand-in for an empty cell.
const Placeholder = "_"

var (
	// ErrUnequalDimensions indicates a row whose cell count differs from
	// the row count.
	ErrUnequalDimensions = errors.New("rows and columns differ in length")
	// ErrNonSquareAxis indicates a row count that is not a perfect square.
	ErrNonSquareAxis = errors.New("axis length is not a perfect square")
)

// LargeValueError indicates a parsed value exceeding order² at a given point.
type LargeValueError struct {
	Value int
	At    Point
}

func (e *LargeValueError) Error() string {
	return fmt.Sprintf("value %d at %v exceeds the maximum for this order", e.Value, e.At)
}

// Parse reads a two-dimensional puzzle from its text form: one line per row,
// cells separated by single spaces, each cell a decimal value or the
// Placeholder for an empty cell. A single trailing blank line is tolerated.
func Parse(text string) (*Sudoku, error) {
	rows := strings.Split(text, "\n")
	// The final newline and at most one trailing blank line are tolerated;
	// each shows up as an empty element after the split.
	for i := 0; i < 2; i++ {
		if n := len(rows); n > 0 && rows[n-1] == "" {
			rows = rows[:n-1]
		}
	}

	axis := len(rows)
	order := isqrt(axis)
	if order*order != axis {
		return nil, fmt.Errorf("%w: got %d rows", ErrNonSquareAxis, axis)
	}

	s, err := New(order, 2)
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		cells := strings.Split(row, " ")
		if len(cells) != axis {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrUnequalDimensions, y, len(cells), axis)
		}
		for x, cell := range cells {
			if cell == Placeholder {
				continue
			}
			val, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", y, x, err)
			}
			point := Point{x, y}
			if val > axis {
				return nil, &LargeValueError{Value: val, At: point}
			}
			if val < 1 {
				return nil, fmt.Errorf("%w: got %d at %v", ErrInvalidValue, val, point)
			}
			s.setIndex(point.Fold(order), val)
		}
	}
	return s, nil
}

// String renders a two-dimensional puzzle in the format Parse reads:
// space-joined cell values per row, Placeholder for empty cells, and a
// trailing newline after every row.
func (s *Sudoku) String() string {
	axis := s.Axis()
	var sb strings.Builder

	if s.dims != 2 {
		// The row/column text format is defined for two dimensions only.
		return fmt.Sprintf("Sudoku(order=%d, dims=%d, empty=%d)", s.order, s.dims, s.emptyCount)
	}

	for y := 0; y < axis; y++ {
		for x := 0; x < axis; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			val := s.cells[Point{x, y}.Fold(s.order)]
			if val == EmptyCell {
				sb.WriteString(Placeholder)
			} else {
				sb.WriteString(strconv.Itoa(val))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format returns a human-readable 2-D board representation with box borders.
func (s *Sudoku) Format() string {
	if s.dims != 2 {
		return s.String()
	}

	axis := s.Axis()
	var line strings.Builder
	line.WriteByte('+')
	for b := 0; b < s.order; b++ {
		line.WriteString(strings.Repeat("-", 2*s.order+1))
		line.WriteByte('+')
	}
	line.WriteByte('\n')

	var sb strings.Builder
	sb.WriteString(line.String())
	for y := 0; y < axis; y++ {
		sb.WriteString("| ")
		for x := 0; x < axis; x++ {
			val := s.cells[Point{x, y}.Fold(s.order)]
			if val == EmptyCell {
				sb.WriteByte('.')
			} else if val < 10 {
				sb.WriteString(strconv.Itoa(val))
			} else {
				// Values above 9 render in hex so columns stay aligned.
				sb.WriteString(strings.ToUpper(strconv.FormatInt(int64(val), 16)))
			}
			sb.WriteByte(' ')
			if (x+1)%s.order == 0 {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("\n")
		if (y+1)%s.order == 0 {
			sb.WriteString(line.String())
		}
	}
	return sb.String()
}

// isqrt returns the integer square root of n.
func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
