package solver

import (
	"fmt"
	"strings"
)

// Difficulty grades a puzzle's branch-difficulty score.
type Difficulty int

const (
	// Unplayable marks puzzles with no unique solution. It is never
	// produced by grading a score.
	Unplayable Difficulty = iota
	// Beginner puzzles are ideal for learning a new game.
	Beginner
	// Easy puzzles are good for practicing a new game.
	Easy
	// Intermediate puzzles suit a casual puzzle-solving session.
	Intermediate
	// Difficult puzzles are advanced and thought-provoking.
	Difficult
	// Advanced puzzles are coffee shop puzzles.
	Advanced
)

// Grade maps a raw difficulty score to its band.
func Grade(score int) Difficulty {
	switch {
	case score <= 50:
		return Beginner
	case score <= 125:
		return Easy
	case score <= 200:
		return Intermediate
	case score <= 300:
		return Difficult
	default:
		return Advanced
	}
}

// String returns the difficulty's display name.
func (d Difficulty) String() string {
	switch d {
	case Unplayable:
		return "unplayable"
	case Beginner:
		return "beginner"
	case Easy:
		return "easy"
	case Intermediate:
		return "intermediate"
	case Difficult:
		return "difficult"
	case Advanced:
		return "advanced"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty reads a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "easy":
		return Easy, nil
	case "intermediate":
		return Intermediate, nil
	case "difficult":
		return Difficult, nil
	case "advanced":
		return Advanced, nil
	}
	return Unplayable, fmt.Errorf("unknown difficulty %q", s)
}
