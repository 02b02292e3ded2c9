// Package store persists generated puzzles in a SQLite library.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Aehmlo/ku/internal/grid"
	"github.com/Aehmlo/ku/internal/solver"
)

// Store handles SQLite database operations for the puzzle library.
type Store struct {
	db *sql.DB
}

// Puzzle is one saved puzzle record.
type Puzzle struct {
	ID         string            `json:"id"`
	Order      int               `json:"order"`
	Dims       int               `json:"dims"`
	Score      int               `json:"score"`
	Difficulty solver.Difficulty `json:"difficulty"`
	Body       string            `json:"body"`
	Solution   string            `json:"solution,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Open creates a Store backed by the database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// migrate creates the database schema if it doesn't exist.
func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT PRIMARY KEY,
		puzzle_order INTEGER NOT NULL,
		dims INTEGER NOT NULL DEFAULT 2,
		score INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		body TEXT NOT NULL,
		solution TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_difficulty ON puzzles(difficulty);
	CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at);
	`

	_, err := st.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.db.Close()
}

// Save records a puzzle and returns its assigned ID.
func (st *Store) Save(puzzle, solution *grid.Sudoku) (string, error) {
	score, ok := solver.Score(puzzle)
	if !ok {
		return "", fmt.Errorf("refusing to save puzzle without a unique solution")
	}

	rec := Puzzle{
		ID:         uuid.NewString(),
		Order:      puzzle.Order(),
		Dims:       puzzle.Dims(),
		Score:      score,
		Difficulty: solver.Grade(score),
		Body:       puzzle.String(),
		CreatedAt:  time.Now().UTC(),
	}
	if solution != nil {
		rec.Solution = solution.String()
	}

	_, err := st.db.Exec(`
		INSERT INTO puzzles (id, puzzle_order, dims, score, difficulty, body, solution, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Order, rec.Dims, rec.Score, rec.Difficulty.String(),
		rec.Body, rec.Solution, rec.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("save puzzle: %w", err)
	}
	return rec.ID, nil
}

// Get retrieves one saved puzzle by ID.
func (st *Store) Get(id string) (*Puzzle, error) {
	row := st.db.QueryRow(`
		SELECT id, puzzle_order, dims, score, difficulty, body, solution, created_at
		FROM puzzles WHERE id = ?`, id)
	return scanPuzzle(row)
}

// List returns the most recently saved puzzles, newest first.
func (st *Store) List(limit int) ([]Puzzle, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := st.db.Query(`
		SELECT id, puzzle_order, dims, score, difficulty, body, solution, created_at
		FROM puzzles ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, *p)
	}
	return puzzles, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPuzzle(row scanner) (*Puzzle, error) {
	var p Puzzle
	var difficulty string
	var solution sql.NullString
	err := row.Scan(&p.ID, &p.Order, &p.Dims, &p.Score, &difficulty,
		&p.Body, &solution, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan puzzle: %w", err)
	}
	p.Solution = solution.String
	if d, err := solver.ParseDifficulty(difficulty); err == nil {
		p.Difficulty = d
	}
	return &p, nil
}
