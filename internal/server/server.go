// Package server exposes puzzle generation, solving, and scoring over a
// small JSON HTTP API. Grid bodies travel in the text format of grid.Parse.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aehmlo/ku/internal/generator"
	"github.com/Aehmlo/ku/internal/grid"
	"github.com/Aehmlo/ku/internal/solver"
	"github.com/Aehmlo/ku/internal/store"
)

// Handler serves the puzzle API. Store may be nil, in which case the saved
// puzzle listing responds 404.
type Handler struct {
	Store *store.Store
}

// New creates a Handler backed by an optional puzzle store.
func New(st *store.Store) *Handler { return &Handler{Store: st} }

// searchTimeout bounds every search a handler runs, so a pathological
// request cannot pin a handler goroutine indefinitely.
const searchTimeout = 10 * time.Second

// Register attaches all API routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/score", h.handleScore)
	mux.HandleFunc("/api/puzzles", h.handlePuzzles)
}

type generateReq struct {
	Order      int    `json:"order,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     string `json:"puzzle,omitempty"`
	Solution   string `json:"solution,omitempty"`
	Score      int    `json:"score,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Order == 0 {
		req.Order = 3
	}
	target := solver.Beginner
	if req.Difficulty != "" {
		var err error
		if target, err = solver.ParseDifficulty(req.Difficulty); err != nil {
			writeJSON(w, http.StatusBadRequest, generateResp{Error: err.Error()})
			return
		}
	}

	options := generator.DefaultOptions(req.Order)
	options.Target = target
	options.Seed = req.Seed
	options.Timeout = searchTimeout

	start := time.Now()
	puzzle, solution, err := generator.New(options).Generate()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, generateResp{Error: err.Error()})
		return
	}
	score, _ := solver.Score(puzzle)
	writeJSON(w, http.StatusOK, generateResp{
		Puzzle:     puzzle.String(),
		Solution:   solution.String(),
		Score:      score,
		Difficulty: solver.Grade(score).String(),
		DurationMs: time.Since(start).Milliseconds(),
	})
	logrus.WithFields(logrus.Fields{
		"order":      req.Order,
		"difficulty": target,
		"durationMs": time.Since(start).Milliseconds(),
	}).Info("generated puzzle")
}

type solveReq struct {
	Puzzle string `json:"puzzle"`
}

type solveResp struct {
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	puzzle, ok := readPuzzle(w, r)
	if !ok {
		return
	}
	search := solver.New(puzzle, &solver.Options{MaxSolutions: 2, Timeout: searchTimeout})
	n, err := search.Search()
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, solver.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, solveResp{Error: err.Error()})
		return
	}
	if n != 1 {
		writeJSON(w, http.StatusUnprocessableEntity, solveResp{Error: solver.ErrNoUniqueSolution.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{Solution: search.Solution().String()})
}

type scoreResp struct {
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	puzzle, ok := readPuzzle(w, r)
	if !ok {
		return
	}
	score, err := solver.ScoreWith(puzzle, &solver.Options{MaxSolutions: 2, Timeout: searchTimeout})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, solver.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, scoreResp{
			Difficulty: solver.Unplayable.String(),
			Error:      err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, scoreResp{
		Score:      score,
		Difficulty: solver.Grade(score).String(),
	})
}

func (h *Handler) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	if h.Store == nil {
		http.Error(w, `{"error":"no puzzle store configured"}`, http.StatusNotFound)
		return
	}
	puzzles, err := h.Store.List(50)
	if err != nil {
		http.Error(w, `{"error":"listing failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(puzzles)
}

// readPuzzle decodes and parses the request's puzzle body, writing the error
// response itself when it returns !ok.
func readPuzzle(w http.ResponseWriter, r *http.Request) (*grid.Sudoku, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return nil, false
	}
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return nil, false
	}
	puzzle, err := grid.Parse(req.Puzzle)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: err.Error()})
		return nil, false
	}
	return puzzle, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
