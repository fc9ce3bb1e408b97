// Package mazeapi exposes the maze traversals and the run history over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/beka-birhanu/vinom-runner/runner"
)

// Position is a (row, col) cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Point is a runner (x, y) location, x being the column.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SolveRequest asks for the shortest path through a maze.
type SolveRequest struct {
	Maze  string    `json:"maze" binding:"required"`
	Mode  string    `json:"mode"`
	Start *Position `json:"start"`
	Goal  *Position `json:"goal"`
	Trace bool      `json:"trace"`
}

// RunnerRequest places a runner for exploration or wall following.
type RunnerRequest struct {
	Maze   string `json:"maze" binding:"required"`
	Mode   string `json:"mode"`
	Start  *Point `json:"start" binding:"required"`
	Facing string `json:"facing" binding:"required"`
	Goal   *Point `json:"goal"`
	Budget int    `json:"budget" binding:"gte=0"`
}

// TraceEntry is one discovered cell of the shortest path search.
type TraceEntry struct {
	Step   int    `json:"step"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Action string `json:"action"`
}

// SolveResponse is the shortest path answer.
type SolveResponse struct {
	RunID            string       `json:"run_id,omitempty"`
	Path             []Position   `json:"path"`
	Edges            int          `json:"edges"`
	ExplorationSteps int          `json:"exploration_steps"`
	Score            float64      `json:"score"`
	Overlay          string       `json:"overlay"`
	Trace            []TraceEntry `json:"trace,omitempty"`
}

// Runner is the final runner state.
type Runner struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

// RunnerResponse is the answer to explore and follow.
type RunnerResponse struct {
	RunID    string     `json:"run_id,omitempty"`
	Final    Runner     `json:"final"`
	Path     []Position `json:"path"`
	Headings []string   `json:"headings,omitempty"`
	Actions  []string   `json:"actions,omitempty"`
	Steps    int        `json:"steps"`
}

// RunResponse is a recorded run.
type RunResponse struct {
	ID               string     `json:"id"`
	Algorithm        string     `json:"algorithm"`
	MazeDigest       string     `json:"maze_digest"`
	Start            Position   `json:"start"`
	Goal             Position   `json:"goal"`
	Path             []Position `json:"path"`
	ExplorationSteps int        `json:"exploration_steps"`
	Score            float64    `json:"score"`
	Headings         []string   `json:"headings,omitempty"`
	Actions          []string   `json:"actions,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

func (p *Position) cell() *maze.CellPosition {
	if p == nil {
		return nil
	}
	return &maze.CellPosition{Row: p.Row, Col: p.Col}
}

func (p *Point) point() *runner.Point {
	if p == nil {
		return nil
	}
	return &runner.Point{X: p.X, Y: p.Y}
}

func toPositions(ps []dmn.Position) []Position {
	out := make([]Position, len(ps))
	for k, p := range ps {
		out[k] = Position{Row: p.Row, Col: p.Col}
	}
	return out
}

func runID(run *dmn.Run) string {
	if run.Anonymous() {
		return ""
	}
	return run.ID.String()
}

func toRunResponse(run *dmn.Run) RunResponse {
	return RunResponse{
		ID:               run.ID.String(),
		Algorithm:        string(run.Algorithm),
		MazeDigest:       run.MazeDigest,
		Start:            Position{Row: run.Start.Row, Col: run.Start.Col},
		Goal:             Position{Row: run.Goal.Row, Col: run.Goal.Col},
		Path:             toPositions(run.Path),
		ExplorationSteps: run.ExplorationSteps,
		Score:            run.Score,
		Headings:         run.Headings,
		Actions:          run.Actions,
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
	}
}
