// Package solver finds shortest paths through a maze grid with breadth-first search.
package solver

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-runner/maze"
)

// Action labels the direction taken to discover a cell.
type Action string

const (
	Up    Action = "U"
	Down  Action = "D"
	Left  Action = "L"
	Right Action = "R"
)

// ErrNoPath is returned when the goal cannot be reached from the start.
var ErrNoPath = fmt.Errorf("%w: no path exists from start to goal", maze.ErrNotFound)

// expansion order; it fixes the trace order and breaks ties between equally short paths.
var moves = []struct {
	delta  maze.CellPosition
	action Action
}{
	{delta: maze.CellPosition{Row: -1, Col: 0}, action: Up},
	{delta: maze.CellPosition{Row: 1, Col: 0}, action: Down},
	{delta: maze.CellPosition{Row: 0, Col: -1}, action: Left},
	{delta: maze.CellPosition{Row: 0, Col: 1}, action: Right},
}

// TraceEntry records a cell the first time the search discovers it.
type TraceEntry struct {
	Step     int               // 1-based discovery order
	Position maze.CellPosition // Discovered cell
	Action   Action            // Direction taken from the predecessor
}

// Result holds the outcome of a search.
type Result struct {
	Path  []maze.CellPosition // Start to goal, both inclusive
	Steps int                 // Cells dequeued during the search
	Trace []TraceEntry        // Discovery log, only filled when requested
}

// Edges returns the number of moves along the path.
func (r *Result) Edges() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

type options struct {
	start *maze.CellPosition
	goal  *maze.CellPosition
	trace bool
}

// Option configures ShortestPath.
type Option func(*options)

// WithStart overrides the default start (0,0).
func WithStart(pos maze.CellPosition) Option {
	return func(o *options) {
		o.start = &pos
	}
}

// WithGoal overrides the default goal, the bottom right cell.
func WithGoal(pos maze.CellPosition) Option {
	return func(o *options) {
		o.goal = &pos
	}
}

// WithExplorationLog records every newly discovered cell in Result.Trace.
func WithExplorationLog() Option {
	return func(o *options) {
		o.trace = true
	}
}

// ShortestPath runs a breadth-first search over the open cells of g and returns a
// path with the minimum number of moves. The search stops once the goal is dequeued.
func ShortestPath(g *maze.Grid, opts ...Option) (*Result, error) {
	width, height := g.Dimensions()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: maze cannot be empty", maze.ErrInvalidArgument)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	start := maze.CellPosition{Row: 0, Col: 0}
	if o.start != nil {
		start = *o.start
	}
	goal := maze.CellPosition{Row: height - 1, Col: width - 1}
	if o.goal != nil {
		goal = *o.goal
	}

	if !g.IsOpen(start.Row, start.Col) {
		return nil, fmt.Errorf("%w: invalid starting position (%d,%d)", maze.ErrInvalidArgument, start.Row, start.Col)
	}
	if !g.IsOpen(goal.Row, goal.Col) {
		return nil, fmt.Errorf("%w: invalid goal position (%d,%d)", maze.ErrInvalidArgument, goal.Row, goal.Col)
	}

	result := &Result{}
	cameFrom := map[maze.CellPosition]maze.CellPosition{start: start}
	queue := []maze.CellPosition{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result.Steps++

		if current == goal {
			break
		}

		for _, m := range moves {
			next := maze.CellPosition{Row: current.Row + m.delta.Row, Col: current.Col + m.delta.Col}
			if !g.IsOpen(next.Row, next.Col) {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}

			cameFrom[next] = current
			queue = append(queue, next)
			if o.trace {
				result.Trace = append(result.Trace, TraceEntry{
					Step:     len(result.Trace) + 1,
					Position: next,
					Action:   m.action,
				})
			}
		}
	}

	if _, found := cameFrom[goal]; !found {
		return nil, ErrNoPath
	}

	result.Path = reconstruct(cameFrom, start, goal)
	return result, nil
}

// reconstruct walks the predecessor links back from goal and reverses them.
func reconstruct(cameFrom map[maze.CellPosition]maze.CellPosition, start, goal maze.CellPosition) []maze.CellPosition {
	path := []maze.CellPosition{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsNoPath reports whether err means the goal is unreachable.
func IsNoPath(err error) bool {
	return errors.Is(err, ErrNoPath)
}
