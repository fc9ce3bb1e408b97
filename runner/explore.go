package runner

import (
	"fmt"

	"github.com/beka-birhanu/vinom-runner/maze"
)

// ErrUnreachable is returned by Explore when every branch has been exhausted.
var ErrUnreachable = fmt.Errorf("%w: goal unreachable from runner position", maze.ErrNotFound)

// preference is the order in which Explore tries headings at every cell.
var preference = []Orientation{West, East, North, South}

// Logger receives explorer diagnostics.
type Logger interface {
	Info(string)
}

type exploreOptions struct {
	logger Logger
}

// ExploreOption configures Explore.
type ExploreOption func(*exploreOptions)

// WithLogger reports visited cells, sensed walls and backtracking to l.
func WithLogger(l Logger) ExploreOption {
	return func(o *exploreOptions) {
		o.logger = l
	}
}

// frame is one level of the depth-first search: the runner state on arrival at a
// cell and the headings still to try from it.
type frame struct {
	snapshot   State
	candidates []Orientation
}

// Explore walks s to goal with a depth-first search that only uses the walls the
// runner senses around itself. It returns the headings taken; replaying them from
// the initial state reaches goal. The path is not necessarily the shortest.
//
// On success s is left at goal. On failure s is restored to its initial state
// and ErrUnreachable is returned.
func Explore(s *State, g *maze.Grid, goal Point, opts ...ExploreOption) ([]Orientation, error) {
	o := &exploreOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if !g.InBounds(s.Pos.Y, s.Pos.X) {
		return nil, fmt.Errorf("%w: runner position (%d,%d) outside the maze", maze.ErrInvalidArgument, s.Pos.X, s.Pos.Y)
	}
	if !g.InBounds(goal.Y, goal.X) {
		return nil, fmt.Errorf("%w: goal (%d,%d) outside the maze", maze.ErrInvalidArgument, goal.X, goal.Y)
	}
	if !s.Facing.Valid() {
		return nil, fmt.Errorf("%w: invalid facing %s", maze.ErrInvalidArgument, s.Facing)
	}

	o.info(fmt.Sprintf("Visiting: (%d, %d), Goal: (%d, %d)", s.Pos.X, s.Pos.Y, goal.X, goal.Y))
	if s.Pos == goal {
		o.info(fmt.Sprintf("Reached goal at: (%d, %d)", goal.X, goal.Y))
		return []Orientation{}, nil
	}

	visited := map[Point]struct{}{}
	var headings []Orientation
	stack := []frame{o.enter(g, *s, visited)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		*s = top.snapshot

		if len(top.candidates) == 0 {
			stack = stack[:len(stack)-1]
			if len(headings) > 0 {
				headings = headings[:len(headings)-1]
				o.info(fmt.Sprintf("Backtracking from: (%d, %d)", s.Pos.X, s.Pos.Y))
			}
			continue
		}

		heading := top.candidates[0]
		top.candidates = top.candidates[1:]

		next := s.Pos.Add(heading)
		if !g.InBounds(next.Y, next.X) {
			continue
		}
		if _, seen := visited[next]; seen {
			continue
		}

		if err := s.Move(heading); err != nil {
			return nil, err
		}
		headings = append(headings, heading)

		if s.Pos == goal {
			o.info(fmt.Sprintf("Reached goal at: (%d, %d)", goal.X, goal.Y))
			return headings, nil
		}
		stack = append(stack, o.enter(g, *s, visited))
	}

	return nil, ErrUnreachable
}

// enter marks the state's cell as visited and lists the unwalled headings in
// preference order, read from the runner's relative wall sensing.
func (o *exploreOptions) enter(g *maze.Grid, s State, visited map[Point]struct{}) frame {
	visited[s.Pos] = struct{}{}

	walls := Sense(g, s)
	o.info(fmt.Sprintf("Wall Status at (%d, %d): Left=%t, Front=%t, Right=%t, Back=%t",
		s.Pos.X, s.Pos.Y, walls.Left, walls.Front, walls.Right, walls.Back))

	candidates := make([]Orientation, 0, len(preference))
	for _, h := range preference {
		if !walls.Blocked(s.Facing, h) {
			candidates = append(candidates, h)
		}
	}
	return frame{snapshot: s, candidates: candidates}
}

func (o *exploreOptions) info(msg string) {
	if o.logger != nil {
		o.logger.Info(msg)
	}
}

// Replay moves s along headings, checking every step against the walls of g.
func Replay(s *State, g *maze.Grid, headings []Orientation) error {
	if err := s.validate(); err != nil {
		return err
	}
	for i, h := range headings {
		walls := Sense(g, *s)
		if walls.Blocked(s.Facing, h) {
			return fmt.Errorf("%w: step %d heading %s from (%d,%d) is walled", maze.ErrIllegalMove, i+1, h, s.Pos.X, s.Pos.Y)
		}
		if err := s.Move(h); err != nil {
			return err
		}
	}
	return nil
}
