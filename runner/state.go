/*
Package runner drives an autonomous maze runner that only senses the walls around
its own cell.

A State is a position plus the orientation the runner faces. Positions use (x, y)
with x as the column and y as the row; y grows southward, so moving North
decrements y. This matches the row order of maze text.

Two traversals are provided: Explore, a depth-first search with backtracking that
finds some path whenever one exists, and Step, a single move of the left-hand
wall follower, which callers repeat under their own step budget.
*/
package runner

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-runner/maze"
)

// Orientation is the direction the runner faces.
type Orientation int

// Orientations in clockwise order.
const (
	North Orientation = iota
	East
	South
	West
)

var orientationNames = [...]string{"North", "East", "South", "West"}

// Rotation is a quarter turn.
type Rotation int

const (
	Left  Rotation = -1
	Right Rotation = 1
)

// Point is an (x, y) position, x being the column and y the row.
type Point struct {
	X int
	Y int
}

// Add returns p moved by one step in direction o.
func (p Point) Add(o Orientation) Point {
	d := o.Delta()
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Valid reports whether o is one of the four cardinal orientations.
func (o Orientation) Valid() bool {
	return o >= North && o <= West
}

// Delta returns the unit step for o.
func (o Orientation) Delta() Point {
	switch o {
	case North:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Rotate returns the orientation after turning by r.
func (o Orientation) Rotate(r Rotation) Orientation {
	return Orientation((int(o) + int(r) + 4) % 4)
}

// Short returns the one letter form of o (N, E, S, W).
func (o Orientation) Short() string {
	return o.String()[:1]
}

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// ParseOrientation accepts N, E, S, W or the full names, case-insensitive.
func ParseOrientation(s string) (Orientation, error) {
	for i, name := range orientationNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown orientation %q", maze.ErrInvalidArgument, s)
}

// ParseRotation accepts "Left" or "Right".
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "Left":
		return Left, nil
	case "Right":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: invalid direction %q, use 'Left' or 'Right'", maze.ErrInvalidArgument, s)
	}
}

// String implements fmt.Stringer.
func (r Rotation) String() string {
	switch r {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
}

// State is the runner's position and facing. It is a plain value, so copying it
// takes a snapshot.
type State struct {
	Pos    Point
	Facing Orientation
}

// New creates a runner at (x, y) facing the given orientation.
func New(x, y int, facing Orientation) State {
	return State{Pos: Point{X: x, Y: y}, Facing: facing}
}

// validate rejects states whose facing is not a cardinal orientation.
func (s State) validate() error {
	if !s.Facing.Valid() {
		return fmt.Errorf("%w: invalid facing %s", maze.ErrInvalidArgument, s.Facing)
	}
	return nil
}

// Turn rotates the runner a quarter turn without moving it.
func (s *State) Turn(r Rotation) error {
	if r != Left && r != Right {
		return fmt.Errorf("%w: invalid rotation %s", maze.ErrInvalidArgument, r)
	}
	s.Facing = s.Facing.Rotate(r)
	return nil
}

// Forward moves the runner one cell in the direction it faces. It does not look at walls.
func (s *State) Forward() {
	s.Pos = s.Pos.Add(s.Facing)
}

// Move turns left until the runner faces heading, at most three times, then moves forward.
func (s *State) Move(heading Orientation) error {
	if !heading.Valid() {
		return fmt.Errorf("%w: invalid heading %s", maze.ErrInvalidArgument, heading)
	}
	for turns := 0; s.Facing != heading && turns < 3; turns++ {
		s.Facing = s.Facing.Rotate(Left)
	}
	s.Forward()
	return nil
}

// String implements fmt.Stringer.
func (s State) String() string {
	return fmt.Sprintf("(%d,%d) facing %s", s.Pos.X, s.Pos.Y, s.Facing)
}
