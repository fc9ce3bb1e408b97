package runner

import (
	"fmt"

	"github.com/beka-birhanu/vinom-runner/maze"
)

// Action is the code emitted by one step of the wall follower.
type Action string

const (
	TurnLeftForward  Action = "LF"
	Forward          Action = "F"
	TurnRightForward Action = "RF"
	TurnBackForward  Action = "RRF"
)

// GoStraight moves the runner forward, refusing to walk into a wall.
func GoStraight(s *State, g *maze.Grid) error {
	if err := s.validate(); err != nil {
		return err
	}
	if Sense(g, *s).Front {
		return fmt.Errorf("%w: wall in front of the runner at (%d,%d) facing %s", maze.ErrIllegalMove, s.Pos.X, s.Pos.Y, s.Facing)
	}
	s.Forward()
	return nil
}

// Step makes one move of the left-hand rule: prefer turning left, then straight
// ahead, then right, and turn around only in a dead end.
//
// The rule does not terminate on every maze. Callers repeating Step must bound the
// number of steps themselves.
func Step(s *State, g *maze.Grid) (Action, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	walls := Sense(g, *s)

	var turns []Rotation
	var action Action
	switch {
	case !walls.Left:
		turns, action = []Rotation{Left}, TurnLeftForward
	case !walls.Front:
		action = Forward
	case !walls.Right:
		turns, action = []Rotation{Right}, TurnRightForward
	default:
		turns, action = []Rotation{Right, Right}, TurnBackForward
	}

	for _, r := range turns {
		if err := s.Turn(r); err != nil {
			return "", err
		}
	}
	if err := GoStraight(s, g); err != nil {
		return "", err
	}
	return action, nil
}
