package runner

import "github.com/beka-birhanu/vinom-runner/maze"

// Relative holds wall presence as seen from the runner's facing.
type Relative struct {
	Left  bool
	Front bool
	Right bool
	Back  bool
}

// Relativize rotates absolute walls into the runner's frame.
func Relativize(w maze.Walls, facing Orientation) Relative {
	abs := [4]bool{w.North, w.East, w.South, w.West}
	return Relative{
		Left:  abs[facing.Rotate(Left)],
		Front: abs[facing],
		Right: abs[facing.Rotate(Right)],
		Back:  abs[facing.Rotate(Right).Rotate(Right)],
	}
}

// Blocked reports whether the absolute heading h is walled, reading it back from
// walls sensed while facing facing.
func (r Relative) Blocked(facing, h Orientation) bool {
	switch (int(h) - int(facing) + 4) % 4 {
	case 0:
		return r.Front
	case 1:
		return r.Right
	case 2:
		return r.Back
	default:
		return r.Left
	}
}

// Sense returns the walls around the runner relative to its facing.
func Sense(g *maze.Grid, s State) Relative {
	return Relativize(maze.WallsAt(g, s.Pos.X, s.Pos.Y), s.Facing)
}
