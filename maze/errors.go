package maze

import "errors"

// Error taxonomy shared by the grid, the solver and the runner.
var (
	// ErrInvalidArgument reports a malformed position, direction token or grid dimension.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFormat reports malformed maze text.
	ErrFormat = errors.New("invalid maze format")
	// ErrNotFound reports that a search exhausted its space without reaching the goal.
	ErrNotFound = errors.New("not found")
	// ErrIllegalMove reports a move into a cell that turned out to be walled.
	ErrIllegalMove = errors.New("illegal move")
)

// IsNotFound reports whether err is the expected negative outcome of a search
// rather than a caller error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
