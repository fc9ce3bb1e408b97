package maze

// Cell represents the state of a single position in a maze grid.
type Cell byte

const (
	// Open is a walkable cell.
	Open Cell = iota
	// Wall is a blocked cell.
	Wall
	// Void is a blank cell of an irregular maze. It is not a wall but can never be entered.
	Void
)

// Text markers used by the line based maze format.
const (
	WallMarker  = '#'
	OpenMarker  = '.'
	BlankMarker = ' '
)

// Rune returns the text marker of the cell.
func (c Cell) Rune() rune {
	switch c {
	case Wall:
		return WallMarker
	case Void:
		return BlankMarker
	default:
		return OpenMarker
	}
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	switch c {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Walls holds the wall status around a cell in absolute directions.
type Walls struct {
	North bool
	East  bool
	South bool
	West  bool
}
