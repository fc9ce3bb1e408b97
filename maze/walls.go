package maze

// Directions maps the cardinal direction names to their (row, col) deltas.
// North is the previous row.
var Directions = map[string]CellPosition{
	"North": {Row: -1, Col: 0},
	"South": {Row: 1, Col: 0},
	"East":  {Row: 0, Col: 1},
	"West":  {Row: 0, Col: -1},
}

// WallsAt returns the wall status around column x, row y.
// A side is walled when the neighbour on that side is outside the grid or cannot
// be entered, so boundary cells always report their outward sides as walled.
func WallsAt(g *Grid, x, y int) Walls {
	blocked := func(delta CellPosition) bool {
		return !g.IsOpen(y+delta.Row, x+delta.Col)
	}

	return Walls{
		North: blocked(Directions["North"]),
		East:  blocked(Directions["East"]),
		South: blocked(Directions["South"]),
		West:  blocked(Directions["West"]),
	}
}
