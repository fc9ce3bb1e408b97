/*
Package maze provides the grid model used by the solver and the runner.

A Grid is a rectangular field of cells, each Open, Wall or Void. Grids are built
with New (a walled box with an open interior), FromCells, or parsed from line
based text (see Parse). Once built, a grid only changes through the wall adding
helpers, which never turn a wall back into an open cell.

Grid coordinates are (row, col). The wall sensor WallsAt takes (x, y) with x as
the column and y as the row, y growing southward.
*/
package maze

import (
	"fmt"
	"strings"
)

const (
	minMazeDimension = 2
)

// Grid represents a rectangular maze.
type Grid struct {
	cells [][]Cell
}

// New creates a width x height grid whose outer ring is walled and whose interior is open.
func New(width, height int) (*Grid, error) {
	if width < minMazeDimension || height < minMazeDimension {
		return nil, fmt.Errorf("%w: maze dimensions %dx%d, both must be at least %d", ErrInvalidArgument, width, height, minMazeDimension)
	}

	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
		for col := range cells[row] {
			if row == 0 || row == height-1 || col == 0 || col == width-1 {
				cells[row][col] = Wall
			}
		}
	}

	return &Grid{cells: cells}, nil
}

// FromCells builds a grid from explicit rows. The rows are copied.
func FromCells(rows [][]Cell) (*Grid, error) {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrFormat, i, len(row), len(rows[0]))
		}
		cells[i] = append([]Cell(nil), row...)
	}
	return &Grid{cells: cells}, nil
}

// Dimensions returns the width (row length) and height (row count) of the grid.
func (g *Grid) Dimensions() (width, height int) {
	height = len(g.cells)
	if height > 0 {
		width = len(g.cells[0])
	}
	return width, height
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	width, height := g.Dimensions()
	return row >= 0 && row < height && col >= 0 && col < width
}

// At returns the cell at (row, col). Positions outside the grid read as Wall.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Wall
	}
	return g.cells[row][col]
}

// IsWall reports whether (row, col) holds a wall. Positions outside the grid are walls.
func (g *Grid) IsWall(row, col int) bool {
	return g.At(row, col) == Wall
}

// IsOpen reports whether (row, col) is inside the grid and can be entered.
func (g *Grid) IsOpen(row, col int) bool {
	return g.InBounds(row, col) && g.cells[row][col] == Open
}

// AddHorizontalWall walls the cell at column x on row line and the cell below it,
// so the wall spans the boundary between the two rows.
// Out of range coordinates are ignored.
func (g *Grid) AddHorizontalWall(x, line int) {
	if !g.InBounds(line, x) {
		return
	}
	g.cells[line][x] = Wall
	if g.InBounds(line+1, x) {
		g.cells[line+1][x] = Wall
	}
}

// AddVerticalWall walls the cell at row y on column line and the cell to its left.
// Out of range coordinates are ignored.
func (g *Grid) AddVerticalWall(y, line int) {
	if !g.InBounds(y, line) {
		return
	}
	g.cells[y][line] = Wall
	if g.InBounds(y, line-1) {
		g.cells[y][line-1] = Wall
	}
}

// String provides the textual representation of the maze, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		for _, cell := range row {
			sb.WriteRune(cell.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
