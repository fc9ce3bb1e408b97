package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Mode selects how strictly maze text is validated.
type Mode int

const (
	// ModeStrict accepts only wall and open markers and requires the maze to be
	// enclosed by walls.
	ModeStrict Mode = iota
	// ModeRelaxed also accepts blank cells and does not require enclosure.
	ModeRelaxed
	// ModeLenient maps the wall marker to Wall and any other character to Open.
	ModeLenient
)

// ParseMode converts a mode name ("strict", "relaxed", "lenient") into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "strict":
		return ModeStrict, nil
	case "relaxed":
		return ModeRelaxed, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return 0, fmt.Errorf("%w: unknown maze mode %q", ErrInvalidArgument, name)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeRelaxed:
		return "relaxed"
	case ModeLenient:
		return "lenient"
	default:
		return "strict"
	}
}

// Parse reads a maze from line based text, one row per line. Rows may be of any length.
func Parse(r io.Reader, mode Mode) (*Grid, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading maze: %w", err)
		}
	}
	return ParseLines(lines, mode)
}

// ParseLines builds a grid from maze text rows.
func ParseLines(lines []string, mode Mode) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: maze is empty", ErrFormat)
	}

	cells := make([][]Cell, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		row := make([]Cell, 0, len(line))
		for _, ch := range line {
			cell, err := decodeCell(ch, mode)
			if err != nil {
				return nil, fmt.Errorf("%w (line %d)", err, i+1)
			}
			row = append(row, cell)
		}
		cells[i] = row
	}

	width := len(cells[0])
	for i, row := range cells {
		if len(row) != width {
			return nil, fmt.Errorf("%w: rows are not of consistent length (line %d has %d cells, expected %d)", ErrFormat, i+1, len(row), width)
		}
	}

	grid := &Grid{cells: cells}
	if mode == ModeStrict && !grid.enclosed() {
		return nil, fmt.Errorf("%w: maze is not fully enclosed by walls", ErrFormat)
	}
	return grid, nil
}

// decodeCell maps a text marker to a cell for the given mode.
func decodeCell(ch rune, mode Mode) (Cell, error) {
	switch {
	case ch == WallMarker:
		return Wall, nil
	case ch == OpenMarker:
		return Open, nil
	case mode == ModeLenient:
		return Open, nil
	case ch == BlankMarker && mode == ModeRelaxed:
		return Void, nil
	default:
		return Open, fmt.Errorf("%w: invalid character %q", ErrFormat, ch)
	}
}

// enclosed checks that every cell of the outer ring is a wall.
func (g *Grid) enclosed() bool {
	width, height := g.Dimensions()
	if width == 0 {
		return false
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			onRing := row == 0 || row == height-1 || col == 0 || col == width-1
			if onRing && g.cells[row][col] != Wall {
				return false
			}
		}
	}
	return true
}
