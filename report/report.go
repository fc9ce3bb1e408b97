// Package report writes the exploration trace and run statistics produced by the
// solver to caller supplied destinations.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/beka-birhanu/vinom-runner/solver"
)

const pathMarker = '@'

var traceHeader = []string{"step", "row", "col", "action"}

// WriteTrace writes the exploration trace as CSV, one record per discovered cell.
func WriteTrace(w io.Writer, trace []solver.TraceEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return err
	}
	for _, entry := range trace {
		record := []string{
			strconv.Itoa(entry.Step),
			strconv.Itoa(entry.Position.Row),
			strconv.Itoa(entry.Position.Col),
			string(entry.Action),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Statistics summarises one solved maze.
type Statistics struct {
	Input            string              // Identifier of the maze, usually its file name
	ExplorationSteps int                 // Cells dequeued by the search
	PathLength       int                 // Number of cells on the path
	Path             []maze.CellPosition // The path itself, may be omitted
}

// NewStatistics builds the statistics of a solver result.
func NewStatistics(input string, res *solver.Result) Statistics {
	return Statistics{
		Input:            input,
		ExplorationSteps: res.Steps,
		PathLength:       len(res.Path),
		Path:             res.Path,
	}
}

// Score weighs exploration effort against path length; lower is better.
func (s Statistics) Score() float64 {
	return float64(s.ExplorationSteps)/4 + float64(s.PathLength)
}

// WriteStatistics writes the statistics report.
func WriteStatistics(w io.Writer, s Statistics) error {
	lines := []string{
		fmt.Sprintf("Input file: %s", s.Input),
		fmt.Sprintf("Score: %.2f", s.Score()),
		fmt.Sprintf("Exploration steps: %d", s.ExplorationSteps),
	}
	if s.Path != nil {
		lines = append(lines, fmt.Sprintf("Shortest path: %s", FormatPath(s.Path)))
	}
	lines = append(lines, fmt.Sprintf("Path length: %d", s.PathLength))

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// FormatPath renders a path as "[(r, c), (r, c), ...]".
func FormatPath(path []maze.CellPosition) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("(%d, %d)", p.Row, p.Col)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Overlay returns the maze text with every path cell replaced by '@'.
func Overlay(g *maze.Grid, path []maze.CellPosition) string {
	onPath := make(map[maze.CellPosition]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}

	width, height := g.Dimensions()
	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if _, ok := onPath[maze.CellPosition{Row: row, Col: col}]; ok {
				sb.WriteRune(pathMarker)
				continue
			}
			sb.WriteRune(g.At(row, col).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
