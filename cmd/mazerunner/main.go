// Command mazerunner solves a maze file from the command line.
//
//	mazerunner maze.mz --starting 1,1 --goal 3,3 --trace exploration.csv --stats statistics.txt
//
// The shortest path is always computed. --runner additionally walks an autonomous
// runner from the start to the goal with the depth-first explorer (dfs) or the
// left-hand wall follower (follow).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-runner/config"
	logger "github.com/beka-birhanu/vinom-runner/infrastruture/log"
	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/beka-birhanu/vinom-runner/report"
	"github.com/beka-birhanu/vinom-runner/runner"
	"github.com/beka-birhanu/vinom-runner/service"
	"github.com/spf13/pflag"
)

type options struct {
	mazeFile string
	starting string
	goal     string
	mode     string
	trace    string
	stats    string
	walker   string
	facing   string
	budget   int
	verbose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := solve(opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("mazerunner", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.starting, "starting", "", `starting position as "row,col" (default 0,0)`)
	fs.StringVar(&opts.goal, "goal", "", `goal position as "row,col" (default bottom right cell)`)
	fs.StringVarP(&opts.mode, "mode", "m", "strict", "maze text validation: strict, relaxed or lenient")
	fs.StringVar(&opts.trace, "trace", "", "write the exploration trace as CSV to this file")
	fs.StringVar(&opts.stats, "stats", "", "write the statistics report to this file")
	fs.StringVarP(&opts.walker, "runner", "r", "none", "also walk a runner: none, dfs or follow")
	fs.StringVar(&opts.facing, "facing", "North", "initial facing of the runner")
	fs.IntVar(&opts.budget, "budget", 0, "step budget of the wall follower (0 uses the default)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log the explorer's per-cell diagnostics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%w: expected exactly one maze file, got %d", maze.ErrInvalidArgument, fs.NArg())
	}
	opts.mazeFile = fs.Arg(0)
	return opts, nil
}

func solve(opts *options, stdout, stderr io.Writer) error {
	mode, err := maze.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	start, err := parsePosition(opts.starting)
	if err != nil {
		return err
	}
	goal, err := parsePosition(opts.goal)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(opts.mazeFile)
	if err != nil {
		return fmt.Errorf("cannot read the maze file %s: %w", opts.mazeFile, err)
	}

	cliLogger, err := logger.New("MAZERUNNER", config.ColorMagenta, stderr)
	if err != nil {
		return err
	}
	runs, err := service.NewRuns(&service.RunsConfig{
		Logger:       cliLogger,
		FollowBudget: opts.budget,
		Diagnostics:  opts.verbose,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	out, err := runs.Solve(ctx, service.SolveRequest{
		Maze:  string(text),
		Mode:  mode,
		Start: start,
		Goal:  goal,
		Trace: opts.trace != "",
	})
	if err != nil {
		return err
	}

	path := out.Result.Path
	fmt.Fprint(stdout, out.Overlay)
	fmt.Fprintf(stdout, "Start: (%d, %d)\n", path[0].Row, path[0].Col)
	fmt.Fprintf(stdout, "Goal: (%d, %d)\n", path[len(path)-1].Row, path[len(path)-1].Col)
	stats := report.NewStatistics(opts.mazeFile, out.Result)
	if err := report.WriteStatistics(stdout, stats); err != nil {
		return err
	}

	if opts.trace != "" {
		if err := writeFile(opts.trace, func(w io.Writer) error { return report.WriteTrace(w, out.Result.Trace) }); err != nil {
			return err
		}
	}
	if opts.stats != "" {
		if err := writeFile(opts.stats, func(w io.Writer) error { return report.WriteStatistics(w, stats) }); err != nil {
			return err
		}
	}

	if opts.walker == "none" {
		return nil
	}
	facing, err := runner.ParseOrientation(opts.facing)
	if err != nil {
		return err
	}
	req := service.RunnerRequest{
		Maze:   string(text),
		Mode:   mode,
		Start:  runner.Point{X: path[0].Col, Y: path[0].Row},
		Facing: facing,
		Goal:   &runner.Point{X: path[len(path)-1].Col, Y: path[len(path)-1].Row},
	}

	switch opts.walker {
	case "dfs":
		walked, err := runs.Explore(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Explorer headings (%d): %s\n", len(walked.Run.Headings), strings.Join(walked.Run.Headings, " "))
	case "follow":
		walked, err := runs.Follow(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wall follower actions (%d): %s\n", len(walked.Run.Actions), strings.Join(walked.Run.Actions, " "))
	default:
		return fmt.Errorf("%w: unknown runner %q, use none, dfs or follow", maze.ErrInvalidArgument, opts.walker)
	}
	return nil
}

// parsePosition reads "row,col". An empty string means the default position.
func parsePosition(s string) (*maze.CellPosition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: position %q must be \"row,col\"", maze.ErrInvalidArgument, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: position %q must be \"row,col\"", maze.ErrInvalidArgument, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: position %q must be \"row,col\"", maze.ErrInvalidArgument, s)
	}
	return &maze.CellPosition{Row: row, Col: col}, nil
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
