package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/beka-birhanu/vinom-runner/report"
	"github.com/beka-birhanu/vinom-runner/runner"
	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/beka-birhanu/vinom-runner/solver"
	"github.com/google/uuid"
)

const (
	defaultFollowBudget = 10000
	defaultHistoryLimit = 50

	solveCacheKeyFmt = "runner:solve:%s"
)

var (
	// ErrBudgetExceeded is returned when the wall follower runs out of steps before
	// reaching the goal.
	ErrBudgetExceeded = fmt.Errorf("%w: wall follower step budget exhausted", maze.ErrNotFound)
)

// RunsConfig holds the collaborators of the Runs service.
type RunsConfig struct {
	Repo         i.RunRepo     // Optional; runs of signed-in users are recorded when set
	Cache        i.ResultCache // Optional; shortest path results are memoized when set
	Logger       i.Logger
	FollowBudget int  // Default step budget of the wall follower
	Diagnostics  bool // Send the explorer's per-cell diagnostics to Logger
}

// Runs executes traversals over submitted mazes and records them.
type Runs struct {
	repo         i.RunRepo
	cache        i.ResultCache
	logger       i.Logger
	followBudget int
	diagnostics  bool
	now          func() time.Time
}

// NewRuns creates the Runs service.
func NewRuns(c *RunsConfig) (*Runs, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("runs service requires a logger")
	}

	budget := c.FollowBudget
	if budget <= 0 {
		budget = defaultFollowBudget
	}

	return &Runs{
		repo:         c.Repo,
		cache:        c.Cache,
		logger:       c.Logger,
		followBudget: budget,
		diagnostics:  c.Diagnostics,
		now:          time.Now,
	}, nil
}

// SolveRequest asks for the shortest path through a maze.
type SolveRequest struct {
	UserID uuid.UUID
	Maze   string
	Mode   maze.Mode
	Start  *maze.CellPosition // Defaults to (0,0)
	Goal   *maze.CellPosition // Defaults to the bottom right cell
	Trace  bool               // Keep the exploration trace in the result
}

// SolveOutcome is the answer to a SolveRequest.
type SolveOutcome struct {
	Run     *dmn.Run
	Result  *solver.Result
	Overlay string // Maze text with the path drawn in
}

// Solve runs the shortest path search. Identical requests are served from the cache.
func (r *Runs) Solve(ctx context.Context, req SolveRequest) (*SolveOutcome, error) {
	g, err := parseMaze(req.Maze, req.Mode)
	if err != nil {
		return nil, err
	}

	opts := []solver.Option{solver.WithExplorationLog()}
	if req.Start != nil {
		opts = append(opts, solver.WithStart(*req.Start))
	}
	if req.Goal != nil {
		opts = append(opts, solver.WithGoal(*req.Goal))
	}

	digest := dmn.MazeDigest(req.Maze, req.Mode, req.Start, req.Goal)
	compute := func() ([]byte, error) {
		res, err := solver.ShortestPath(g, opts...)
		if err != nil {
			return nil, err
		}
		return json.Marshal(res)
	}

	encoded, err := r.cached(ctx, fmt.Sprintf(solveCacheKeyFmt, digest), compute)
	if solver.IsNoPath(err) {
		r.logger.Info(fmt.Sprintf("maze %s has no path between the requested cells", short(digest)))
		return nil, err
	}
	if err != nil {
		r.logger.Warning(fmt.Sprintf("solve %s failed: %s", short(digest), err))
		return nil, err
	}

	var res solver.Result
	if err := json.Unmarshal(encoded, &res); err != nil {
		return nil, fmt.Errorf("decoding solver result: %w", err)
	}
	if !req.Trace {
		res.Trace = nil
	}

	stats := report.NewStatistics(short(digest), &res)
	run := r.newRun(req.UserID, dmn.AlgorithmShortestPath, digest)
	run.Start = toPosition(res.Path[0])
	run.Goal = toPosition(res.Path[len(res.Path)-1])
	run.Path = make([]dmn.Position, len(res.Path))
	for k, p := range res.Path {
		run.Path[k] = toPosition(p)
	}
	run.ExplorationSteps = res.Steps
	run.Score = stats.Score()

	r.logger.Info(fmt.Sprintf("solved maze %s: path length %d, exploration steps %d", short(digest), len(res.Path), res.Steps))
	r.record(ctx, run)
	return &SolveOutcome{Run: run, Result: &res, Overlay: report.Overlay(g, res.Path)}, nil
}

// RunnerRequest places a runner in a maze for Explore and Follow.
type RunnerRequest struct {
	UserID uuid.UUID
	Maze   string
	Mode   maze.Mode
	Start  runner.Point
	Facing runner.Orientation
	Goal   *runner.Point // Defaults to the bottom right cell
	Budget int           // Follow only; 0 uses the configured budget
}

// RunnerOutcome is the answer to Explore and Follow.
type RunnerOutcome struct {
	Run   *dmn.Run
	Final runner.State
}

// Explore walks the runner to the goal with the backtracking depth-first explorer.
func (r *Runs) Explore(ctx context.Context, req RunnerRequest) (*RunnerOutcome, error) {
	g, goal, err := r.prepareRunner(req)
	if err != nil {
		return nil, err
	}

	var opts []runner.ExploreOption
	if r.diagnostics {
		opts = append(opts, runner.WithLogger(r.logger))
	}

	state := runner.New(req.Start.X, req.Start.Y, req.Facing)
	headings, err := runner.Explore(&state, g, goal, opts...)
	if err != nil {
		r.logger.Warning(fmt.Sprintf("explore from (%d,%d) failed: %s", req.Start.X, req.Start.Y, err))
		return nil, err
	}

	run := r.newRun(req.UserID, dmn.AlgorithmExplore, dmn.MazeDigest(req.Maze, req.Mode))
	run.Start = pointPosition(req.Start)
	run.Goal = pointPosition(goal)
	run.Path = []dmn.Position{run.Start}
	replay := runner.New(req.Start.X, req.Start.Y, req.Facing)
	for _, h := range headings {
		run.Headings = append(run.Headings, h.String())
		if err := replay.Move(h); err != nil {
			return nil, err
		}
		run.Path = append(run.Path, pointPosition(replay.Pos))
	}
	run.ExplorationSteps = len(headings)

	r.logger.Info(fmt.Sprintf("explored maze: %d moves to (%d,%d)", len(headings), goal.X, goal.Y))
	r.record(ctx, run)
	return &RunnerOutcome{Run: run, Final: state}, nil
}

// Follow repeats the left-hand rule until the goal is reached or the step budget runs out.
func (r *Runs) Follow(ctx context.Context, req RunnerRequest) (*RunnerOutcome, error) {
	g, goal, err := r.prepareRunner(req)
	if err != nil {
		return nil, err
	}

	budget := req.Budget
	if budget <= 0 {
		budget = r.followBudget
	}

	state := runner.New(req.Start.X, req.Start.Y, req.Facing)
	run := r.newRun(req.UserID, dmn.AlgorithmFollow, dmn.MazeDigest(req.Maze, req.Mode))
	run.Start = pointPosition(req.Start)
	run.Goal = pointPosition(goal)
	run.Path = []dmn.Position{run.Start}

	for state.Pos != goal {
		if len(run.Actions) >= budget {
			r.logger.Warning(fmt.Sprintf("wall follower gave up after %d steps", budget))
			return nil, ErrBudgetExceeded
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		action, err := runner.Step(&state, g)
		if err != nil {
			r.logger.Error(fmt.Sprintf("wall follower stuck at %s: %s", state, err))
			return nil, err
		}
		run.Actions = append(run.Actions, string(action))
		run.Path = append(run.Path, pointPosition(state.Pos))
	}
	run.ExplorationSteps = len(run.Actions)

	r.logger.Info(fmt.Sprintf("wall follower reached (%d,%d) in %d steps: %s", goal.X, goal.Y, len(run.Actions), strings.Join(run.Actions, "")))
	r.record(ctx, run)
	return &RunnerOutcome{Run: run, Final: state}, nil
}

// History lists the most recent runs of a user.
func (r *Runs) History(ctx context.Context, userID uuid.UUID) ([]*dmn.Run, error) {
	if r.repo == nil {
		return []*dmn.Run{}, nil
	}
	return r.repo.ByUser(ctx, userID, defaultHistoryLimit)
}

// ByID retrieves one recorded run.
func (r *Runs) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	if r.repo == nil {
		return nil, dmn.ErrRunNotFound
	}
	return r.repo.ByID(ctx, id)
}

// prepareRunner parses the maze and resolves the runner's goal.
func (r *Runs) prepareRunner(req RunnerRequest) (*maze.Grid, runner.Point, error) {
	g, err := parseMaze(req.Maze, req.Mode)
	if err != nil {
		return nil, runner.Point{}, err
	}
	if !req.Facing.Valid() {
		return nil, runner.Point{}, fmt.Errorf("%w: invalid facing %s", maze.ErrInvalidArgument, req.Facing)
	}

	width, height := g.Dimensions()
	goal := runner.Point{X: width - 1, Y: height - 1}
	if req.Goal != nil {
		goal = *req.Goal
	}
	if !g.InBounds(req.Start.Y, req.Start.X) {
		return nil, runner.Point{}, fmt.Errorf("%w: runner start (%d,%d) outside the maze", maze.ErrInvalidArgument, req.Start.X, req.Start.Y)
	}
	if !g.InBounds(goal.Y, goal.X) {
		return nil, runner.Point{}, fmt.Errorf("%w: goal (%d,%d) outside the maze", maze.ErrInvalidArgument, goal.X, goal.Y)
	}
	return g, goal, nil
}

func (r *Runs) cached(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	if r.cache == nil {
		return compute()
	}
	return r.cache.Do(ctx, key, compute)
}

func (r *Runs) newRun(userID uuid.UUID, algorithm dmn.Algorithm, digest string) *dmn.Run {
	return &dmn.Run{
		ID:         uuid.New(),
		UserID:     userID,
		Algorithm:  algorithm,
		MazeDigest: digest,
		CreatedAt:  r.now().UTC(),
	}
}

// record stores runs of signed-in users. A storage failure does not fail the run.
func (r *Runs) record(ctx context.Context, run *dmn.Run) {
	if r.repo == nil || run.Anonymous() {
		return
	}
	if err := r.repo.Save(ctx, run); err != nil {
		r.logger.Error(fmt.Sprintf("saving run %s: %s", run.ID, err))
		return
	}
	r.logger.Info(fmt.Sprintf("recorded run %s for user %s", run.ID, run.UserID))
}

func parseMaze(text string, mode maze.Mode) (*maze.Grid, error) {
	return maze.Parse(strings.NewReader(text), mode)
}

func toPosition(p maze.CellPosition) dmn.Position {
	return dmn.Position{Row: p.Row, Col: p.Col}
}

func pointPosition(p runner.Point) dmn.Position {
	return dmn.Position{Row: p.Y, Col: p.X}
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
