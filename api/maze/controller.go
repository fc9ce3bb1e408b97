package mazeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-runner/api/identity"
	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/maze"
	"github.com/beka-birhanu/vinom-runner/runner"
	"github.com/beka-birhanu/vinom-runner/service"
	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RunService is the part of service.Runs the controller depends on.
type RunService interface {
	Solve(ctx context.Context, req service.SolveRequest) (*service.SolveOutcome, error)
	Explore(ctx context.Context, req service.RunnerRequest) (*service.RunnerOutcome, error)
	Follow(ctx context.Context, req service.RunnerRequest) (*service.RunnerOutcome, error)
	History(ctx context.Context, userID uuid.UUID) ([]*dmn.Run, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
}

// Controller serves maze traversals and run history.
type Controller struct {
	runs     RunService
	identify gin.HandlerFunc
	logger   i.Logger
}

// NewController creates a Controller. identify attaches an optional caller to
// traversal requests so that their runs are recorded.
func NewController(runs RunService, identify gin.HandlerFunc, logger i.Logger) (*Controller, error) {
	if runs == nil || logger == nil {
		return nil, errors.New("maze controller requires a run service and a logger")
	}
	return &Controller{
		runs:     runs,
		identify: identify,
		logger:   logger,
	}, nil
}

// RegisterPublic registers the traversal routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	if c.identify != nil {
		mazes.Use(c.identify)
	}
	{
		mazes.POST("/solve", c.solve)
		mazes.POST("/explore", c.explore)
		mazes.POST("/follow", c.follow)
	}
}

// RegisterProtected registers the run history routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.GET("", c.history)
		runs.GET("/:ID", c.run)
	}
}

func (c *Controller) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respond(ctx, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := maze.ParseMode(request.Mode)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out, err := c.runs.Solve(ctx.Request.Context(), service.SolveRequest{
		UserID: identity.UserID(ctx),
		Maze:   request.Maze,
		Mode:   mode,
		Start:  request.Start.cell(),
		Goal:   request.Goal.cell(),
		Trace:  request.Trace,
	})
	if err != nil {
		c.fail(ctx, err)
		return
	}

	response := SolveResponse{
		RunID:            runID(out.Run),
		Path:             toPositions(out.Run.Path),
		Edges:            out.Result.Edges(),
		ExplorationSteps: out.Result.Steps,
		Score:            out.Run.Score,
		Overlay:          out.Overlay,
	}
	for _, t := range out.Result.Trace {
		response.Trace = append(response.Trace, TraceEntry{
			Step:   t.Step,
			Row:    t.Position.Row,
			Col:    t.Position.Col,
			Action: string(t.Action),
		})
	}
	respond(ctx, http.StatusOK, response)
}

func (c *Controller) explore(ctx *gin.Context) {
	c.traverse(ctx, c.runs.Explore)
}

func (c *Controller) follow(ctx *gin.Context) {
	c.traverse(ctx, c.runs.Follow)
}

func (c *Controller) traverse(ctx *gin.Context, walk func(context.Context, service.RunnerRequest) (*service.RunnerOutcome, error)) {
	var request RunnerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respond(ctx, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := maze.ParseMode(request.Mode)
	if err != nil {
		respondError(ctx, err)
		return
	}
	facing, err := runner.ParseOrientation(request.Facing)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out, err := walk(ctx.Request.Context(), service.RunnerRequest{
		UserID: identity.UserID(ctx),
		Maze:   request.Maze,
		Mode:   mode,
		Start:  *request.Start.point(),
		Facing: facing,
		Goal:   request.Goal.point(),
		Budget: request.Budget,
	})
	if err != nil {
		c.fail(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, RunnerResponse{
		RunID:    runID(out.Run),
		Final:    Runner{X: out.Final.Pos.X, Y: out.Final.Pos.Y, Facing: out.Final.Facing.String()},
		Path:     toPositions(out.Run.Path),
		Headings: out.Run.Headings,
		Actions:  out.Run.Actions,
		Steps:    out.Run.ExplorationSteps,
	})
}

func (c *Controller) history(ctx *gin.Context) {
	runs, err := c.runs.History(ctx.Request.Context(), identity.UserID(ctx))
	if err != nil {
		c.fail(ctx, err)
		return
	}

	response := make([]RunResponse, len(runs))
	for k, run := range runs {
		response[k] = toRunResponse(run)
	}
	respond(ctx, http.StatusOK, gin.H{"runs": response})
}

func (c *Controller) run(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := c.runs.ByID(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	// Runs of other users are reported as missing.
	if run.UserID != identity.UserID(ctx) {
		respondError(ctx, dmn.ErrRunNotFound)
		return
	}
	respond(ctx, http.StatusOK, toRunResponse(run))
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		c.logger.Error(fmt.Sprintf("%s %s: %s", ctx.Request.Method, ctx.FullPath(), err))
	}
	respondError(ctx, err)
}
