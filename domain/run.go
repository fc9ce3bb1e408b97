// Package domain holds the records persisted by the service: users and the runs
// they request.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Algorithm names the traversal used for a run.
type Algorithm string

const (
	AlgorithmShortestPath Algorithm = "bfs"
	AlgorithmExplore      Algorithm = "dfs"
	AlgorithmFollow       Algorithm = "follow"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

// Position is a stored (row, col) pair.
type Position struct {
	Row int `bson:"row" json:"row"`
	Col int `bson:"col" json:"col"`
}

// Run is the recorded outcome of one traversal.
type Run struct {
	ID               uuid.UUID  `bson:"_id" json:"id"`
	UserID           uuid.UUID  `bson:"userId" json:"user_id"`
	Algorithm        Algorithm  `bson:"algorithm" json:"algorithm"`
	MazeDigest       string     `bson:"mazeDigest" json:"maze_digest"`
	Start            Position   `bson:"start" json:"start"`
	Goal             Position   `bson:"goal" json:"goal"`
	Path             []Position `bson:"path,omitempty" json:"path,omitempty"`
	ExplorationSteps int        `bson:"explorationSteps" json:"exploration_steps"`
	Score            float64    `bson:"score" json:"score"`
	Headings         []string   `bson:"headings,omitempty" json:"headings,omitempty"`
	Actions          []string   `bson:"actions,omitempty" json:"actions,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"created_at"`
}

// Anonymous reports whether the run was requested without a signed-in user.
func (r *Run) Anonymous() bool {
	return r.UserID == uuid.Nil
}

// MazeDigest identifies maze text together with the parameters that change its result.
func MazeDigest(text string, params ...any) string {
	h := sha256.New()
	h.Write([]byte(text))
	for _, p := range params {
		fmt.Fprintf(h, "|%v", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
