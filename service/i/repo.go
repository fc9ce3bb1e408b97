package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// RunRepo stores the history of runs.
type RunRepo interface {
	// Save inserts a run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID retrieves a run by its ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// ByUser lists the runs of a user, newest first, at most limit of them.
	ByUser(ctx context.Context, userID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
