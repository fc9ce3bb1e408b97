package i

import (
	dmn "github.com/beka-birhanu/vinom-runner/domain"
)

// Authenticator registers users and signs them in.
type Authenticator interface {
	// Register creates a new user account.
	Register(username, password string) error

	// SignIn checks the credentials and returns the user with a fresh token.
	SignIn(username, password string) (*dmn.User, string, error)
}
