package service

import (
	"errors"
	"testing"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "corridor-Lantern-91-quartz"

func TestAuth(t *testing.T) {
	_, err := NewAuthService(nil, &stubTokenizer{})
	assert.Error(t, err)

	users := newMemoryUserRepo()
	tokenizer := &stubTokenizer{}
	auth, err := NewAuthService(users, tokenizer)
	require.NoError(t, err)

	require.NoError(t, auth.Register("maze_runner", strongPassword))

	t.Run("duplicate username", func(t *testing.T) {
		err := auth.Register("maze_runner", strongPassword)
		assert.ErrorIs(t, err, dmn.ErrUsernameTaken)
	})

	t.Run("weak password", func(t *testing.T) {
		err := auth.Register("another_runner", "password")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})

	t.Run("sign in issues a token", func(t *testing.T) {
		user, token, err := auth.SignIn("maze_runner", strongPassword)
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, "maze_runner", user.Username)
		assert.Equal(t, user.ID.String(), tokenizer.claims[i.ClaimUserID])
		assert.Equal(t, "maze_runner", tokenizer.claims[i.ClaimUsername])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn("maze_runner", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", strongPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("tokenizer failure", func(t *testing.T) {
		tokenizer.err = errors.New("signing failed")
		defer func() { tokenizer.err = nil }()
		_, _, err := auth.SignIn("maze_runner", strongPassword)
		assert.Error(t, err)
	})
}
