package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{ID: id, Username: "maze_runner", PlainPassword: "corridor-Lantern-91-quartz"})
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NotEqual(t, "corridor-Lantern-91-quartz", user.PasswordHash)
		assert.True(t, user.VerifyPassword("corridor-Lantern-91-quartz"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "short username", username: "ab", password: "corridor-Lantern-91-quartz", wantErr: ErrUsernameTooShort},
		{name: "long username", username: "abcdefghijklmnopqrstuvwxyz", password: "corridor-Lantern-91-quartz", wantErr: ErrUsernameTooLong},
		{name: "bad username", username: "maze runner", password: "corridor-Lantern-91-quartz", wantErr: ErrUsernameFormat},
		{name: "weak password", username: "maze_runner", password: "password", wantErr: ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMazeDigest(t *testing.T) {
	a := MazeDigest("###\n#.#\n###", "strict", Position{Row: 1, Col: 1})
	b := MazeDigest("###\n#.#\n###", "strict", Position{Row: 1, Col: 1})
	c := MazeDigest("###\n#.#\n###", "relaxed", Position{Row: 1, Col: 1})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestRunAnonymous(t *testing.T) {
	assert.True(t, (&Run{}).Anonymous())
	assert.False(t, (&Run{UserID: uuid.New()}).Anonymous())
}
