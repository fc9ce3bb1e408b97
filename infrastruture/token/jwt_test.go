package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	svc, err := NewJwtService(newSecret(t), "vinom-runner")
	require.NoError(t, err)

	t.Run("round trip keeps claims", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"userID": "abc", "username": "runner"}, 5*time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "abc", claims["userID"])
		assert.Equal(t, "runner", claims["username"])
		assert.Equal(t, "vinom-runner", claims["iss"])
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"userID": "abc"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewJwtService(newSecret(t), "vinom-runner")
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewJwtService(string(svc.secretKey), "someone-else")
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJwtServiceRequiresSecret(t *testing.T) {
	_, err := NewJwtService("", "issuer")
	assert.Error(t, err)
}
