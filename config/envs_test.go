package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("HOST_IP", "127.0.0.1")
	t.Setenv("REST_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "27017")
	t.Setenv("DB_USER", "runner")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "mazes")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("JWT_ISSUER", "vinom-runner")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, c.RESTPort)
		assert.Equal(t, "release", c.GinMode)
		assert.Equal(t, 300, c.CacheTTLSeconds)
		assert.Equal(t, 10000, c.FollowStepBudget)
		assert.Empty(t, c.RedisPassword)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GIN_MODE", "debug")
		t.Setenv("FOLLOW_STEP_BUDGET", "25")

		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "debug", c.GinMode)
		assert.Equal(t, 25, c.FollowStepBudget)
	})

	t.Run("bad integer", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REST_PORT", "http")

		_, err := Load()
		assert.ErrorContains(t, err, "REST_PORT")
	})
}
