package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/observability"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "postgres://localhost/tasks")
	t.Setenv("TASKS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, auth.DefaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "postgres://localhost/tasks")
	t.Setenv("TASKS_JWT_SECRET", "test-secret")
	t.Setenv("TASKS_PORT", "9000")
	t.Setenv("TASKS_TOKEN_TTL", "30m")
	t.Setenv("TASKS_LOG_LEVEL", "debug")
	t.Setenv("TASKS_METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "postgres://localhost/tasks")
	t.Setenv("TASKS_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TASKS_JWT_SECRET")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "")
	t.Setenv("TASKS_JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TASKS_POSTGRES_URL")
}

func TestValidate_PortCollision(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "postgres://localhost/tasks")
	t.Setenv("TASKS_JWT_SECRET", "test-secret")
	t.Setenv("TASKS_PORT", "9090")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be different")
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("TASKS_POSTGRES_URL", "postgres://localhost/tasks")
	t.Setenv("TASKS_JWT_SECRET", "test-secret")
	t.Setenv("TASKS_TOKEN_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultTokenTTL, cfg.Auth.TokenTTL)
}
