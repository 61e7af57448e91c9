package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "userhub")
	t.Setenv("JWT_AUDIENCE", "userhub-api")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "userhub", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, "emails", cfg.RabbitMQEmailQueue)
	assert.Equal(t, 5*time.Second, cfg.EmailPollInterval)
	assert.Equal(t, 16, cfg.EmailPollBatch)
}

func TestLoadMissingJWTSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_AUDIENCE", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "JWT_ISSUER")
	assert.Contains(t, err.Error(), "JWT_AUDIENCE")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")
	t.Setenv("JWT_REFRESH_TTL", "24h")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "users")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5433/users?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}
