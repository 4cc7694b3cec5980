package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	s := Load()

	assert.Equal(t, REDIS_DB_ADDRESS, s.RedisAddress)
	assert.Equal(t, SERVER_ADDRESS, s.ServerAddress)
	assert.Equal(t, RATE_LIMIT_BURST, s.RateLimitBurst)
	assert.Equal(t, []string{"*"}, s.AllowedOrigins)
	assert.Equal(t, time.Duration(CALENDAR_JANITOR_SCHEDULE_MINUTES)*time.Minute, s.JanitorInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "localhost:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.arena.pro, https://arena.pro")

	s := Load()

	assert.Equal(t, "localhost:6380", s.RedisAddress)
	assert.Equal(t, 3, s.RedisDB)
	assert.Equal(t, 2.5, s.RateLimitPerSecond)
	assert.Equal(t, []string{"https://admin.arena.pro", "https://arena.pro"}, s.AllowedOrigins)
}

func TestLoad_InvalidIntegerFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	s := Load()

	assert.Equal(t, REDIS_DB, s.RedisDB)
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/arena")

	assert.Equal(t, filepath.Join("/srv/arena", "resources", VENUES_RESOURCE), GetResourcePath(VENUES_RESOURCE))
}

func TestLoad_ProdRequiresAdminSecret(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ADMIN_JWT_SECRET", "")

	s := Load()

	assert.True(t, s.IsProd())
	assert.Empty(t, s.AdminJWTSecret)
	assert.ErrorIs(t, s.Validate(), ErrMissingAdminSecret)
}

func TestLoad_ProdAdminSecretFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ADMIN_JWT_SECRET", "s3cr3t")

	s := Load()

	assert.Equal(t, "s3cr3t", s.AdminJWTSecret)
	assert.NoError(t, s.Validate())
}

func TestLoad_DevFallsBackToDevSecret(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("ADMIN_JWT_SECRET", "")

	s := Load()

	assert.False(t, s.IsProd())
	assert.Equal(t, ADMIN_JWT_DEV_SECRET, s.AdminJWTSecret)
	assert.NoError(t, s.Validate())
}
