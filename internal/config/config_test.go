package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, "admin", cfg.Seed.StaffUsername)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "30")
	t.Setenv("SEED_STAFF_USERNAME", "dispatch")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, "dispatch", cfg.Seed.StaffUsername)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
