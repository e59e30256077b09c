package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "jobwise", cfg.App.AppName)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Zero(t, cfg.Redis.TTL)
	assert.Equal(t, 256, cfg.Analytics.CacheSize)
	assert.Equal(t, "weekly", cfg.Analytics.GrowthPeriod)
}

func TestFromEnv_RedisTTL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REDIS_TTL", "72h")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, cfg.Redis.TTL)

	t.Setenv("REDIS_TTL", "soon")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_TTL")
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnv_InvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "JWT_EXPIRES_IN")
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestFromEnv_PostgresRequiresHost(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{DBHost: " db ", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "jobs", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=jobs sslmode=disable", c.DSN())
}
