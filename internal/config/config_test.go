package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "mural")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mural")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
	t.Setenv("MINIO_BUCKET", "mural")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("MINIO_SSL", "true")
	t.Setenv("ALLOW_URL_INGESTION", "true")
	t.Setenv("CACHE_TTL_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "mural", cfg.MinioBucket)
	assert.True(t, cfg.MinioSSL)
	assert.True(t, cfg.AllowURLIngestion)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.MinioSSL)
	assert.False(t, cfg.AllowURLIngestion)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.AIBaseURL)
}

func TestLoadConfigMissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database configuration is incomplete")
}

func TestLoadConfigMissingMinio(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MINIO_BUCKET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minio configuration is incomplete")
}

func TestLoadConfigInvalidSSL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MINIO_SSL", "maybe")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MINIO_SSL")
}
