package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Dataset.Source)
	assert.Equal(t, "data/train.json", cfg.Dataset.Path)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.Recommend.DefaultCount)
	assert.Equal(t, 50, cfg.Recommend.MaxCount)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PANTRYPAL_SERVER_PORT", "9191")
	t.Setenv("PANTRYPAL_LOG_LEVEL", "debug")
	t.Setenv("PANTRYPAL_DATASET_PATH", "/data/recipes.json")
	t.Setenv("PANTRYPAL_REDIS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data/recipes.json", cfg.Dataset.Path)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
environment: test
server:
  port: 7070
dataset:
  source: s3
  s3:
    bucket: pantrypal-datasets
    key: train.json
    region: eu-west-1
recommend:
  default_count: 3
  max_count: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "s3", cfg.Dataset.Source)
	assert.Equal(t, "pantrypal-datasets", cfg.Dataset.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Dataset.S3.Region)
	assert.Equal(t, 3, cfg.Recommend.DefaultCount)
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	t.Setenv("PANTRYPAL_ENVIRONMENT", "staging")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateRejectsS3WithoutBucket(t *testing.T) {
	t.Setenv("PANTRYPAL_DATASET_SOURCE", "s3")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset.s3.bucket")
}

func TestValidateRejectsMaxBelowDefault(t *testing.T) {
	t.Setenv("PANTRYPAL_RECOMMEND_MAX_COUNT", "2")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_count")
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{Environment: "production"}
	assert.True(t, cfg.IsProduction())

	cfg.Environment = "development"
	assert.False(t, cfg.IsProduction())
}

func TestRedisAddr(t *testing.T) {
	rc := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", rc.Addr())
}
