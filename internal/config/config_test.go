package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlData := []byte(`
server:
  address: ":9000"
database:
  driver: mysql
  url: "root@tcp(localhost:3306)/skillsync?parseTime=true"
auth:
  jwt_secret: file-secret
s3:
  url_ttl: 30m
`)
	require.NoError(t, os.WriteFile(path, yamlData, 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.S3.URLTTL)
	assert.Equal(t, "https://api.stripe.com", cfg.Stripe.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.Database.URL = "dsn"
	assert.EqualError(t, cfg.Validate(), "auth jwt secret is required")

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.EqualError(t, cfg.Validate(), `unsupported database driver "postgres"`)
}

func TestLoadConfig_BadRedisDB(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "dsn")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("REDIS_DB", "nope")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}
