package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Store.Host)
	assert.Equal(t, "6379", cfg.Store.Port)
	assert.Empty(t, cfg.Store.Password)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.GracefulShutdownTimeout)
	assert.Empty(t, cfg.Auth.SigningKey)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  host: redis.internal
  port: "6380"
  password: from-file
log:
  format: json
`), 0o600))
	t.Setenv("STORE_PASSWORD", "from-env")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Store.Host)
	assert.Equal(t, "6380", cfg.Store.Port)
	assert.Equal(t, "from-env", cfg.Store.Password)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o600))

	_, err := Load(New(), path)
	assert.Error(t, err)
}
