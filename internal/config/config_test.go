package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "jarda.db", cfg.DB.Path)
	require.Empty(t, cfg.Redis.Addr)
	require.Empty(t, cfg.Advisory.APIKey)
	require.Equal(t, 6*time.Second, cfg.Advisory.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JARDA_SERVER_PORT", "9000")
	t.Setenv("JARDA_DB_PATH", "/tmp/other.db")
	t.Setenv("JARDA_REDIS_ADDR", "localhost:6379")
	t.Setenv("JARDA_ADVISORY_API_KEY", "secret")
	t.Setenv("JARDA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "/tmp/other.db", cfg.DB.Path)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, "secret", cfg.Advisory.APIKey)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("JARDA_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
advisory:
  model: gemini-2.0-flash
`), 0o644))
	t.Setenv("JARDA_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "gemini-2.0-flash", cfg.Advisory.Model)
	// Values the file omits keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))
	t.Setenv("JARDA_CONFIG_PATH", path)
	t.Setenv("JARDA_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)
}
