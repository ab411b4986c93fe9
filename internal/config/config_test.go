package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleurish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvDatabaseDSN, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	path := writeConfig(t, `
api:
  base_url: https://fleurish.example/api/
  timeout_seconds: 3
server:
  listen_address: 127.0.0.1:9090
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fleurish.example/api/", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.TimeoutSeconds)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.ListenAddress)
	assert.Equal(t, 8, cfg.Server.DirectoryFanOut, "unset keys keep defaults")
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://file.example/api/\n")
	t.Setenv(EnvAPIBaseURL, "https://env.example/api/")
	t.Setenv(EnvDatabaseDSN, "postgres://u:p@localhost/fleurish")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example/api/", cfg.API.BaseURL)
	assert.Equal(t, "postgres://u:p@localhost/fleurish", cfg.Database.DSN)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv_IgnoresMalformedNumbers(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvAPITimeout: "soon", EnvListenAddr: "  :7070 "}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, ":7070", cfg.Server.ListenAddress)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "localhost/api"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.API.TimeoutSeconds = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	assert.NoError(t, Default().Validate())
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv(EnvPath, "/etc/fleurish.yaml")
	assert.Equal(t, "/etc/fleurish.yaml", Path())
}
