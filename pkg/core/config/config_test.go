package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "gemini", cfg.LLM.ActiveProvider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 20, cfg.LLM.RequestsPerMinute)
	assert.Contains(t, cfg.LLM.Providers, "gemini")
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	body := `
server:
  addr: ":9090"
store:
  driver: badger
  badger_dir: /tmp/x
llm:
  active_provider: claude
  timeout: 10s
  providers:
    claude:
      kind: claude
      api_key_env: ANTHROPIC_API_KEY
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("HAGWON_STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/hagwon")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/hagwon", cfg.Store.DatabaseURL)
	assert.Equal(t, "claude", cfg.LLM.ActiveProvider)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 20, cfg.LLM.RequestsPerMinute)
	assert.Len(t, cfg.LLM.Providers, 1)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
