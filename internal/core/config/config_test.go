package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/waymark/internal/core/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/todos", cfg.StartPath)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.Equal(t, "dark", cfg.TUI.Theme)
	assert.Empty(t, cfg.Seed)
}

func TestLoad_fileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
start_path: /todo/new
seed:
  - "Write the changelog"
  - "Cut the release"
history:
  limit: 10
tui:
  theme: light
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/todo/new", cfg.StartPath)
	assert.Equal(t, []string{"Write the changelog", "Cut the release"}, cfg.Seed)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, "light", cfg.TUI.Theme)
}

func TestLoad_partialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `seed: ["One"]`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/todos", cfg.StartPath)
	assert.Equal(t, "dark", cfg.TUI.Theme)
}

func TestLoad_invalidYAML(t *testing.T) {
	path := writeConfig(t, "start_path: [broken")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "relative start path",
			mutate:  func(c *config.Config) { c.StartPath = "todos" },
			wantErr: "must begin with /",
		},
		{
			name:    "negative history limit",
			mutate:  func(c *config.Config) { c.History.Limit = -1 },
			wantErr: "history.limit",
		},
		{
			name:    "empty seed entry",
			mutate:  func(c *config.Config) { c.Seed = []string{"ok", ""} },
			wantErr: "seed[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
