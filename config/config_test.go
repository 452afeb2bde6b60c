package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "restaurant", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UsesMySQL())
	assert.Equal(t, "strict", cfg.Order.TransitionPolicy)
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 100, cfg.Worker.BatchSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  env: staging
database:
  type: mysql
  host: db.internal
order:
  transition_policy: permissive
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("RESTAURANT_DATABASE_HOST", "db.override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.True(t, cfg.UsesMySQL())
	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, "permissive", cfg.Order.TransitionPolicy)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown transition policy", "order:\n  transition_policy: sometimes\n"},
		{"default secret in production", "app:\n  env: production\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
