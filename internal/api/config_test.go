package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.NotEmpty(t, cfg.ReviewerID)
	assert.False(t, cfg.LogCalls)
	assert.Equal(t, 30000, cfg.RefreshIntervalMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LECTERN_CONFIG", filepath.Join(t.TempDir(), "nonexistent.yaml"))
	t.Setenv("LECTERN_API_URL", "http://content.internal:9000")
	t.Setenv("LECTERN_REVIEWER", "rev_42")
	t.Setenv("LECTERN_LOG_CALLS", "true")
	t.Setenv("LECTERN_REFRESH_INTERVAL_MS", "5000")

	cfg := LoadConfig()
	assert.Equal(t, "http://content.internal:9000", cfg.BaseURL)
	assert.Equal(t, "rev_42", cfg.ReviewerID)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 5000, cfg.RefreshIntervalMs)
}

func TestLoadConfig_YamlFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_url: http://staging:8000\nreviewer: rev_staging\nlog_calls: true\nrefresh_interval_ms: 10000\n",
	), 0o644))

	t.Setenv("LECTERN_CONFIG", path)
	t.Setenv("LECTERN_API_URL", "")
	t.Setenv("LECTERN_REVIEWER", "")
	t.Setenv("LECTERN_LOG_CALLS", "")
	t.Setenv("LECTERN_REFRESH_INTERVAL_MS", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://staging:8000", cfg.BaseURL)
	assert.Equal(t, "rev_staging", cfg.ReviewerID)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 10000, cfg.RefreshIntervalMs)
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://staging:8000\n"), 0o644))

	t.Setenv("LECTERN_CONFIG", path)
	t.Setenv("LECTERN_API_URL", "http://prod:8000")

	cfg := LoadConfig()
	assert.Equal(t, "http://prod:8000", cfg.BaseURL)
}

func TestLoadConfig_MalformedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::not yaml"), 0o644))

	t.Setenv("LECTERN_CONFIG", path)
	t.Setenv("LECTERN_API_URL", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
}
