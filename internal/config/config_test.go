package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFallsBackToDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(cwd)
	require.NoError(t, os.Chdir(dir))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "marker_tag: my-mark\ncache_capacity: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "my-mark", cfg.MarkerTag)
	assert.Equal(t, 5, cfg.CacheCapacity)
	assert.Equal(t, 0.9, cfg.DomPathThreshold) // untouched key keeps its default
}

func TestEnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker_tag: file-mark\n"), 0o644))
	t.Setenv("HTMLHL_MARKER_TAG", "env-mark")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-mark", cfg.MarkerTag)
}

func TestToEngineConfigMapsFields(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.MarkerTag = "hl"
	cfg.CacheCapacity = 42

	ec := cfg.ToEngineConfig()
	assert.Equal(t, "hl", ec.MarkerTag)
	assert.Equal(t, 42, ec.CacheCapacity)
	assert.Equal(t, 0.9, ec.Thresholds.DomPath)
}
