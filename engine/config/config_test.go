package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rampart.toml")
	content := `
scene_path = "scenes/keep.toml"
watch_scene = true

[window]
title = "Keep"
width = 1920
height = 1080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Keep", cfg.Window.Title)
	assert.Equal(t, uint32(1920), cfg.Window.Width)
	assert.Equal(t, uint32(1080), cfg.Window.Height)
	assert.Equal(t, "scenes/keep.toml", cfg.ScenePath)
	assert.True(t, cfg.WatchScene)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rampart.toml")
	content := `
[window]
title = "Partial"
width = 800
height = 600
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Window.Title)
	assert.Empty(t, cfg.ScenePath)
	assert.False(t, cfg.WatchScene)
}

func TestLoadRejectsZeroDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rampart.toml")
	content := `
[window]
title = "Broken"
width = 0
height = 600
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rampart.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\nbad"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "rampart.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Rampart", cfg.Window.Title)
	assert.Equal(t, "assets/scenes/castle.toml", cfg.ScenePath)
	assert.True(t, cfg.WatchScene)
}
