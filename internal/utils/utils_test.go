package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"verbose": LevelWarn,
		"":        LevelWarn,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestSetDebugLowersLevel(t *testing.T) {
	level, mode := CurrentLevel, DebugMode
	t.Cleanup(func() { CurrentLevel, DebugMode = level, mode })

	CurrentLevel = LevelError
	SetDebug(true)
	assert.True(t, DebugMode)
	assert.Equal(t, LevelDebug, CurrentLevel)
}

func TestResolveAssetPathPrefersOverride(t *testing.T) {
	old := AssetsDir
	t.Cleanup(func() { AssetsDir = old })

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "x.glsl"), []byte("void main() {}"), 0o644))

	DiscoverAssets(dir)
	assert.Equal(t, dir, AssetsDir)
	assert.Equal(t, filepath.Join(dir, "shaders", "x.glsl"), ResolveAssetPath("shaders/x.glsl"))
	assert.True(t, AssetExists("shaders/x.glsl"))
	assert.False(t, AssetExists("shaders/missing.glsl"))
}

func TestDiscoverAssetsIgnoresMissingDir(t *testing.T) {
	old := AssetsDir
	t.Cleanup(func() { AssetsDir = old })

	AssetsDir = ""
	DiscoverAssets(filepath.Join(t.TempDir(), "nope"))
	assert.Empty(t, AssetsDir)
}
