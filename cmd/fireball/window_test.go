package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fireball/internal/config"
	"fireball/internal/control"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSize(t *testing.T) {
	root := func() (int, int, error) { return 2560, 1440, nil }
	noScreen := func() (int, int, error) { return 0, 0, errors.New("no display") }

	w, h := windowSize(config.Window{Width: 800, Height: 600}, root)
	assert.Equal(t, [2]int32{800, 600}, [2]int32{w, h})

	w, h = windowSize(config.Window{}, root)
	assert.Equal(t, [2]int32{2560, 1440}, [2]int32{w, h})

	w, h = windowSize(config.Window{Width: 800}, noScreen)
	assert.Equal(t, [2]int32{fallbackWidth, fallbackHeight}, [2]int32{w, h})
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		nx, ny float32
	}{
		{"top left", 0, 0, -1, 1},
		{"bottom right", 100, 50, 1, -1},
		{"center", 50, 25, 0, 0},
		{"outside", 500, -10, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nx, ny := normalizePointer(tt.x, tt.y, 101, 51)
			assert.InDelta(t, tt.nx, nx, 1e-6)
			assert.InDelta(t, tt.ny, ny, 1e-6)
		})
	}

	nx, ny := normalizePointer(10, 10, 0, 0)
	assert.Zero(t, nx)
	assert.Zero(t, ny)
}

func TestCaptureName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 250*int(time.Millisecond), time.UTC)
	assert.Equal(t, "captures/fireball-20240309-140507.250.png", captureName("captures", at))
}

func TestApplyOverridesSurvivesReload(t *testing.T) {
	opts := Options{FollowPointer: true}

	fromFile := config.Default()
	assert.False(t, fromFile.Camera.FollowPointer)
	assert.True(t, applyOverrides(fromFile, opts).Camera.FollowPointer)

	reloaded := config.Default()
	reloaded.Controls.Tessellations = 2
	got := applyOverrides(reloaded, opts)
	assert.True(t, got.Camera.FollowPointer)
	assert.Equal(t, 2, got.Controls.Tessellations)

	assert.False(t, applyOverrides(config.Default(), Options{}).Camera.FollowPointer)
}

func TestSaveControlsKeepsFileSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireball.toml")
	fileCfg := config.Default()
	fileCfg.Window.Width = 640

	params := control.Defaults()
	params.GradientType = 3
	saved, err := saveControls(path, fileCfg, params)
	require.NoError(t, err)
	assert.Equal(t, params, saved.Controls)

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, got.Window.Width)
	assert.Equal(t, 3, got.Controls.GradientType)
	assert.False(t, got.Camera.FollowPointer)
}
