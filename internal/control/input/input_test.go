package input

import (
	"testing"

	"fireball/internal/control"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys struct {
	pressed map[int32]bool
	down    map[int32]bool
}

func press(keys ...int32) *fakeKeys {
	f := &fakeKeys{pressed: map[int32]bool{}, down: map[int32]bool{}}
	for _, k := range keys {
		f.pressed[k] = true
	}
	return f
}

func (f *fakeKeys) Pressed(key int32) bool { return f.pressed[key] }
func (f *fakeKeys) Down(key int32) bool    { return f.down[key] }

func TestHandleInput(t *testing.T) {
	tests := []struct {
		name  string
		keys  *fakeKeys
		check func(t *testing.T, p control.Params)
	}{
		{"tessellation up", press(rl.KeyUp), func(t *testing.T, p control.Params) {
			assert.Equal(t, 6, p.Tessellations)
		}},
		{"tessellation down", press(rl.KeyDown), func(t *testing.T, p control.Params) {
			assert.Equal(t, 4, p.Tessellations)
		}},
		{"gradient type", press(rl.KeyRight), func(t *testing.T, p control.Params) {
			assert.Equal(t, 7, p.GradientType)
		}},
		{"sway", press(rl.KeyRightBracket), func(t *testing.T, p control.Params) {
			assert.InDelta(t, 0.16, p.SwayLevel, 1e-6)
		}},
		{"threshold", press(rl.KeyMinus), func(t *testing.T, p control.Params) {
			assert.InDelta(t, 0.49, p.FrameThreshold, 1e-6)
		}},
		{"red channel", press(rl.KeyR), func(t *testing.T, p control.Params) {
			assert.Equal(t, [3]int{66, 51, 51}, p.BaseColor)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := control.NewPanel(control.Defaults())
			require.True(t, HandleInput(panel, tt.keys))
			tt.check(t, panel.Snapshot())
		})
	}
}

func TestHandleInputShiftLowersColor(t *testing.T) {
	panel := control.NewPanel(control.Defaults())
	keys := press(rl.KeyB)
	keys.down[rl.KeyLeftShift] = true

	HandleInput(panel, keys)
	assert.Equal(t, [3]int{51, 51, 36}, panel.Snapshot().BaseColor)
}

func TestHandleInputActions(t *testing.T) {
	panel := control.NewPanel(control.Defaults())
	panel.Update(func(p *control.Params) { p.Tessellations = 2 })

	assert.False(t, HandleInput(panel, press()))

	HandleInput(panel, press(rl.KeyBackspace, rl.KeyL))
	assert.Equal(t, control.Defaults(), panel.Snapshot())
	assert.True(t, panel.TakeLoadRequest())
}

func TestHelpMentionsEveryLabel(t *testing.T) {
	help := Help()
	for _, b := range Bindings {
		if b.Label != "" {
			assert.Contains(t, help, b.Label)
		}
	}
}
