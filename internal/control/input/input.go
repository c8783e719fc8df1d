// Package input maps raylib keyboard state onto the control panel.
package input

import (
	"fireball/internal/control"
	"fireball/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Keys reports key presses for the current frame.
type Keys interface {
	Pressed(key int32) bool
	Down(key int32) bool
}

// RaylibKeys reads the keyboard of the raylib window.
type RaylibKeys struct{}

func (RaylibKeys) Pressed(key int32) bool { return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key) }
func (RaylibKeys) Down(key int32) bool    { return rl.IsKeyDown(key) }

// Binding maps one key to a parameter change.
type Binding struct {
	Key   int32
	Label string
	Apply func(p *control.Params)
}

// colorStep is how far R/G/B move a base color channel per press.
const colorStep = 15

// Bindings is the keyboard layout of the control surface. Holding shift
// reverses the R/G/B channel keys.
var Bindings = []Binding{
	{rl.KeyUp, "Up/Down: tessellations", func(p *control.Params) { p.Tessellations++ }},
	{rl.KeyDown, "", func(p *control.Params) { p.Tessellations-- }},
	{rl.KeyRight, "Left/Right: gradient type", func(p *control.Params) { p.GradientType++ }},
	{rl.KeyLeft, "", func(p *control.Params) { p.GradientType-- }},
	{rl.KeyRightBracket, "[ ]: sway level", func(p *control.Params) { p.SwayLevel += control.FloatStep }},
	{rl.KeyLeftBracket, "", func(p *control.Params) { p.SwayLevel -= control.FloatStep }},
	{rl.KeyEqual, "- =: frame threshold", func(p *control.Params) { p.FrameThreshold += control.FloatStep }},
	{rl.KeyMinus, "", func(p *control.Params) { p.FrameThreshold -= control.FloatStep }},
}

var channelKeys = [3]int32{rl.KeyR, rl.KeyG, rl.KeyB}

// HandleInput applies this frame's key presses to the panel. It returns
// true when any parameter changed.
func HandleInput(panel *control.Panel, keys Keys) bool {
	before := panel.Revision()

	if keys.Pressed(rl.KeyBackspace) {
		panel.Reset()
	}
	if keys.Pressed(rl.KeyL) {
		utils.Info("Controls: load scene requested")
		panel.RequestLoad()
	}

	shift := keys.Down(rl.KeyLeftShift) || keys.Down(rl.KeyRightShift)
	panel.Update(func(p *control.Params) {
		for _, b := range Bindings {
			if keys.Pressed(b.Key) {
				b.Apply(p)
			}
		}
		for ch, key := range channelKeys {
			if !keys.Pressed(key) {
				continue
			}
			if shift {
				p.BaseColor[ch] -= colorStep
			} else {
				p.BaseColor[ch] += colorStep
			}
		}
	})

	changed := panel.Revision() != before
	if changed {
		utils.Debug("Controls: %+v", panel.Snapshot())
	}
	return changed
}

// Help lists the key bindings for the overlay.
func Help() []string {
	lines := make([]string, 0, len(Bindings)+4)
	for _, b := range Bindings {
		if b.Label != "" {
			lines = append(lines, b.Label)
		}
	}
	return append(lines,
		"R/G/B (+Shift): base color",
		"L: load scene  Backspace: defaults",
		"F1: overlay  drag/wheel: orbit",
		"F: follow pointer  F5: save  F12: capture",
	)
}
