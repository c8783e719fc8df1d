package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// UIContext lays out immediate mode rows top to bottom.
type UIContext struct {
	X, Y       int
	LineHeight int
	FontHeight int
	Font       rl.Font
}

func NewUIContext(x, y, lineHeight, fontHeight int, font rl.Font) *UIContext {
	return &UIContext{
		X:          x,
		Y:          y,
		LineHeight: lineHeight,
		FontHeight: fontHeight,
		Font:       font,
	}
}

func (ui *UIContext) drawText(text string, x, y int32, color rl.Color) {
	if ui.Font.BaseSize > 0 {
		rl.DrawTextEx(ui.Font, text, rl.NewVector2(float32(x), float32(y)), float32(ui.FontHeight), 1, color)
	} else {
		rl.DrawText(text, x, y, int32(ui.FontHeight), color)
	}
}

func (ui *UIContext) IndentLabel(text string, indent int) {
	ui.drawText(text, int32(ui.X+indent), int32(ui.Y), rl.LightGray)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Header(text string) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), rl.Gold)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Separator() {
	ui.Y += ui.LineHeight / 2
}

// Swatch draws a small filled square followed by a label.
func (ui *UIContext) Swatch(label string, c rl.Color, indent int) {
	size := int32(float64(ui.FontHeight) * 0.9)
	x := int32(ui.X + indent)
	rl.DrawRectangle(x, int32(ui.Y)+1, size, size, c)
	rl.DrawRectangleLines(x, int32(ui.Y)+1, size, size, rl.White)
	ui.drawText(label, x+size+6, int32(ui.Y), rl.LightGray)
	ui.Y += ui.LineHeight
}
