// Package debug draws the on-screen status overlay.
package debug

import (
	"fmt"
	"runtime"
	"time"

	"fireball/internal/control"
	"fireball/internal/control/input"
	"fireball/internal/engine3D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Info is what the overlay shows for one frame.
type Info struct {
	FPS      int32
	Stats    engine3D.FrameStats
	Params   control.Params
	Built    int
	Rebuilds int
	Width    int32
	Height   int32
	Distance float32
	Follow   bool
	GPU      string
}

// Section is a titled group of overlay rows.
type Section struct {
	Title string
	Rows  []string
}

type DebugOverlay struct {
	Visible bool

	fontHeight int
	lineHeight int
	panelWidth int

	memStats   runtime.MemStats
	lastSample time.Time
}

func NewDebugOverlay(visible bool) *DebugOverlay {
	return &DebugOverlay{
		Visible:    visible,
		fontHeight: 12,
		lineHeight: 18,
		panelWidth: 300,
	}
}

// Update handles the F1 toggle and refreshes memory stats twice a second.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyF1) {
		d.Visible = !d.Visible
	}
	if d.Visible && time.Since(d.lastSample) > 500*time.Millisecond {
		runtime.ReadMemStats(&d.memStats)
		d.lastSample = time.Now()
	}
}

// Sections builds the overlay text.
func Sections(info Info, heapMB float64) []Section {
	p := info.Params
	timing := Section{Title: "Timing:", Rows: []string{
		fmt.Sprintf("FPS: %d", info.FPS),
		fmt.Sprintf("Frame: %.2f ms (avg %.2f ms)", ms(info.Stats.Last), ms(info.Stats.Average)),
		fmt.Sprintf("Frames: %d", info.Stats.Frames),
	}}
	if info.GPU != "" {
		timing.Rows = append(timing.Rows, "GPU: "+info.GPU)
	}
	timing.Rows = append(timing.Rows, fmt.Sprintf("Heap: %.2f MB", heapMB))

	follow := "off"
	if info.Follow {
		follow = "on"
	}

	return []Section{
		timing,
		{Title: "Scene:", Rows: []string{
			fmt.Sprintf("Surface: %dx%d", info.Width, info.Height),
			fmt.Sprintf("Tessellations: %d (built %d, %d rebuilds)", p.Tessellations, info.Built, info.Rebuilds),
			fmt.Sprintf("Camera distance: %.2f  follow: %s", info.Distance, follow),
		}},
		{Title: "Controls:", Rows: []string{
			fmt.Sprintf("Base color: %d %d %d", p.BaseColor[0], p.BaseColor[1], p.BaseColor[2]),
			fmt.Sprintf("Gradient type: %d", p.GradientType),
			fmt.Sprintf("Sway level: %.2f", p.SwayLevel),
			fmt.Sprintf("Frame threshold: %.2f", p.FrameThreshold),
		}},
		{Title: "Keys:", Rows: input.Help()},
	}
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// Draw renders the panel. Call it inside BeginDrawing after the frame.
func (d *DebugOverlay) Draw(info Info) {
	if !d.Visible {
		return
	}

	sections := Sections(info, float64(d.memStats.HeapAlloc)/1024/1024)
	rows := 0
	for _, s := range sections {
		rows += len(s.Rows) + 2
	}
	height := int32(rows*d.lineHeight + 20)
	rl.DrawRectangle(0, 0, int32(d.panelWidth), height, rl.NewColor(0, 0, 0, 180))

	ui := NewUIContext(10, 10, d.lineHeight, d.fontHeight, rl.GetFontDefault())
	for _, s := range sections {
		ui.Header(s.Title)
		if s.Title == "Controls:" {
			c := info.Params.BaseColor
			ui.Swatch("base", rl.NewColor(uint8(c[0]), uint8(c[1]), uint8(c[2]), 255), 10)
		}
		for _, row := range s.Rows {
			ui.IndentLabel(row, 10)
		}
		ui.Separator()
	}
}
