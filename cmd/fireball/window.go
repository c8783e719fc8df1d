package main

import (
	"fmt"
	"path/filepath"
	"time"

	"fireball/internal/capture"
	"fireball/internal/config"
	"fireball/internal/control"
	"fireball/internal/control/input"
	"fireball/internal/debug"
	"fireball/internal/engine3D"
	"fireball/internal/engine3D/camera"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fallbackWidth  = 1280
	fallbackHeight = 720

	captureDir = "captures"
)

// Options are command line settings that do not live in the config file.
type Options struct {
	ConfigPath    string
	CapturePath   string
	CaptureFrame  uint64
	FollowPointer bool
}

// applyOverrides layers command line settings over a loaded config. It runs
// at startup and again on every reload.
func applyOverrides(cfg config.Config, opts Options) config.Config {
	if opts.FollowPointer {
		cfg.Camera.FollowPointer = true
	}
	return cfg
}

// Window owns the raylib window and everything rendered into it.
type Window struct {
	cfg  config.Config
	opts Options

	// fileCfg is cfg before command line overrides, the version saved back.
	fileCfg config.Config

	device   *gpu.GLDevice
	ctx      *gpu.Context
	renderer *engine3D.Renderer
	programs engine3D.Programs
	scene    *engine3D.Scene
	camera   *camera.Camera
	driver   *engine3D.Driver
	panel    *control.Panel
	overlay  *debug.DebugOverlay

	watcher *config.Watcher
	reloads chan config.Config

	follow bool
}

func NewWindow(cfg config.Config, opts Options) (*Window, error) {
	fileCfg := cfg
	cfg = applyOverrides(cfg, opts)
	width, height := windowSize(cfg.Window, utils.GetRootSize)

	var flags uint32
	if cfg.Window.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.Window.VSync {
		flags |= rl.FlagVsyncHint
	}
	if cfg.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, cfg.Window.Title)
	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	w := &Window{
		cfg:     cfg,
		opts:    opts,
		fileCfg: fileCfg,
		panel:   control.NewPanel(cfg.Controls),
		overlay: debug.NewDebugOverlay(cfg.Render.Overlay),
		reloads: make(chan config.Config, 1),
		follow:  cfg.Camera.FollowPointer,
	}
	if err := w.load(); err != nil {
		rl.CloseWindow()
		return nil, err
	}
	return w, nil
}

// Size implements engine3D.Surface with the drawable size in pixels.
func (w *Window) Size() (int32, int32) {
	return int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight())
}

// SetSize asks the window manager for a new size. Resizes that came from
// the window manager already match and are ignored.
func (w *Window) SetSize(width, height int32) {
	cw, ch := w.Size()
	if cw == width && ch == height {
		return
	}
	rl.SetWindowSize(int(width), int(height))
}

func (w *Window) Run() error {
	utils.Info("Starting render loop...")

	for !rl.WindowShouldClose() {
		w.applyReloads()
		w.Update()

		rl.BeginDrawing()
		w.driver.Frame()

		if err := w.maybeCapture(); err != nil {
			rl.EndDrawing()
			return err
		}
		if w.opts.CapturePath != "" && w.driver.Stats().Frames >= w.opts.CaptureFrame {
			rl.EndDrawing()
			return nil
		}

		w.Draw()
		rl.EndDrawing()
	}
	return nil
}

// Update applies this frame's keyboard and mouse input.
func (w *Window) Update() {
	w.overlay.Update()
	input.HandleInput(w.panel, input.RaylibKeys{})

	orbit := w.camera.Orbit()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		orbit.Rotate(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		orbit.Zoom(wheel)
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		w.saveControls()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		w.follow = !w.follow
		utils.Info("Camera: follow pointer %v", w.follow)
	}
	if w.follow {
		w.followPointer(orbit)
	} else {
		orbit.StopFollowing()
	}
}

func (w *Window) followPointer(orbit *camera.Orbit) {
	x, y, err := utils.GetGlobalMousePosition()
	if err == nil {
		var rw, rh int
		rw, rh, err = utils.GetRootSize()
		if err == nil {
			orbit.Follow(normalizePointer(x, y, rw, rh))
			return
		}
	}
	utils.Warn("Camera: pointer unavailable, follow disabled: %v", err)
	w.follow = false
	orbit.StopFollowing()
}

// Draw renders the overlay on top of the finished frame.
func (w *Window) Draw() {
	rl.DisableDepthTest()
	width, height := w.renderer.Size()
	w.overlay.Draw(debug.Info{
		FPS:      rl.GetFPS(),
		Stats:    w.driver.Stats(),
		Params:   w.driver.LastParams(),
		Built:    w.scene.Built(),
		Rebuilds: w.scene.Rebuilds(),
		Width:    width,
		Height:   height,
		Distance: w.camera.Distance(),
		Follow:   w.follow,
		GPU:      w.device.Version(),
	})
	rl.DrawRenderBatchActive()
}

// maybeCapture saves the frame still bound on the default framebuffer,
// either at the -capture frame or when F12 is pressed.
func (w *Window) maybeCapture() error {
	var path string
	switch {
	case w.opts.CapturePath != "" && w.driver.Stats().Frames == w.opts.CaptureFrame:
		path = w.opts.CapturePath
	case rl.IsKeyPressed(rl.KeyF12):
		path = captureName(captureDir, time.Now())
	default:
		return nil
	}

	width, height := w.renderer.Size()
	frame, err := capture.Grab(w.device, width, height)
	if err == nil {
		err = capture.Save(path, frame)
	}
	if err != nil {
		return fmt.Errorf("capture %s: %w", path, err)
	}
	return nil
}

func (w *Window) Close() {
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.unload()
	rl.CloseWindow()
	utils.CloseX11()
}

func (w *Window) saveControls() {
	if w.opts.ConfigPath == "" {
		return
	}
	cfg, err := saveControls(w.opts.ConfigPath, w.fileCfg, w.panel.Snapshot())
	if err != nil {
		utils.Error("Config: save failed: %v", err)
		return
	}
	w.fileCfg = cfg
}

// saveControls writes params into the [controls] section of the file config.
func saveControls(path string, fileCfg config.Config, params control.Params) (config.Config, error) {
	fileCfg.Controls = params
	if err := config.Save(path, fileCfg); err != nil {
		return fileCfg, err
	}
	utils.Info("Config: saved controls to %s", path)
	return fileCfg, nil
}

// windowSize picks the configured size, or the screen size when unset.
func windowSize(cfg config.Window, rootSize func() (int, int, error)) (int32, int32) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return int32(cfg.Width), int32(cfg.Height)
	}
	rw, rh, err := rootSize()
	if err != nil || rw <= 0 || rh <= 0 {
		utils.Debug("Window: screen size unknown (%v), using %dx%d", err, fallbackWidth, fallbackHeight)
		return fallbackWidth, fallbackHeight
	}
	return int32(rw), int32(rh)
}

// normalizePointer maps root window pixels to [-1, 1] with +y up.
func normalizePointer(x, y, width, height int) (float32, float32) {
	if width <= 1 || height <= 1 {
		return 0, 0
	}
	nx := 2*float32(x)/float32(width-1) - 1
	ny := 1 - 2*float32(y)/float32(height-1)
	return mgl32.Clamp(nx, -1, 1), mgl32.Clamp(ny, -1, 1)
}

func captureName(dir string, t time.Time) string {
	return filepath.Join(dir, "fireball-"+t.Format("20060102-150405.000")+".png")
}
