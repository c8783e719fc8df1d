package main

import (
	"fmt"

	"fireball/internal/config"
	"fireball/internal/engine3D"
	"fireball/internal/engine3D/camera"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"
	"fireball/internal/utils"

	"github.com/go-gl/mathgl/mgl32"
)

// programSources names the vertex and fragment sources of each program.
var programSources = []struct {
	vert, frag string
	slot       func(*engine3D.Programs) **shader.Program
}{
	{"lambert-vert", "lambert-frag", func(p *engine3D.Programs) **shader.Program { return &p.Base }},
	{"layer-vert", "layer-frag", func(p *engine3D.Programs) **shader.Program { return &p.Layer }},
	{"passthroughQuad-vert", "bloomExtract-frag", func(p *engine3D.Programs) **shader.Program { return &p.BloomExtract }},
	{"passthroughQuad-vert", "bloomCombine-frag", func(p *engine3D.Programs) **shader.Program { return &p.Combine }},
}

// loadPrograms compiles every program. On failure the ones already built
// are deleted.
func loadPrograms(ctx *gpu.Context) (engine3D.Programs, error) {
	var programs engine3D.Programs
	for _, src := range programSources {
		prog, err := shader.LoadProgram(ctx, src.vert, src.frag)
		if err != nil {
			deletePrograms(programs)
			return engine3D.Programs{}, fmt.Errorf("%s/%s: %w", src.vert, src.frag, err)
		}
		utils.Debug("Loaded program %s (%s + %s)", prog.Name, src.vert, src.frag)
		*src.slot(&programs) = prog
	}
	return programs, nil
}

func deletePrograms(p engine3D.Programs) {
	for _, prog := range []*shader.Program{p.Base, p.Layer, p.BloomExtract, p.Combine} {
		if prog != nil {
			prog.Delete()
		}
	}
}

// load creates the GPU side of the window: device, targets, programs,
// geometry, camera and the frame driver.
func (w *Window) load() error {
	device, err := gpu.NewGLDevice()
	if err != nil {
		return err
	}
	w.device = device
	w.ctx = gpu.NewContext(device)

	w.renderer, err = engine3D.NewRenderer(w.ctx, w)
	if err != nil {
		w.ctx.Close()
		return err
	}
	c := w.cfg.Render.ClearColor
	w.renderer.SetClearColor(c[0], c[1], c[2], c[3])

	w.programs, err = loadPrograms(w.ctx)
	if err != nil {
		w.renderer.Delete()
		w.ctx.Close()
		return err
	}

	pipeline := engine3D.DefaultPipeline(w.programs)
	if err := pipeline.Validate(); err != nil {
		w.unload()
		return err
	}

	w.scene = engine3D.NewScene(device, w.panel.Snapshot().Tessellations)

	w.camera = camera.New(mgl32.Vec3(w.cfg.Camera.Position), mgl32.Vec3(w.cfg.Camera.Target))
	w.camera.FovY = w.cfg.Camera.FovY
	width, height := w.renderer.Size()
	w.camera.SetAspectRatio(float32(width) / float32(height))
	w.camera.UpdateProjectionMatrix()

	w.driver = engine3D.NewDriver(w.renderer, w.camera, w.scene, pipeline, w.panel)
	return nil
}

func (w *Window) unload() {
	if w.scene != nil {
		w.scene.Delete()
	}
	deletePrograms(w.programs)
	if w.renderer != nil {
		w.renderer.Delete()
	}
	if w.ctx != nil {
		w.ctx.Close()
	}
}

// WatchConfig reloads path on edits. Reloads are applied on the render
// thread at the start of the next frame.
func (w *Window) WatchConfig(path string) {
	watcher, err := config.Watch(path, func(cfg config.Config) {
		select {
		case <-w.reloads:
		default:
		}
		w.reloads <- cfg
	})
	if err != nil {
		utils.Warn("Config: not watching %s: %v", path, err)
		return
	}
	w.watcher = watcher
}

func (w *Window) applyReloads() {
	select {
	case cfg := <-w.reloads:
		w.applyConfig(cfg)
	default:
	}
}

func (w *Window) applyConfig(cfg config.Config) {
	w.fileCfg = cfg
	cfg = applyOverrides(cfg, w.opts)
	if cfg.Controls != w.cfg.Controls {
		w.panel.Set(cfg.Controls)
	}

	c := cfg.Render.ClearColor
	w.renderer.SetClearColor(c[0], c[1], c[2], c[3])

	if cfg.Camera.FovY != w.camera.FovY {
		w.camera.FovY = cfg.Camera.FovY
		w.camera.UpdateProjectionMatrix()
	}
	if cfg.Camera.FollowPointer != w.cfg.Camera.FollowPointer {
		w.follow = cfg.Camera.FollowPointer
	}
	if cfg.Render.Overlay != w.cfg.Render.Overlay {
		w.overlay.Visible = cfg.Render.Overlay
	}
	if cfg.Log.Level != w.cfg.Log.Level && !utils.DebugMode {
		utils.CurrentLevel = utils.ParseLevel(cfg.Log.Level)
	}
	if cfg.Window != w.cfg.Window {
		utils.Info("Config: window settings apply on restart")
	}

	w.cfg = cfg
	utils.Info("Config: applied reload")
}
