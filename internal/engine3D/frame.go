package engine3D

import (
	"time"

	"fireball/internal/control"
	"fireball/internal/engine3D/camera"
	"fireball/internal/utils"
)

// ParamSource supplies one parameter snapshot per frame.
type ParamSource interface {
	Snapshot() control.Params
	TakeLoadRequest() bool
}

// Driver runs the per-frame sequence: camera update, optional geometry
// refresh, then every pipeline pass.
type Driver struct {
	Renderer *Renderer
	Camera   *camera.Camera
	Scene    *Scene
	Pipeline *Pipeline
	Params   ParamSource

	// Now is the clock; tests replace it.
	Now func() time.Time

	state  FrameState
	start  time.Time
	stats  FrameStats
	last   control.Params
	onPass func(*Pass)
}

func NewDriver(r *Renderer, cam *camera.Camera, scene *Scene, pipeline *Pipeline, params ParamSource) *Driver {
	d := &Driver{
		Renderer: r,
		Camera:   cam,
		Scene:    scene,
		Pipeline: pipeline,
		Params:   params,
		Now:      time.Now,
	}
	d.start = d.Now()
	d.onPass = func(p *Pass) { d.setState(p.State) }
	return d
}

func (d *Driver) State() FrameState { return d.state }
func (d *Driver) Stats() FrameStats { return d.stats }

// LastParams is the snapshot the previous frame rendered with.
func (d *Driver) LastParams() control.Params { return d.last }

// Elapsed is the time value pushed to u_Time, in milliseconds.
func (d *Driver) Elapsed() float32 {
	return float32(d.Now().Sub(d.start).Seconds() * 1000)
}

func (d *Driver) setState(s FrameState) { d.state = s }

// Resize resizes the surface and both targets, then updates the camera aspect.
// Call it between frames on the render thread.
func (d *Driver) Resize(width, height int32) error {
	d.Renderer.SetSize(width, height)
	err := d.Renderer.ResizeBuffers()

	w, h := d.Renderer.Size()
	d.Camera.SetAspectRatio(float32(w) / float32(h))
	d.Camera.UpdateProjectionMatrix()
	return err
}

// Frame renders one complete frame. It always runs every pass.
func (d *Driver) Frame() {
	begin := d.Now()
	ctx := d.Renderer.Context()
	ctx.Reset()

	if d.Renderer.NeedsResize() {
		w, h := d.Renderer.Size()
		if err := d.Resize(w, h); err != nil {
			utils.Error("Frame: %v", err)
		}
	}

	params := d.Params.Snapshot()

	d.setState(StateCameraUpdate)
	d.Camera.Update()

	if d.Params.TakeLoadRequest() {
		d.setState(StateGeometryRefresh)
		d.Scene.Load(params.Tessellations)
	} else if params.Tessellations != d.Scene.Built() {
		d.setState(StateGeometryRefresh)
		d.Scene.Refresh(params.Tessellations)
	}

	in := FrameInputs{
		Camera:         d.Camera,
		Meshes:         d.Scene.Meshes(),
		Quad:           d.Scene.Quad(),
		BaseColor:      params.BaseColor,
		GradientType:   params.GradientType,
		SwayLevel:      params.SwayLevel,
		FrameThreshold: params.FrameThreshold,
		Time:           d.Elapsed(),
	}
	d.Pipeline.Execute(d.Renderer, in, d.onPass)

	d.setState(StateIdle)
	d.last = params
	d.record(d.Now().Sub(begin))
}

// record keeps an exponential moving average of frame time.
func (d *Driver) record(elapsed time.Duration) {
	d.stats.Frames++
	d.stats.Last = elapsed
	if d.stats.Frames == 1 {
		d.stats.Average = elapsed
		return
	}
	d.stats.Average += (elapsed - d.stats.Average) / 16
}

// OnPass registers a hook called as each pass begins, after the driver's
// own state update.
func (d *Driver) OnPass(fn func(*Pass)) {
	d.onPass = func(p *Pass) {
		d.setState(p.State)
		fn(p)
	}
}
