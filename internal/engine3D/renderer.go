package engine3D

import (
	"errors"

	"fireball/internal/control"
	"fireball/internal/engine3D/camera"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"
	"fireball/internal/utils"

	"github.com/go-gl/mathgl/mgl32"
)

// NewRenderer allocates the scene and bloom targets at the surface size.
func NewRenderer(ctx *gpu.Context, surface Surface) (*Renderer, error) {
	r := &Renderer{
		ctx:     ctx,
		surface: surface,
		scene:   newRenderTarget(ctx, "scene"),
		bloom:   newRenderTarget(ctx, "bloom"),
	}
	if err := r.ResizeBuffers(); err != nil {
		r.Delete()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) Context() *gpu.Context      { return r.ctx }
func (r *Renderer) SceneTarget() *RenderTarget { return r.scene }
func (r *Renderer) BloomTarget() *RenderTarget { return r.bloom }

// SetClearColor sets the color Clear fills with. Channels are 0-1.
func (r *Renderer) SetClearColor(cr, cg, cb, ca float32) {
	r.clearColor = [4]float32{cr, cg, cb, ca}
	r.ctx.ClearColor(cr, cg, cb, ca)
}

func (r *Renderer) ClearColor() [4]float32 { return r.clearColor }

// Clear clears color and depth of the bound target.
func (r *Renderer) Clear() {
	r.ctx.Clear(gpu.ClearColor | gpu.ClearDepth)
}

// SetSize resizes the output surface.
func (r *Renderer) SetSize(width, height int32) {
	r.surface.SetSize(width, height)
}

// Size is the current surface size, never smaller than 1x1.
func (r *Renderer) Size() (int32, int32) {
	w, h := r.surface.Size()
	return max(w, 1), max(h, 1)
}

// NeedsResize reports whether the targets no longer match the surface.
func (r *Renderer) NeedsResize() bool {
	w, h := r.Size()
	return r.scene.Width != w || r.scene.Height != h || r.bloom.Width != w || r.bloom.Height != h
}

// ResizeBuffers reallocates both target textures at the surface size and
// leaves the default framebuffer bound.
func (r *Renderer) ResizeBuffers() error {
	w, h := r.Size()
	errScene := r.scene.allocate(r.ctx, w, h)
	errBloom := r.bloom.allocate(r.ctx, w, h)
	r.ctx.BindFramebuffer(gpu.DefaultFramebuffer)

	if err := errors.Join(errScene, errBloom); err != nil {
		return err
	}
	utils.Info("Renderer: buffers resized to %dx%d", w, h)
	return nil
}

// BindTarget makes t (nil for the screen) the draw target and sets the
// viewport to the surface size.
func (r *Renderer) BindTarget(t *RenderTarget) {
	if t == nil {
		r.ctx.BindFramebuffer(gpu.DefaultFramebuffer)
	} else {
		r.ctx.BindFramebuffer(t.Framebuffer)
	}
	w, h := r.Size()
	r.ctx.Viewport(0, 0, w, h)
}

// Render pushes the per-frame uniforms to prog and draws each drawable in order.
func (r *Renderer) Render(cam *camera.Camera, prog *shader.Program, drawables []shader.Drawable,
	baseColor [3]int, time float32, gradientType int, swayLevel, frameThreshold float32) {
	model := mgl32.Ident4()
	viewProj := cam.ProjectionMatrix.Mul4(cam.ViewMatrix)

	prog.SetModelMatrix(model)
	prog.SetCameraPosition(cam.Position)
	prog.SetViewProjMatrix(viewProj)
	prog.SetGeometryColor(control.ColorVec(baseColor))
	prog.SetTime(time)
	prog.SetGradientType(gradientType)
	prog.SetSwayLevel(swayLevel)
	prog.SetFrameThreshold(frameThreshold)

	for _, d := range drawables {
		prog.Draw(d)
	}
}

// RenderFullscreenQuad runs a post-process program over quad.
func (r *Renderer) RenderFullscreenQuad(prog *shader.Program, quad shader.Drawable, resolution mgl32.Vec2, time float32) {
	prog.SetResolution(resolution)
	prog.SetTime(time)
	prog.Draw(quad)
}

// Delete frees both targets.
func (r *Renderer) Delete() {
	r.ctx.BindFramebuffer(gpu.DefaultFramebuffer)
	r.scene.delete(r.ctx)
	r.bloom.delete(r.ctx)
}
