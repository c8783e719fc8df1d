package shader

import (
	"fmt"

	"fireball/internal/engine3D/gpu"
	"fireball/internal/utils"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is a mesh whose buffers a Program can bind and draw.
// BindPos and BindNor bind the array buffer and report whether one exists.
type Drawable interface {
	BindPos() bool
	BindNor() bool
	BindIdx()
	DrawMode() gpu.Primitive
	ElemCount() int32
}

// Program is a linked GPU program with its uniform slots resolved once.
// Every setter binds the program first, so callers never need to call Use
// before writing a uniform.
type Program struct {
	ID   gpu.ProgramID
	Name string

	Attributes Attributes
	Uniforms   Uniforms

	ctx *gpu.Context
}

// NewProgram links the given stages in order.
func NewProgram(ctx *gpu.Context, shaders ...*Shader) (*Program, error) {
	if len(shaders) == 0 {
		return nil, ErrNoStages
	}

	ids := make([]gpu.ShaderID, len(shaders))
	for i, s := range shaders {
		ids[i] = s.ID
	}

	id := ctx.CreateProgram(ids)
	if ok, log := ctx.ProgramStatus(id); !ok {
		ctx.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", ErrLink, log)
	}

	attributes, uniforms := ResolveLocations(ctx, id)
	return &Program{
		ID:         id,
		Attributes: attributes,
		Uniforms:   uniforms,
		ctx:        ctx,
	}, nil
}

// Use makes this the active program. Repeated calls are free.
func (p *Program) Use() {
	p.ctx.UseProgram(p.ID)
}

func (p *Program) SetModelMatrix(model mgl32.Mat4) {
	p.Use()
	if loc, ok := p.Uniforms.Model.Get(); ok {
		p.ctx.UniformMatrix4(loc, model)
	}
	if loc, ok := p.Uniforms.ModelInvTr.Get(); ok {
		p.ctx.UniformMatrix4(loc, model.Transpose().Inv())
	}
}

func (p *Program) SetViewProjMatrix(viewProj mgl32.Mat4) {
	p.Use()
	if loc, ok := p.Uniforms.ViewProj.Get(); ok {
		p.ctx.UniformMatrix4(loc, viewProj)
	}
}

func (p *Program) SetCameraPosition(pos mgl32.Vec3) {
	p.Use()
	if loc, ok := p.Uniforms.CameraPos.Get(); ok {
		p.ctx.Uniform3(loc, pos)
	}
}

func (p *Program) SetGeometryColor(color mgl32.Vec4) {
	p.Use()
	if loc, ok := p.Uniforms.Color.Get(); ok {
		p.ctx.Uniform4(loc, color)
	}
}

// SetGradientType writes the palette index. The shaders declare it as a float.
func (p *Program) SetGradientType(gradientType int) {
	p.Use()
	if loc, ok := p.Uniforms.GradientType.Get(); ok {
		p.ctx.Uniform1f(loc, float32(gradientType))
	}
}

func (p *Program) SetSwayLevel(level float32) {
	p.Use()
	if loc, ok := p.Uniforms.SwayLevel.Get(); ok {
		p.ctx.Uniform1f(loc, level)
	}
}

func (p *Program) SetFrameThreshold(threshold float32) {
	p.Use()
	if loc, ok := p.Uniforms.FrameThreshold.Get(); ok {
		p.ctx.Uniform1f(loc, threshold)
	}
}

// SetTime writes elapsed milliseconds.
func (p *Program) SetTime(t float32) {
	p.Use()
	if loc, ok := p.Uniforms.Time.Get(); ok {
		p.ctx.Uniform1f(loc, t)
	}
}

func (p *Program) SetResolution(resolution mgl32.Vec2) {
	p.Use()
	if loc, ok := p.Uniforms.Resolution.Get(); ok {
		p.ctx.Uniform2(loc, resolution)
	}
}

// SetSceneTexture points the u_Scene sampler at a texture unit.
func (p *Program) SetSceneTexture(unit int32) {
	p.Use()
	if loc, ok := p.Uniforms.Scene.Get(); ok {
		p.ctx.Uniform1i(loc, unit)
	}
}

// SetBloomTexture points the u_Bloom sampler at a texture unit.
func (p *Program) SetBloomTexture(unit int32) {
	p.Use()
	if loc, ok := p.Uniforms.Bloom.Get(); ok {
		p.ctx.Uniform1i(loc, unit)
	}
}

// Draw binds the drawable's vertex streams and issues one indexed draw.
// Every attribute array the program declares is disabled again afterwards.
func (p *Program) Draw(d Drawable) {
	p.Use()

	if idx, ok := p.Attributes.Pos.Attrib(); ok && d.BindPos() {
		p.ctx.EnableVertexAttrib(idx)
		p.ctx.VertexAttribPointer(idx, 4)
	}

	if idx, ok := p.Attributes.Nor.Attrib(); ok && d.BindNor() {
		p.ctx.EnableVertexAttrib(idx)
		p.ctx.VertexAttribPointer(idx, 4)
	}

	d.BindIdx()
	p.ctx.DrawElements(d.DrawMode(), d.ElemCount())

	if idx, ok := p.Attributes.Pos.Attrib(); ok {
		p.ctx.DisableVertexAttrib(idx)
	}
	if idx, ok := p.Attributes.Nor.Attrib(); ok {
		p.ctx.DisableVertexAttrib(idx)
	}
}

func (p *Program) Delete() {
	if p == nil || p.ctx == nil {
		return
	}
	utils.Debug("Shader: deleting program %s (ID: %d)", p.Name, p.ID)
	p.ctx.Forget(p.ID)
	p.ctx.DeleteProgram(p.ID)
	p.ctx = nil
}
