package engine3D

import (
	"fmt"

	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// TargetKind names where a pass draws or what a pass samples.
type TargetKind int

const (
	TargetScreen TargetKind = iota
	TargetScene
	TargetBloom
)

func (k TargetKind) String() string {
	switch k {
	case TargetScreen:
		return "screen"
	case TargetScene:
		return "scene"
	case TargetBloom:
		return "bloom"
	}
	return "unknown"
}

// Sampler is the program uniform a texture input feeds.
type Sampler int

const (
	SceneSampler Sampler = iota
	BloomSampler
)

// GeometryKind selects what a step draws.
type GeometryKind int

const (
	// SceneMeshes draws FrameInputs.Meshes through Renderer.Render.
	SceneMeshes GeometryKind = iota
	// FullscreenQuad draws FrameInputs.Quad through Renderer.RenderFullscreenQuad.
	FullscreenQuad
)

// Toggle switches one capability.
type Toggle struct {
	Cap gpu.Capability
	On  bool
}

func Enable(c gpu.Capability) Toggle  { return Toggle{Cap: c, On: true} }
func Disable(c gpu.Capability) Toggle { return Toggle{Cap: c, On: false} }

// TextureInput binds a previous target's texture to a unit and points the
// pass programs' sampler at it.
type TextureInput struct {
	Unit    uint32
	Source  TargetKind
	Sampler Sampler
}

// Step draws one geometry kind with one program after applying its toggles.
type Step struct {
	Toggles  []Toggle
	Program  *shader.Program
	Geometry GeometryKind
}

// Pass is one render operation into a single target.
//
// Execution order: Before toggles, bind target and viewport, texture inputs,
// clear, steps, After toggles.
type Pass struct {
	Name   string
	State  FrameState
	Before []Toggle
	Target TargetKind
	Inputs []TextureInput
	Clear  bool
	Steps  []Step
	After  []Toggle
}

// Pipeline is an ordered list of passes.
type Pipeline struct {
	Passes []Pass
}

// DefaultPipeline builds the scene, bloom extract and combine passes.
func DefaultPipeline(p Programs) *Pipeline {
	return &Pipeline{Passes: []Pass{
		// The window library leaves blending on; every pass writes opaque color.
		{
			Name:   "scene",
			State:  StateScenePass,
			Before: []Toggle{Disable(gpu.Blend)},
			Target: TargetScene,
			Clear:  true,
			Steps: []Step{
				{
					Toggles:  []Toggle{Enable(gpu.DepthTest), Enable(gpu.CullFace)},
					Program:  p.Base,
					Geometry: SceneMeshes,
				},
				{
					Toggles:  []Toggle{Disable(gpu.CullFace)},
					Program:  p.Layer,
					Geometry: SceneMeshes,
				},
			},
		},
		{
			Name:   "bloom-extract",
			State:  StateBloomExtractPass,
			Before: []Toggle{Disable(gpu.DepthTest)},
			Target: TargetBloom,
			Inputs: []TextureInput{{Unit: 0, Source: TargetScene, Sampler: SceneSampler}},
			Clear:  true,
			Steps:  []Step{{Program: p.BloomExtract, Geometry: FullscreenQuad}},
		},
		{
			Name:   "combine",
			State:  StateCombinePass,
			Target: TargetScreen,
			Inputs: []TextureInput{
				{Unit: 0, Source: TargetScene, Sampler: SceneSampler},
				{Unit: 1, Source: TargetBloom, Sampler: BloomSampler},
			},
			Clear: true,
			Steps: []Step{{Program: p.Combine, Geometry: FullscreenQuad}},
			// Hand the overlay back the state it expects.
			After: []Toggle{Enable(gpu.DepthTest), Enable(gpu.Blend)},
		},
	}}
}

// Validate checks that inputs never sample the pass's own target and that
// every sampled target was drawn by an earlier pass.
func (p *Pipeline) Validate() error {
	written := map[TargetKind]bool{}
	for _, pass := range p.Passes {
		for _, in := range pass.Inputs {
			if in.Source == pass.Target {
				return fmt.Errorf("pass %s samples its own %s target", pass.Name, in.Source)
			}
			if !written[in.Source] {
				return fmt.Errorf("pass %s samples %s before any pass wrote it", pass.Name, in.Source)
			}
		}
		for _, step := range pass.Steps {
			if step.Program == nil {
				return fmt.Errorf("pass %s has a step without a program", pass.Name)
			}
		}
		written[pass.Target] = true
	}
	return nil
}

// Execute runs every pass in order. onPass, when set, is called as each pass begins.
func (p *Pipeline) Execute(r *Renderer, in FrameInputs, onPass func(*Pass)) {
	for i := range p.Passes {
		pass := &p.Passes[i]
		if onPass != nil {
			onPass(pass)
		}
		r.executePass(pass, in)
	}
}

func (r *Renderer) target(kind TargetKind) *RenderTarget {
	switch kind {
	case TargetScene:
		return r.scene
	case TargetBloom:
		return r.bloom
	}
	return nil
}

func (r *Renderer) applyToggles(toggles []Toggle) {
	for _, t := range toggles {
		if t.On {
			r.ctx.Enable(t.Cap)
		} else {
			r.ctx.Disable(t.Cap)
		}
	}
}

func (r *Renderer) executePass(pass *Pass, in FrameInputs) {
	r.applyToggles(pass.Before)
	r.BindTarget(r.target(pass.Target))

	for _, input := range pass.Inputs {
		src := r.target(input.Source)
		if src == nil {
			continue
		}
		r.ctx.BindTexture(input.Unit, src.Texture)
		for _, step := range pass.Steps {
			switch input.Sampler {
			case SceneSampler:
				step.Program.SetSceneTexture(int32(input.Unit))
			case BloomSampler:
				step.Program.SetBloomTexture(int32(input.Unit))
			}
		}
	}

	if pass.Clear {
		r.Clear()
	}

	w, h := r.Size()
	resolution := mgl32.Vec2{float32(w), float32(h)}
	for _, step := range pass.Steps {
		r.applyToggles(step.Toggles)
		switch step.Geometry {
		case SceneMeshes:
			r.Render(in.Camera, step.Program, in.Meshes, in.BaseColor, in.Time,
				in.GradientType, in.SwayLevel, in.FrameThreshold)
		case FullscreenQuad:
			if in.Quad != nil {
				r.RenderFullscreenQuad(step.Program, in.Quad, resolution, in.Time)
			}
		}
	}

	r.applyToggles(pass.After)
}
