package engine3D

import (
	"strconv"
	"testing"
	"time"

	"fireball/internal/control"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPipelineValidates(t *testing.T) {
	rg := newRig(t, 32, 32)
	p := DefaultPipeline(rg.programs)
	require.NoError(t, p.Validate())

	names := make([]string, len(p.Passes))
	for i, pass := range p.Passes {
		names[i] = pass.Name
	}
	assert.Equal(t, []string{"scene", "bloom-extract", "combine"}, names)
}

func TestPipelineValidateRejectsBadOrdering(t *testing.T) {
	rg := newRig(t, 32, 32)

	reversed := DefaultPipeline(rg.programs)
	reversed.Passes[0], reversed.Passes[2] = reversed.Passes[2], reversed.Passes[0]
	assert.Error(t, reversed.Validate())

	selfSample := &Pipeline{Passes: []Pass{{
		Name:   "loop",
		Target: TargetBloom,
		Inputs: []TextureInput{{Source: TargetBloom}},
		Steps:  []Step{{Program: rg.programs.BloomExtract, Geometry: FullscreenQuad}},
	}}}
	assert.Error(t, selfSample.Validate())

	noProgram := &Pipeline{Passes: []Pass{{Name: "empty", Steps: []Step{{}}}}}
	assert.Error(t, noProgram.Validate())
}

func TestFrameCommandOrder(t *testing.T) {
	rg := newRig(t, 320, 240)
	scene, bloom := rg.renderer.SceneTarget(), rg.renderer.BloomTarget()

	rg.rec.ClearLog()
	rg.driver.Frame()

	// Keep only the commands that define the pass structure.
	var got []string
	for _, c := range rg.rec.Commands {
		switch c.Op {
		case "BindFramebuffer", "Clear", "Enable", "Disable", "BindTexture", "DrawElements":
			got = append(got, c.String())
		}
	}

	draw := func() string { return "DrawElements 0 " + itoa(rg.scene.Icosphere.ElemCount()) }
	quad := "DrawElements 0 6"
	want := []string{
		"Disable BLEND",
		"BindFramebuffer " + itoa(int32(scene.Framebuffer)),
		"Clear 3",
		"Enable DEPTH_TEST",
		"Enable CULL_FACE",
		draw(),
		"Disable CULL_FACE",
		draw(),
		"Disable DEPTH_TEST",
		"BindFramebuffer " + itoa(int32(bloom.Framebuffer)),
		"BindTexture 0 " + itoa(int32(scene.Texture)),
		"Clear 3",
		quad,
		"BindFramebuffer 0",
		"BindTexture 0 " + itoa(int32(scene.Texture)),
		"BindTexture 1 " + itoa(int32(bloom.Texture)),
		"Clear 3",
		quad,
		"Enable DEPTH_TEST",
		"Enable BLEND",
	}
	assert.Equal(t, want, got)
}

func TestCombineReadsAfterBothWrites(t *testing.T) {
	rg := newRig(t, 320, 240)
	scene, bloom := rg.renderer.SceneTarget(), rg.renderer.BloomTarget()

	rg.rec.ClearLog()
	rg.driver.Frame()

	screen := drawsInto(rg.rec, gpu.DefaultFramebuffer)
	require.Len(t, screen, 1)
	combine := screen[0]
	assert.Equal(t, rg.programs.Combine.ID, combine.Program)
	assert.Equal(t, scene.Texture, combine.Units[0])
	assert.Equal(t, bloom.Texture, combine.Units[1])

	sceneWrite := rg.rec.LastWrite(scene.Texture)
	bloomWrite := rg.rec.LastWrite(bloom.Texture)
	require.GreaterOrEqual(t, sceneWrite, 0)
	require.GreaterOrEqual(t, bloomWrite, 0)
	assert.Less(t, sceneWrite, bloomWrite, "bloom extract samples the finished scene")
	assert.Less(t, bloomWrite, combine.Seq)

	extract := drawsInto(rg.rec, bloom.Framebuffer)
	require.Len(t, extract, 1)
	assert.Equal(t, scene.Texture, extract[0].Units[0])
	assert.False(t, extract[0].Caps[gpu.DepthTest])

	sceneDraws := drawsInto(rg.rec, scene.Framebuffer)
	require.Len(t, sceneDraws, 2)
	assert.Equal(t, rg.programs.Base.ID, sceneDraws[0].Program)
	assert.True(t, sceneDraws[0].Caps[gpu.CullFace])
	assert.True(t, sceneDraws[0].Caps[gpu.DepthTest])
	assert.Equal(t, rg.programs.Layer.ID, sceneDraws[1].Program)
	assert.False(t, sceneDraws[1].Caps[gpu.CullFace])

	// Samplers point at the units the textures were bound to.
	unit, _ := rg.rec.Uniform(rg.programs.Combine.ID, shader.UniformBloom)
	assert.Equal(t, int32(1), unit)
	unit, _ = rg.rec.Uniform(rg.programs.Combine.ID, shader.UniformScene)
	assert.Equal(t, int32(0), unit)
	unit, _ = rg.rec.Uniform(rg.programs.BloomExtract.ID, shader.UniformScene)
	assert.Equal(t, int32(0), unit)

	assert.True(t, rg.rec.Enabled(gpu.DepthTest), "depth test re-enabled for the next cycle")
	assert.Empty(t, rg.rec.EnabledAttribs())
}

func TestFinalImageIsDeterministic(t *testing.T) {
	render := func() []byte {
		rg := newRig(t, 8, 8)
		rg.renderer.SetClearColor(0.25, 0.5, 0.75, 1)
		rg.driver.Frame()
		return rg.rec.ReadPixels(0, 0, 8, 8)
	}

	first, second := render(), render()
	require.Len(t, first, 8*8*4)
	assert.Equal(t, first, second)
	assert.Equal(t, []byte{64, 128, 191, 255}, first[:4])
}

func TestTessellationChangeRebuildsOnce(t *testing.T) {
	rg := newRig(t, 32, 32)
	rg.driver.Frame()
	require.Equal(t, 5, rg.scene.Built())
	rebuilds := rg.scene.Rebuilds()
	buffers := rg.rec.LiveBuffers()

	rg.panel.Update(func(p *control.Params) { p.Tessellations = 3 })
	rg.driver.Frame()
	assert.Equal(t, rebuilds+1, rg.scene.Rebuilds())
	assert.Equal(t, 3, rg.scene.Built())
	assert.Equal(t, 20*4*4*4, rg.scene.Icosphere.TriangleCount())
	assert.Equal(t, buffers, rg.rec.LiveBuffers(), "old icosphere buffers are deleted")

	rg.driver.Frame()
	rg.driver.Frame()
	assert.Equal(t, rebuilds+1, rg.scene.Rebuilds(), "no rebuild while the parameter is unchanged")
}

func TestLoadSceneRequest(t *testing.T) {
	rg := newRig(t, 32, 32)
	rg.driver.Frame()
	rebuilds := rg.scene.Rebuilds()
	oldCube := rg.scene.Cube

	rg.panel.Update(func(p *control.Params) { p.Tessellations = 2 })
	rg.panel.RequestLoad()
	rg.driver.Frame()

	assert.Equal(t, rebuilds+1, rg.scene.Rebuilds(), "load replaces the refresh path")
	assert.Equal(t, 2, rg.scene.Built())
	assert.NotSame(t, oldCube, rg.scene.Cube)
	assert.False(t, oldCube.Created())

	rg.driver.Frame()
	assert.Equal(t, rebuilds+1, rg.scene.Rebuilds())
}

func TestFrameStates(t *testing.T) {
	rg := newRig(t, 32, 32)

	var seen []FrameState
	rg.driver.OnPass(func(p *Pass) { seen = append(seen, rg.driver.State()) })
	rg.driver.Frame()

	assert.Equal(t, []FrameState{StateScenePass, StateBloomExtractPass, StateCombinePass}, seen)
	assert.Equal(t, StateIdle, rg.driver.State())
	assert.Equal(t, "BloomExtractPass", StateBloomExtractPass.String())
}

func TestFrameTimeInMilliseconds(t *testing.T) {
	rg := newRig(t, 32, 32)
	rg.advance(1500 * time.Millisecond)
	rg.driver.Frame()

	tm, ok := rg.rec.Uniform(rg.programs.Combine.ID, shader.UniformTime)
	require.True(t, ok)
	assert.InDelta(t, 1500, tm, 1e-3)

	rg.advance(16 * time.Millisecond)
	rg.driver.Frame()
	tm, _ = rg.rec.Uniform(rg.programs.Base.ID, shader.UniformTime)
	assert.InDelta(t, 1516, tm, 1e-3)
}

func TestFrameStats(t *testing.T) {
	rg := newRig(t, 32, 32)
	rg.driver.Frame()
	rg.driver.Frame()

	stats := rg.driver.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, control.Defaults(), rg.driver.LastParams())
}

func TestFrameResetsProgramCache(t *testing.T) {
	rg := newRig(t, 32, 32)
	rg.driver.Frame()
	vao := rg.rec.VertexArray()

	// An overlay binds its own program and vertex array between frames.
	rg.rec.UseProgram(999)
	rg.rec.BindVertexArray(0)
	rg.rec.ClearLog()
	rg.driver.Frame()

	require.NotEmpty(t, rg.rec.Commands)
	assert.Equal(t, "BindVertexArray", rg.rec.Commands[0].Op)
	assert.Equal(t, vao, rg.rec.VertexArray())
	for _, d := range rg.rec.Draws {
		assert.NotEqual(t, gpu.ProgramID(999), d.Program)
	}
}

func itoa(v int32) string { return strconv.Itoa(int(v)) }

func TestFrameDrawsWithBlendingOff(t *testing.T) {
	rg := newRig(t, 32, 32)
	// The window library enables blending globally before the first frame.
	rg.rec.Enable(gpu.Blend)
	rg.rec.ClearLog()
	rg.driver.Frame()

	require.Len(t, rg.rec.Draws, 4)
	for _, d := range rg.rec.Draws {
		assert.False(t, d.Caps[gpu.Blend], "draw %d into framebuffer %d", d.Seq, d.Framebuffer)
	}
	assert.True(t, rg.rec.Enabled(gpu.Blend), "blending restored for the overlay")
}
