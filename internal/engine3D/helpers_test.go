package engine3D

import (
	"testing"
	"time"

	"fireball/internal/control"
	"fireball/internal/engine3D/camera"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/gpu/gputest"
	"fireball/internal/engine3D/shader"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type testSurface struct {
	w, h int32
}

func (s *testSurface) Size() (int32, int32) { return s.w, s.h }
func (s *testSurface) SetSize(w, h int32)   { s.w, s.h = w, h }

type rig struct {
	rec      *gputest.Recorder
	ctx      *gpu.Context
	surface  *testSurface
	renderer *Renderer
	programs Programs
	scene    *Scene
	camera   *camera.Camera
	panel    *control.Panel
	driver   *Driver
	clock    time.Time
}

func loadPrograms(t *testing.T, ctx *gpu.Context) Programs {
	t.Helper()
	load := func(vert, frag string) *shader.Program {
		p, err := shader.LoadProgram(ctx, vert, frag)
		require.NoError(t, err)
		return p
	}
	return Programs{
		Base:         load("lambert-vert", "lambert-frag"),
		Layer:        load("layer-vert", "layer-frag"),
		BloomExtract: load("passthroughQuad-vert", "bloomExtract-frag"),
		Combine:      load("passthroughQuad-vert", "bloomCombine-frag"),
	}
}

func newRig(t *testing.T, w, h int32) *rig {
	t.Helper()
	r := &rig{
		rec:     gputest.NewRecorder(w, h),
		surface: &testSurface{w: w, h: h},
		clock:   time.Unix(1000, 0),
	}
	r.ctx = gpu.NewContext(r.rec)

	var err error
	r.renderer, err = NewRenderer(r.ctx, r.surface)
	require.NoError(t, err)
	r.renderer.SetClearColor(0, 0, 0, 1)

	r.programs = loadPrograms(t, r.ctx)
	r.scene = NewScene(r.rec, control.Defaults().Tessellations)
	r.camera = camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	r.camera.SetAspectRatio(float32(w) / float32(h))
	r.camera.UpdateProjectionMatrix()
	r.panel = control.NewPanel(control.Defaults())

	r.driver = NewDriver(r.renderer, r.camera, r.scene, DefaultPipeline(r.programs), r.panel)
	r.driver.Now = func() time.Time { return r.clock }
	r.driver.start = r.clock
	return r
}

func (r *rig) advance(d time.Duration) { r.clock = r.clock.Add(d) }

// drawsInto returns the draws that targeted fb.
func drawsInto(rec *gputest.Recorder, fb gpu.FramebufferID) []gputest.Draw {
	var out []gputest.Draw
	for _, d := range rec.Draws {
		if d.Framebuffer == fb {
			out = append(out, d)
		}
	}
	return out
}
