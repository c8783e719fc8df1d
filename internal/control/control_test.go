package control

import (
	"go/build"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 5, d.Tessellations)
	assert.Equal(t, [3]int{51, 51, 51}, d.BaseColor)
	assert.Equal(t, 6, d.GradientType)
	assert.Equal(t, float32(0.15), d.SwayLevel)
	assert.Equal(t, float32(0.5), d.FrameThreshold)
	assert.Equal(t, d, d.Normalize())
}

func TestNormalize(t *testing.T) {
	p := Params{
		Tessellations:  12,
		BaseColor:      [3]int{-4, 300, 128},
		GradientType:   -1,
		SwayLevel:      2,
		FrameThreshold: 0,
	}.Normalize()

	assert.Equal(t, 8, p.Tessellations)
	assert.Equal(t, [3]int{0, 255, 128}, p.BaseColor)
	assert.Equal(t, 0, p.GradientType)
	assert.Equal(t, float32(1), p.SwayLevel)
	assert.Equal(t, float32(0.1), p.FrameThreshold)
}

func TestColorVec(t *testing.T) {
	c := ColorVec([3]int{51, 51, 51})
	assert.True(t, c.ApproxEqualThreshold(mgl32.Vec4{0.2, 0.2, 0.2, 1}, 1e-6))
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, ColorVec([3]int{255, 0, 0}))
}

func TestPanelUpdateClampsAndCountsRevisions(t *testing.T) {
	panel := NewPanel(Defaults())
	assert.Zero(t, panel.Revision())

	got := panel.Update(func(p *Params) { p.Tessellations = 42 })
	assert.Equal(t, 8, got.Tessellations)
	assert.Equal(t, uint64(1), panel.Revision())

	panel.Update(func(p *Params) { p.Tessellations = 99 })
	assert.Equal(t, uint64(1), panel.Revision(), "clamped to the same value")

	panel.Reset()
	assert.Equal(t, Defaults(), panel.Snapshot())
}

func TestPanelLoadRequest(t *testing.T) {
	panel := NewPanel(Defaults())
	assert.False(t, panel.TakeLoadRequest())

	panel.RequestLoad()
	assert.True(t, panel.TakeLoadRequest())
	assert.False(t, panel.TakeLoadRequest())
}

func TestPanelConcurrentWriters(t *testing.T) {
	panel := NewPanel(Defaults())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				panel.Update(func(p *Params) {
					p.GradientType = (i + j) % 8
					p.SwayLevel = float32(j%100) / 100
				})
				s := panel.Snapshot()
				assert.Equal(t, s, s.Normalize())
			}
		}(i)
	}
	wg.Wait()
}

// The panel is shared with the renderer core, which must build without cgo
// windowing libraries.
func TestControlHasNoWindowingImports(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	require.NoError(t, err)
	assert.NotContains(t, pkg.Imports, "github.com/gen2brain/raylib-go/raylib")
}
