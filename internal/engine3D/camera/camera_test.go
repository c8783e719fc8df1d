package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v got %v", want, got)
}

func TestNewCamera(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	vecNear(t, mgl32.Vec3{0, 0, 5}, c.Position)
	assert.InDelta(t, 5, c.Distance(), 1e-5)

	// The target lands on the view axis, 5 units in front.
	target := c.ViewMatrix.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	vecNear(t, mgl32.Vec3{0, 0, -5}, target.Vec3())
}

func TestAspectRatio(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetAspectRatio(2)
	c.UpdateProjectionMatrix()

	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 1000)
	assert.True(t, want.ApproxEqual(c.ProjectionMatrix))

	c.SetAspectRatio(0)
	assert.Equal(t, float32(2), c.AspectRatio, "degenerate sizes are ignored")
}

func TestViewProj(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	assert.Equal(t, c.ProjectionMatrix.Mul4(c.ViewMatrix), c.ViewProj())
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Orbit().Rotate(200, -120)
	c.Update()

	assert.InDelta(t, 5, c.Position.Len(), 1e-4)
	assert.NotEqual(t, mgl32.Vec3{0, 0, 5}, c.Position)
}

func TestOrbitPitchClamped(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Orbit().Rotate(0, 1e6)
	c.Update()

	assert.Less(t, c.Orbit().Pitch, float32(mgl32.DegToRad(90)))
	for _, v := range c.ViewMatrix {
		assert.False(t, v != v, "view matrix has NaN")
	}
}

func TestZoomClamped(t *testing.T) {
	o := orbitFrom(mgl32.Vec3{0, 0, 5})
	o.Zoom(1)
	assert.InDelta(t, 4.5, o.Distance, 1e-5)

	for i := 0; i < 100; i++ {
		o.Zoom(5)
	}
	assert.Equal(t, float32(MinDistance), o.Distance)

	for i := 0; i < 100; i++ {
		o.Zoom(-5)
	}
	assert.Equal(t, float32(MaxDistance), o.Distance)
}

func TestFollowPointer(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	c.Orbit().Follow(1, 0)
	c.Update()
	assert.Less(t, c.Position.X(), float32(0), "pointer right swings the camera left of the target")

	c.Orbit().Follow(0, 5)
	c.Update()
	assert.Greater(t, c.Position.Y(), float32(0))

	c.Orbit().StopFollowing()
	c.Update()
	vecNear(t, mgl32.Vec3{0, 0, 5}, c.Position)
}
