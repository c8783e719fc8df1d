package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFovY = 45.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera is a perspective camera orbiting a fixed target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FovY        float32 // degrees
	Near, Far   float32
	AspectRatio float32

	ProjectionMatrix mgl32.Mat4
	ViewMatrix       mgl32.Mat4

	orbit Orbit
}

// New places a camera at position looking at target.
func New(position, target mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		Target:      target,
		Up:          mgl32.Vec3{0, 1, 0},
		FovY:        DefaultFovY,
		Near:        DefaultNear,
		Far:         DefaultFar,
		AspectRatio: 1,
	}
	c.orbit = orbitFrom(position.Sub(target))
	c.UpdateProjectionMatrix()
	c.Update()
	return c
}

func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		return
	}
	c.AspectRatio = aspect
}

func (c *Camera) UpdateProjectionMatrix() {
	c.ProjectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.FovY), c.AspectRatio, c.Near, c.Far)
}

// Update applies accumulated orbit input and recomputes the view matrix.
func (c *Camera) Update() {
	c.Position = c.Target.Add(c.orbit.Offset())
	c.ViewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProj returns projection * view.
func (c *Camera) ViewProj() mgl32.Mat4 {
	return c.ProjectionMatrix.Mul4(c.ViewMatrix)
}

func (c *Camera) Orbit() *Orbit { return &c.orbit }

// Distance from the camera to its target.
func (c *Camera) Distance() float32 { return c.orbit.Distance }
