// Package camera implements the perspective orbit camera and its input mapping.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinDistance = 1.5
	MaxDistance = 50.0

	// Pitch stays off the poles so LookAt never sees a parallel up vector.
	maxPitch = math32.Pi/2 - 0.01

	// Radians per pixel of mouse drag.
	RotateSpeed = 0.005
	// Fraction of the distance moved per wheel notch.
	ZoomSpeed = 0.1
	// Largest yaw/pitch offset in follow-pointer mode.
	FollowRange = 0.6
)

// Orbit holds spherical coordinates around the target. Yaw 0 / pitch 0 looks
// down -Z from +Z.
type Orbit struct {
	Yaw      float32
	Pitch    float32
	Distance float32

	followYaw   float32
	followPitch float32
}

func orbitFrom(offset mgl32.Vec3) Orbit {
	dist := offset.Len()
	if dist == 0 {
		return Orbit{Distance: MinDistance}
	}
	return Orbit{
		Yaw:      math32.Atan2(offset[0], offset[2]),
		Pitch:    math32.Asin(offset[1] / dist),
		Distance: dist,
	}
}

// Offset is the camera position relative to the target.
func (o *Orbit) Offset() mgl32.Vec3 {
	yaw := o.Yaw + o.followYaw
	pitch := clampPitch(o.Pitch + o.followPitch)
	cosPitch := math32.Cos(pitch)
	return mgl32.Vec3{
		o.Distance * cosPitch * math32.Sin(yaw),
		o.Distance * math32.Sin(pitch),
		o.Distance * cosPitch * math32.Cos(yaw),
	}
}

// Rotate turns the camera by a mouse drag of (dx, dy) pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * RotateSpeed
	o.Pitch = clampPitch(o.Pitch + dy*RotateSpeed)
}

// Zoom moves towards (positive notches) or away from the target.
func (o *Orbit) Zoom(notches float32) {
	o.Distance *= 1 - notches*ZoomSpeed
	o.Distance = mgl32.Clamp(o.Distance, MinDistance, MaxDistance)
}

// Follow offsets the view from a pointer position normalized to [-1, 1] on
// both axes, with +y up. Values outside the range are clamped.
func (o *Orbit) Follow(nx, ny float32) {
	nx = mgl32.Clamp(nx, -1, 1)
	ny = mgl32.Clamp(ny, -1, 1)
	o.followYaw = -nx * FollowRange
	o.followPitch = ny * FollowRange
}

// StopFollowing removes any follow-pointer offset.
func (o *Orbit) StopFollowing() {
	o.followYaw, o.followPitch = 0, 0
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}
