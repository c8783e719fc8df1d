package engine3D

import (
	"time"

	"fireball/internal/engine3D/camera"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"
)

// Surface is the output window. Size is in pixels of the default framebuffer.
type Surface interface {
	Size() (width, height int32)
	SetSize(width, height int32)
}

// Renderer owns the offscreen targets and draws drawables with a program.
type Renderer struct {
	ctx     *gpu.Context
	surface Surface

	scene *RenderTarget
	bloom *RenderTarget

	clearColor [4]float32
}

// RenderTarget is a framebuffer with a single RGBA8 color texture.
type RenderTarget struct {
	Name        string
	Framebuffer gpu.FramebufferID
	Texture     gpu.TextureID
	Width       int32
	Height      int32
}

// Programs are the four shader programs the default pipeline runs.
type Programs struct {
	Base         *shader.Program
	Layer        *shader.Program
	BloomExtract *shader.Program
	Combine      *shader.Program
}

// FrameInputs is everything one pipeline execution reads.
type FrameInputs struct {
	Camera         *camera.Camera
	Meshes         []shader.Drawable
	Quad           shader.Drawable
	BaseColor      [3]int
	GradientType   int
	SwayLevel      float32
	FrameThreshold float32
	// Time is milliseconds since the driver started.
	Time float32
}

// FrameState is the driver's position in the per-frame sequence.
type FrameState int

const (
	StateIdle FrameState = iota
	StateCameraUpdate
	StateGeometryRefresh
	StateScenePass
	StateBloomExtractPass
	StateCombinePass
)

func (s FrameState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCameraUpdate:
		return "CameraUpdate"
	case StateGeometryRefresh:
		return "GeometryRefresh"
	case StateScenePass:
		return "ScenePass"
	case StateBloomExtractPass:
		return "BloomExtractPass"
	case StateCombinePass:
		return "CombinePass"
	}
	return "Unknown"
}

// FrameStats is the timing the overlay shows.
type FrameStats struct {
	Frames  uint64
	Last    time.Duration
	Average time.Duration
}
