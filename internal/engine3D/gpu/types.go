package gpu

import "errors"

type (
	ShaderID      uint32
	ProgramID     uint32
	BufferID      uint32
	TextureID     uint32
	FramebufferID uint32
	VertexArrayID uint32
)

// DefaultFramebuffer is the window's own framebuffer (the screen).
const DefaultFramebuffer FramebufferID = 0

type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type Capability int

const (
	DepthTest Capability = iota
	CullFace
	Blend
)

func (c Capability) String() string {
	switch c {
	case DepthTest:
		return "DEPTH_TEST"
	case CullFace:
		return "CULL_FACE"
	case Blend:
		return "BLEND"
	}
	return "UNKNOWN"
}

type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

type ClearMask uint32

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

var (
	ErrUnsupportedContext = errors.New("gpu: OpenGL 3.3 context not available")
	ErrIncompleteTarget   = errors.New("gpu: framebuffer incomplete")
)
