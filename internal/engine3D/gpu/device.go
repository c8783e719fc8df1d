package gpu

import "github.com/go-gl/mathgl/mgl32"

// Device is the graphics command vocabulary the renderer is written against.
// Calls execute in submission order on the thread that owns the GL context.
type Device interface {
	CreateShader(stage Stage, source string) ShaderID
	ShaderStatus(id ShaderID) (ok bool, log string)
	DeleteShader(id ShaderID)

	CreateProgram(shaders []ShaderID) ProgramID
	ProgramStatus(id ProgramID) (ok bool, log string)
	DeleteProgram(id ProgramID)
	UseProgram(id ProgramID)

	// UniformLocation and AttribLocation return -1 for names the program does not declare.
	UniformLocation(id ProgramID, name string) int32
	AttribLocation(id ProgramID, name string) int32

	// Uniform writes go to the program bound with UseProgram.
	UniformMatrix4(loc int32, m mgl32.Mat4)
	Uniform4(loc int32, v mgl32.Vec4)
	Uniform3(loc int32, v mgl32.Vec3)
	Uniform2(loc int32, v mgl32.Vec2)
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)

	CreateVertexArray() VertexArrayID
	BindVertexArray(id VertexArrayID)
	DeleteVertexArray(id VertexArrayID)

	CreateBuffer() BufferID
	BindBuffer(target BufferTarget, id BufferID)
	BufferFloats(target BufferTarget, id BufferID, data []float32)
	BufferIndices(id BufferID, data []uint32)
	DeleteBuffer(id BufferID)

	EnableVertexAttrib(index uint32)
	// VertexAttribPointer describes tightly packed float components at offset 0
	// of the bound array buffer.
	VertexAttribPointer(index uint32, size int32)
	DisableVertexAttrib(index uint32)

	// DrawElements draws count 32-bit unsigned indices from the bound element buffer.
	DrawElements(mode Primitive, count int32)

	CreateTexture() TextureID
	// TextureStorage (re)allocates RGBA8 storage of the given size with no initial data.
	TextureStorage(id TextureID, width, height int32)
	TextureSampling(id TextureID, filter Filter, wrap Wrap)
	BindTexture(unit uint32, id TextureID)
	DeleteTexture(id TextureID)

	CreateFramebuffer() FramebufferID
	BindFramebuffer(id FramebufferID)
	FramebufferColorTexture(fb FramebufferID, tex TextureID)
	FramebufferComplete(fb FramebufferID) bool
	DeleteFramebuffer(id FramebufferID)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)

	// ReadPixels returns RGBA8 rows of the bound framebuffer, bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
