package gpu

import (
	"fmt"
	"strings"

	"fireball/internal/utils"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice issues commands to the OpenGL context current on the calling thread.
type GLDevice struct {
	version string
}

// NewGLDevice loads GL function pointers for the current context.
// The window (and its context) must already exist.
func NewGLDevice() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedContext, err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major < 3 || (major == 3 && minor < 3) {
		return nil, fmt.Errorf("%w: got %d.%d", ErrUnsupportedContext, major, minor)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	utils.Info("GPU: OpenGL %s (%s)", version, gl.GoStr(gl.GetString(gl.RENDERER)))
	return &GLDevice{version: version}, nil
}

func (d *GLDevice) Version() string { return d.version }

func glStage(stage Stage) uint32 {
	if stage == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *GLDevice) CreateShader(stage Stage, source string) ShaderID {
	id := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)
	return ShaderID(id)
}

func (d *GLDevice) ShaderStatus(id ShaderID) (bool, string) {
	var status int32
	gl.GetShaderiv(uint32(id), gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(uint32(id), gl.INFO_LOG_LENGTH, &logLength)
	return false, infoLog(logLength, func(buf *uint8) {
		gl.GetShaderInfoLog(uint32(id), logLength, nil, buf)
	})
}

func (d *GLDevice) DeleteShader(id ShaderID) { gl.DeleteShader(uint32(id)) }

func (d *GLDevice) CreateProgram(shaders []ShaderID) ProgramID {
	id := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(id, uint32(shader))
	}
	gl.LinkProgram(id)
	return ProgramID(id)
}

func (d *GLDevice) ProgramStatus(id ProgramID) (bool, string) {
	var status int32
	gl.GetProgramiv(uint32(id), gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(uint32(id), gl.INFO_LOG_LENGTH, &logLength)
	return false, infoLog(logLength, func(buf *uint8) {
		gl.GetProgramInfoLog(uint32(id), logLength, nil, buf)
	})
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(length+1))
	read(gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (d *GLDevice) DeleteProgram(id ProgramID) { gl.DeleteProgram(uint32(id)) }
func (d *GLDevice) UseProgram(id ProgramID)    { gl.UseProgram(uint32(id)) }

func (d *GLDevice) UniformLocation(id ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(id), gl.Str(name+"\x00"))
}

func (d *GLDevice) AttribLocation(id ProgramID, name string) int32 {
	return gl.GetAttribLocation(uint32(id), gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformMatrix4(loc int32, m mgl32.Mat4) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }
func (d *GLDevice) Uniform4(loc int32, v mgl32.Vec4)       { gl.Uniform4fv(loc, 1, &v[0]) }
func (d *GLDevice) Uniform3(loc int32, v mgl32.Vec3)       { gl.Uniform3fv(loc, 1, &v[0]) }
func (d *GLDevice) Uniform2(loc int32, v mgl32.Vec2)       { gl.Uniform2fv(loc, 1, &v[0]) }
func (d *GLDevice) Uniform1f(loc int32, v float32)         { gl.Uniform1f(loc, v) }
func (d *GLDevice) Uniform1i(loc int32, v int32)           { gl.Uniform1i(loc, v) }

func (d *GLDevice) CreateVertexArray() VertexArrayID {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return VertexArrayID(id)
}

func (d *GLDevice) BindVertexArray(id VertexArrayID) { gl.BindVertexArray(uint32(id)) }

func (d *GLDevice) DeleteVertexArray(id VertexArrayID) {
	handle := uint32(id)
	gl.DeleteVertexArrays(1, &handle)
}

func glBufferTarget(target BufferTarget) uint32 {
	if target == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (d *GLDevice) CreateBuffer() BufferID {
	var id uint32
	gl.GenBuffers(1, &id)
	return BufferID(id)
}

func (d *GLDevice) BindBuffer(target BufferTarget, id BufferID) {
	gl.BindBuffer(glBufferTarget(target), uint32(id))
}

func (d *GLDevice) BufferFloats(target BufferTarget, id BufferID, data []float32) {
	t := glBufferTarget(target)
	gl.BindBuffer(t, uint32(id))
	if len(data) == 0 {
		gl.BufferData(t, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(t, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *GLDevice) BufferIndices(id BufferID, data []uint32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(id))
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *GLDevice) DeleteBuffer(id BufferID) {
	handle := uint32(id)
	gl.DeleteBuffers(1, &handle)
}

func (d *GLDevice) EnableVertexAttrib(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *GLDevice) DisableVertexAttrib(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *GLDevice) VertexAttribPointer(index uint32, size int32) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, 0, 0)
}

func glPrimitive(mode Primitive) uint32 {
	switch mode {
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (d *GLDevice) DrawElements(mode Primitive, count int32) {
	gl.DrawElementsWithOffset(glPrimitive(mode), count, gl.UNSIGNED_INT, 0)
}

func (d *GLDevice) CreateTexture() TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	return TextureID(id)
}

func (d *GLDevice) TextureStorage(id TextureID, width, height int32) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

func (d *GLDevice) TextureSampling(id TextureID, filter Filter, wrap Wrap) {
	glFilter := int32(gl.LINEAR)
	if filter == FilterNearest {
		glFilter = gl.NEAREST
	}
	glWrap := int32(gl.CLAMP_TO_EDGE)
	if wrap == WrapRepeat {
		glWrap = gl.REPEAT
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap)
}

func (d *GLDevice) BindTexture(unit uint32, id TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (d *GLDevice) DeleteTexture(id TextureID) {
	handle := uint32(id)
	gl.DeleteTextures(1, &handle)
}

func (d *GLDevice) CreateFramebuffer() FramebufferID {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return FramebufferID(id)
}

func (d *GLDevice) BindFramebuffer(id FramebufferID) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(id))
}

func (d *GLDevice) FramebufferColorTexture(fb FramebufferID, tex TextureID) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(tex), 0)
}

func (d *GLDevice) FramebufferComplete(fb FramebufferID) bool {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

func (d *GLDevice) DeleteFramebuffer(id FramebufferID) {
	handle := uint32(id)
	gl.DeleteFramebuffers(1, &handle)
}

func (d *GLDevice) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (d *GLDevice) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }

func (d *GLDevice) Clear(mask ClearMask) {
	var bits uint32
	if mask&ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func glCapability(c Capability) uint32 {
	switch c {
	case CullFace:
		return gl.CULL_FACE
	case Blend:
		return gl.BLEND
	}
	return gl.DEPTH_TEST
}

func (d *GLDevice) Enable(c Capability)  { gl.Enable(glCapability(c)) }
func (d *GLDevice) Disable(c Capability) { gl.Disable(glCapability(c)) }

func (d *GLDevice) ReadPixels(x, y, width, height int32) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
