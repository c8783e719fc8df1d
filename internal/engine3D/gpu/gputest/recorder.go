// Package gputest provides a gpu.Device that records commands instead of
// issuing them, and simulates just enough GL state to check callers against.
package gputest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"fireball/internal/engine3D/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)`)
	attribDecl  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)`)
	mainDecl    = regexp.MustCompile(`void\s+main\s*\(`)
)

// Command is one recorded device call.
type Command struct {
	Op   string
	Args []any
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + " " + strings.Join(parts, " ")
}

// Draw is the state snapshot taken at every DrawElements call.
type Draw struct {
	Seq         int
	Program     gpu.ProgramID
	Framebuffer gpu.FramebufferID
	Mode        gpu.Primitive
	Count       int32
	Viewport    [4]int32
	Attribs     []uint32
	Units       map[uint32]gpu.TextureID
	Caps        map[gpu.Capability]bool
}

type shader struct {
	stage    gpu.Stage
	source   string
	ok       bool
	log      string
	uniforms []string
	attribs  []string
}

type program struct {
	ok       bool
	log      string
	uniforms map[string]int32
	names    map[int32]string
	attribs  map[string]int32
	values   map[string]any
}

// Texture is the recorded state of one texture object.
type Texture struct {
	Width, Height int32
	Filter        gpu.Filter
	Wrap          gpu.Wrap
	Sampled       bool
}

type framebuffer struct {
	color gpu.TextureID
	clear [4]float32
}

// Recorder implements gpu.Device. It is not safe for concurrent use, like the
// GL context it stands in for.
type Recorder struct {
	Commands []Command
	Draws    []Draw

	// StrayUniformWrites counts uniform writes to a location the bound program
	// does not own.
	StrayUniformWrites int

	nextID uint32

	shaders      map[gpu.ShaderID]*shader
	programs     map[gpu.ProgramID]*program
	arrays       map[gpu.BufferID][]float32
	indices      map[gpu.BufferID][]uint32
	textures     map[gpu.TextureID]*Texture
	framebuffers map[gpu.FramebufferID]*framebuffer
	vaos         map[gpu.VertexArrayID]bool

	current      gpu.ProgramID
	vao          gpu.VertexArrayID
	arrayBuf     gpu.BufferID
	elementBuf   gpu.BufferID
	boundFB      gpu.FramebufferID
	units        map[uint32]gpu.TextureID
	caps         map[gpu.Capability]bool
	enabled      map[uint32]bool
	pointers     map[uint32]gpu.BufferID
	viewport     [4]int32
	clearColor   [4]float32
	screenClear  [4]float32
	screenWidth  int32
	screenHeight int32
}

// NewRecorder returns a recorder whose default framebuffer is width x height.
func NewRecorder(width, height int32) *Recorder {
	return &Recorder{
		shaders:      make(map[gpu.ShaderID]*shader),
		programs:     make(map[gpu.ProgramID]*program),
		arrays:       make(map[gpu.BufferID][]float32),
		indices:      make(map[gpu.BufferID][]uint32),
		textures:     make(map[gpu.TextureID]*Texture),
		framebuffers: make(map[gpu.FramebufferID]*framebuffer),
		vaos:         make(map[gpu.VertexArrayID]bool),
		units:        make(map[uint32]gpu.TextureID),
		caps:         make(map[gpu.Capability]bool),
		enabled:      make(map[uint32]bool),
		pointers:     make(map[uint32]gpu.BufferID),
		screenWidth:  width,
		screenHeight: height,
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.Commands = append(r.Commands, Command{Op: op, Args: args})
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// Ops returns the recorded operation names in submission order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ClearLog drops recorded commands and draws but keeps the simulated state.
func (r *Recorder) ClearLog() {
	r.Commands = nil
	r.Draws = nil
	r.StrayUniformWrites = 0
}

// ---- Shaders & programs ----

func (r *Recorder) CreateShader(stage gpu.Stage, source string) gpu.ShaderID {
	id := gpu.ShaderID(r.id())
	s := &shader{stage: stage, source: source, ok: true}
	if strings.Contains(source, "#error") {
		s.ok = false
		s.log = fmt.Sprintf("ERROR: 0:1: '#error' : %s shader rejected", stage)
	}
	for _, m := range uniformDecl.FindAllStringSubmatch(source, -1) {
		s.uniforms = append(s.uniforms, m[1])
	}
	if stage == gpu.VertexStage {
		for _, m := range attribDecl.FindAllStringSubmatch(source, -1) {
			s.attribs = append(s.attribs, m[1])
		}
	}
	r.shaders[id] = s
	r.record("CreateShader", stage, id)
	return id
}

func (r *Recorder) ShaderStatus(id gpu.ShaderID) (bool, string) {
	s, ok := r.shaders[id]
	if !ok {
		return false, "invalid shader"
	}
	return s.ok, s.log
}

func (r *Recorder) DeleteShader(id gpu.ShaderID) {
	delete(r.shaders, id)
	r.record("DeleteShader", id)
}

func (r *Recorder) CreateProgram(ids []gpu.ShaderID) gpu.ProgramID {
	id := gpu.ProgramID(r.id())
	p := &program{
		ok:       true,
		uniforms: make(map[string]int32),
		names:    make(map[int32]string),
		attribs:  make(map[string]int32),
		values:   make(map[string]any),
	}

	hasMain := false
	var uniforms []string
	for _, sid := range ids {
		s, found := r.shaders[sid]
		if !found || !s.ok {
			p.ok = false
			p.log = fmt.Sprintf("ERROR: shader %d not compiled", sid)
			break
		}
		if s.stage == gpu.VertexStage && mainDecl.MatchString(s.source) {
			hasMain = true
		}
		uniforms = append(uniforms, s.uniforms...)
		for _, a := range s.attribs {
			if _, seen := p.attribs[a]; !seen {
				p.attribs[a] = int32(len(p.attribs))
			}
		}
	}
	if p.ok && !hasMain {
		p.ok = false
		p.log = "error: vertex shader lacks `main'"
	}

	sort.Strings(uniforms)
	for _, name := range uniforms {
		if _, seen := p.uniforms[name]; seen {
			continue
		}
		loc := int32(len(p.uniforms))
		p.uniforms[name] = loc
		p.names[loc] = name
	}

	r.programs[id] = p
	r.record("CreateProgram", id)
	return id
}

func (r *Recorder) ProgramStatus(id gpu.ProgramID) (bool, string) {
	p, ok := r.programs[id]
	if !ok {
		return false, "invalid program"
	}
	return p.ok, p.log
}

func (r *Recorder) DeleteProgram(id gpu.ProgramID) {
	delete(r.programs, id)
	if r.current == id {
		r.current = 0
	}
	r.record("DeleteProgram", id)
}

func (r *Recorder) UseProgram(id gpu.ProgramID) {
	r.current = id
	r.record("UseProgram", id)
}

// CurrentProgram is the program bound on the simulated context.
func (r *Recorder) CurrentProgram() gpu.ProgramID { return r.current }

func (r *Recorder) UniformLocation(id gpu.ProgramID, name string) int32 {
	if p, ok := r.programs[id]; ok && p.ok {
		if loc, found := p.uniforms[name]; found {
			return loc
		}
	}
	return -1
}

func (r *Recorder) AttribLocation(id gpu.ProgramID, name string) int32 {
	if p, ok := r.programs[id]; ok && p.ok {
		if loc, found := p.attribs[name]; found {
			return loc
		}
	}
	return -1
}

func (r *Recorder) setUniform(op string, loc int32, v any) {
	r.record(op, loc, v)
	p, ok := r.programs[r.current]
	if !ok {
		r.StrayUniformWrites++
		return
	}
	name, ok := p.names[loc]
	if !ok {
		r.StrayUniformWrites++
		return
	}
	p.values[name] = v
}

func (r *Recorder) UniformMatrix4(loc int32, m mgl32.Mat4) { r.setUniform("UniformMatrix4", loc, m) }
func (r *Recorder) Uniform4(loc int32, v mgl32.Vec4)       { r.setUniform("Uniform4", loc, v) }
func (r *Recorder) Uniform3(loc int32, v mgl32.Vec3)       { r.setUniform("Uniform3", loc, v) }
func (r *Recorder) Uniform2(loc int32, v mgl32.Vec2)       { r.setUniform("Uniform2", loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32)         { r.setUniform("Uniform1f", loc, v) }
func (r *Recorder) Uniform1i(loc int32, v int32)           { r.setUniform("Uniform1i", loc, v) }

// Uniform returns the last value written to a program's uniform.
func (r *Recorder) Uniform(id gpu.ProgramID, name string) (any, bool) {
	p, ok := r.programs[id]
	if !ok {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Uniforms returns a copy of every value written to a program.
func (r *Recorder) Uniforms(id gpu.ProgramID) map[string]any {
	out := make(map[string]any)
	if p, ok := r.programs[id]; ok {
		for k, v := range p.values {
			out[k] = v
		}
	}
	return out
}

// ---- Vertex state ----

func (r *Recorder) CreateVertexArray() gpu.VertexArrayID {
	id := gpu.VertexArrayID(r.id())
	r.vaos[id] = true
	r.record("CreateVertexArray", id)
	return id
}

func (r *Recorder) BindVertexArray(id gpu.VertexArrayID) {
	r.vao = id
	r.record("BindVertexArray", id)
}

func (r *Recorder) DeleteVertexArray(id gpu.VertexArrayID) {
	delete(r.vaos, id)
	r.record("DeleteVertexArray", id)
}

// VertexArray is the bound vertex array object.
func (r *Recorder) VertexArray() gpu.VertexArrayID { return r.vao }

func (r *Recorder) CreateBuffer() gpu.BufferID {
	id := gpu.BufferID(r.id())
	r.arrays[id] = nil
	r.record("CreateBuffer", id)
	return id
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, id gpu.BufferID) {
	if target == gpu.ElementArrayBuffer {
		r.elementBuf = id
	} else {
		r.arrayBuf = id
	}
	r.record("BindBuffer", target, id)
}

func (r *Recorder) BufferFloats(target gpu.BufferTarget, id gpu.BufferID, data []float32) {
	r.BindBuffer(target, id)
	r.arrays[id] = append([]float32(nil), data...)
	r.record("BufferFloats", id, len(data))
}

func (r *Recorder) BufferIndices(id gpu.BufferID, data []uint32) {
	r.BindBuffer(gpu.ElementArrayBuffer, id)
	r.indices[id] = append([]uint32(nil), data...)
	r.record("BufferIndices", id, len(data))
}

func (r *Recorder) DeleteBuffer(id gpu.BufferID) {
	delete(r.arrays, id)
	delete(r.indices, id)
	r.record("DeleteBuffer", id)
}

// LiveBuffers counts buffers created and not yet deleted.
func (r *Recorder) LiveBuffers() int {
	live := make(map[gpu.BufferID]bool)
	for id := range r.arrays {
		live[id] = true
	}
	for id := range r.indices {
		live[id] = true
	}
	return len(live)
}

// ElementBuffer is the bound index buffer.
func (r *Recorder) ElementBuffer() gpu.BufferID { return r.elementBuf }

func (r *Recorder) EnableVertexAttrib(index uint32) {
	r.enabled[index] = true
	r.record("EnableVertexAttrib", index)
}

func (r *Recorder) DisableVertexAttrib(index uint32) {
	delete(r.enabled, index)
	r.record("DisableVertexAttrib", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32) {
	r.pointers[index] = r.arrayBuf
	r.record("VertexAttribPointer", index, size)
}

// EnabledAttribs lists the enabled attribute arrays in ascending order.
func (r *Recorder) EnabledAttribs() []uint32 {
	out := make([]uint32, 0, len(r.enabled))
	for idx := range r.enabled {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AttribSource is the buffer an attribute was last pointed at.
func (r *Recorder) AttribSource(index uint32) (gpu.BufferID, bool) {
	id, ok := r.pointers[index]
	return id, ok
}

func (r *Recorder) DrawElements(mode gpu.Primitive, count int32) {
	r.record("DrawElements", mode, count)

	units := make(map[uint32]gpu.TextureID, len(r.units))
	for k, v := range r.units {
		units[k] = v
	}
	caps := make(map[gpu.Capability]bool, len(r.caps))
	for k, v := range r.caps {
		caps[k] = v
	}
	r.Draws = append(r.Draws, Draw{
		Seq:         len(r.Commands) - 1,
		Program:     r.current,
		Framebuffer: r.boundFB,
		Mode:        mode,
		Count:       count,
		Viewport:    r.viewport,
		Attribs:     r.EnabledAttribs(),
		Units:       units,
		Caps:        caps,
	})
}

// ---- Textures & framebuffers ----

func (r *Recorder) CreateTexture() gpu.TextureID {
	id := gpu.TextureID(r.id())
	r.textures[id] = &Texture{}
	r.record("CreateTexture", id)
	return id
}

func (r *Recorder) TextureStorage(id gpu.TextureID, width, height int32) {
	if t, ok := r.textures[id]; ok {
		t.Width, t.Height = width, height
	}
	r.record("TextureStorage", id, width, height)
}

func (r *Recorder) TextureSampling(id gpu.TextureID, filter gpu.Filter, wrap gpu.Wrap) {
	if t, ok := r.textures[id]; ok {
		t.Filter, t.Wrap, t.Sampled = filter, wrap, true
	}
	r.record("TextureSampling", id, filter, wrap)
}

func (r *Recorder) BindTexture(unit uint32, id gpu.TextureID) {
	r.units[unit] = id
	r.record("BindTexture", unit, id)
}

func (r *Recorder) DeleteTexture(id gpu.TextureID) {
	delete(r.textures, id)
	r.record("DeleteTexture", id)
}

// Texture returns the state of a live texture.
func (r *Recorder) Texture(id gpu.TextureID) (Texture, bool) {
	t, ok := r.textures[id]
	if !ok {
		return Texture{}, false
	}
	return *t, true
}

// LiveTextures counts textures created and not yet deleted.
func (r *Recorder) LiveTextures() int { return len(r.textures) }

func (r *Recorder) CreateFramebuffer() gpu.FramebufferID {
	id := gpu.FramebufferID(r.id())
	r.framebuffers[id] = &framebuffer{}
	r.record("CreateFramebuffer", id)
	return id
}

func (r *Recorder) BindFramebuffer(id gpu.FramebufferID) {
	r.boundFB = id
	r.record("BindFramebuffer", id)
}

func (r *Recorder) FramebufferColorTexture(fb gpu.FramebufferID, tex gpu.TextureID) {
	r.boundFB = fb
	if f, ok := r.framebuffers[fb]; ok {
		f.color = tex
	}
	r.record("FramebufferColorTexture", fb, tex)
}

func (r *Recorder) FramebufferComplete(fb gpu.FramebufferID) bool {
	r.boundFB = fb
	if fb == gpu.DefaultFramebuffer {
		return true
	}
	f, ok := r.framebuffers[fb]
	if !ok {
		return false
	}
	t, ok := r.textures[f.color]
	return ok && t.Width > 0 && t.Height > 0
}

func (r *Recorder) DeleteFramebuffer(id gpu.FramebufferID) {
	delete(r.framebuffers, id)
	r.record("DeleteFramebuffer", id)
}

// BoundFramebuffer is the current draw target.
func (r *Recorder) BoundFramebuffer() gpu.FramebufferID { return r.boundFB }

// ColorAttachment is the texture attached to a framebuffer.
func (r *Recorder) ColorAttachment(fb gpu.FramebufferID) (gpu.TextureID, bool) {
	f, ok := r.framebuffers[fb]
	if !ok {
		return 0, false
	}
	return f.color, f.color != 0
}

// TextureUnit is the texture bound to a unit.
func (r *Recorder) TextureUnit(unit uint32) gpu.TextureID { return r.units[unit] }

// LastWrite returns the command index of the last draw into the framebuffer
// that has tex attached, or -1.
func (r *Recorder) LastWrite(tex gpu.TextureID) int {
	last := -1
	for _, d := range r.Draws {
		if d.Framebuffer == gpu.DefaultFramebuffer {
			continue
		}
		if f, ok := r.framebuffers[d.Framebuffer]; ok && f.color == tex {
			last = d.Seq
		}
	}
	return last
}

// ---- Fixed function state ----

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.viewport = [4]int32{x, y, width, height}
	r.record("Viewport", x, y, width, height)
}

// CurrentViewport returns x, y, width, height.
func (r *Recorder) CurrentViewport() [4]int32 { return r.viewport }

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.clearColor = [4]float32{cr, cg, cb, ca}
	r.record("ClearColor", cr, cg, cb, ca)
}

func (r *Recorder) Clear(mask gpu.ClearMask) {
	if mask&gpu.ClearColor != 0 {
		if r.boundFB == gpu.DefaultFramebuffer {
			r.screenClear = r.clearColor
		} else if f, ok := r.framebuffers[r.boundFB]; ok {
			f.clear = r.clearColor
		}
	}
	r.record("Clear", mask)
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.caps[c] = true
	r.record("Enable", c)
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.caps[c] = false
	r.record("Disable", c)
}

// Enabled reports a capability's state.
func (r *Recorder) Enabled(c gpu.Capability) bool { return r.caps[c] }

// ReadPixels fills the requested rectangle with the bound target's last clear color.
func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {
	r.record("ReadPixels", x, y, width, height)
	if width <= 0 || height <= 0 {
		return nil
	}

	c := r.screenClear
	if r.boundFB != gpu.DefaultFramebuffer {
		if f, ok := r.framebuffers[r.boundFB]; ok {
			c = f.clear
		}
	}
	px := [4]byte{unorm(c[0]), unorm(c[1]), unorm(c[2]), unorm(c[3])}

	out := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(out); i += 4 {
		copy(out[i:i+4], px[:])
	}
	return out
}

// ScreenSize is the simulated default framebuffer size.
func (r *Recorder) ScreenSize() (int32, int32) { return r.screenWidth, r.screenHeight }

// SetScreenSize changes the simulated window size.
func (r *Recorder) SetScreenSize(width, height int32) {
	r.screenWidth, r.screenHeight = width, height
}

func unorm(v float32) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return byte(v*255 + 0.5)
}

var _ gpu.Device = (*Recorder)(nil)
