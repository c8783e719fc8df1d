package gpu

import "fireball/internal/utils"

// Context wraps a Device and owns the state that must be shared by every
// program on it: which program is currently bound, and the vertex array all
// attribute bindings are recorded into.
type Context struct {
	Device

	active    ProgramID
	hasActive bool
	binds     int

	vao VertexArrayID
}

func NewContext(dev Device) *Context {
	ctx := &Context{Device: dev}
	ctx.vao = dev.CreateVertexArray()
	dev.BindVertexArray(ctx.vao)
	return ctx
}

// UseProgram binds id unless it is already the active program.
func (c *Context) UseProgram(id ProgramID) {
	if c.hasActive && c.active == id {
		return
	}
	c.Device.UseProgram(id)
	c.active = id
	c.hasActive = true
	c.binds++
}

// ActiveProgram reports the program the context believes is bound.
func (c *Context) ActiveProgram() (ProgramID, bool) {
	return c.active, c.hasActive
}

// ProgramBinds counts the UseProgram calls that reached the device.
func (c *Context) ProgramBinds() int {
	return c.binds
}

// Reset forgets the cached program and rebinds the context's vertex array.
// Call it after code outside the renderer (e.g. the raylib overlay) has issued GL calls.
func (c *Context) Reset() {
	c.hasActive = false
	c.active = 0
	c.Device.BindVertexArray(c.vao)
}

// Forget drops the cache entry for a program that is being deleted.
func (c *Context) Forget(id ProgramID) {
	if c.hasActive && c.active == id {
		utils.Debug("Context: forgetting active program %d", id)
		c.hasActive = false
		c.active = 0
	}
}

func (c *Context) Close() {
	c.hasActive = false
	c.Device.DeleteVertexArray(c.vao)
}
