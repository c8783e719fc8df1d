package engine3D

import (
	"fmt"

	"fireball/internal/engine3D/gpu"
	"fireball/internal/utils"
)

func newRenderTarget(dev gpu.Device, name string) *RenderTarget {
	return &RenderTarget{
		Name:        name,
		Framebuffer: dev.CreateFramebuffer(),
	}
}

// allocate replaces the color texture with a new one of the given size and
// attaches it to color attachment 0.
func (t *RenderTarget) allocate(dev gpu.Device, width, height int32) error {
	if t.Texture != 0 {
		dev.DeleteTexture(t.Texture)
	}
	t.Texture = dev.CreateTexture()
	dev.TextureStorage(t.Texture, width, height)
	dev.TextureSampling(t.Texture, gpu.FilterLinear, gpu.WrapClampToEdge)
	t.Width, t.Height = width, height

	dev.FramebufferColorTexture(t.Framebuffer, t.Texture)
	if !dev.FramebufferComplete(t.Framebuffer) {
		return fmt.Errorf("%s target %dx%d: %w", t.Name, width, height, gpu.ErrIncompleteTarget)
	}

	utils.Debug("Renderer: %s target -> %dx%d (texture %d)", t.Name, width, height, t.Texture)
	return nil
}

func (t *RenderTarget) delete(dev gpu.Device) {
	if t.Texture != 0 {
		dev.DeleteTexture(t.Texture)
		t.Texture = 0
	}
	if t.Framebuffer != 0 {
		dev.DeleteFramebuffer(t.Framebuffer)
		t.Framebuffer = 0
	}
}
