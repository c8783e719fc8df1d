package engine3D

import (
	"fireball/internal/engine3D/geometry"
	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/shader"
	"fireball/internal/utils"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns the procedural meshes and remembers the tessellation the
// icosphere was last built with.
type Scene struct {
	Icosphere *geometry.Mesh
	Square    *geometry.Mesh
	Cube      *geometry.Mesh

	dev      gpu.Device
	center   mgl32.Vec3
	radius   float32
	built    int
	rebuilds int
}

// NewScene builds every mesh at the given tessellation.
func NewScene(dev gpu.Device, tessellations int) *Scene {
	s := &Scene{dev: dev, radius: 1}
	s.Load(tessellations)
	return s
}

// Load rebuilds all meshes from scratch and records tessellations as built.
func (s *Scene) Load(tessellations int) {
	s.destroy()

	s.Icosphere = geometry.NewIcosphere(s.center, s.radius, tessellations)
	s.Icosphere.Create(s.dev)
	s.Square = geometry.NewSquare(s.center)
	s.Square.Create(s.dev)
	s.Cube = geometry.NewCube(s.center)
	s.Cube.Create(s.dev)

	s.built = tessellations
	s.rebuilds++
	utils.Info("Scene: loaded (tessellations %d, %d triangles)", tessellations, s.Icosphere.TriangleCount())
}

// Refresh rebuilds the icosphere when tessellations differ from the last
// build and reports whether it did.
func (s *Scene) Refresh(tessellations int) bool {
	if tessellations == s.built {
		return false
	}

	next := geometry.NewIcosphere(s.center, s.radius, tessellations)
	next.Create(s.dev)
	if s.Icosphere != nil {
		s.Icosphere.Destroy()
	}
	s.Icosphere = next

	utils.Debug("Scene: icosphere %d -> %d (%d triangles)", s.built, tessellations, next.TriangleCount())
	s.built = tessellations
	s.rebuilds++
	return true
}

// Built is the tessellation the current icosphere was built with.
func (s *Scene) Built() int { return s.built }

// Rebuilds counts icosphere builds, including the initial load.
func (s *Scene) Rebuilds() int { return s.rebuilds }

// Meshes is the list the scene pass draws.
func (s *Scene) Meshes() []shader.Drawable {
	return []shader.Drawable{s.Icosphere}
}

// Quad is the full-screen quad post-process passes draw.
func (s *Scene) Quad() shader.Drawable { return s.Square }

func (s *Scene) destroy() {
	for _, m := range []*geometry.Mesh{s.Icosphere, s.Square, s.Cube} {
		if m != nil {
			m.Destroy()
		}
	}
}

// Delete frees every mesh's GPU buffers.
func (s *Scene) Delete() { s.destroy() }
