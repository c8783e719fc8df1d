package geometry

import "github.com/go-gl/mathgl/mgl32"

// NewCube returns a unit cube (side 2) with per-face normals, so each face
// has its own four vertices.
func NewCube(center mgl32.Vec3) *Mesh {
	m := &Mesh{Name: "cube", Center: center}

	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	for _, f := range faces {
		base := m.appendVertex(f.normal.Sub(f.u).Sub(f.v), f.normal)
		m.appendVertex(f.normal.Add(f.u).Sub(f.v), f.normal)
		m.appendVertex(f.normal.Add(f.u).Add(f.v), f.normal)
		m.appendVertex(f.normal.Sub(f.u).Add(f.v), f.normal)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
