package geometry

import "github.com/go-gl/mathgl/mgl32"

// NewSquare returns a quad spanning [-1,1] in x and y at z=0. Drawn without a
// view-projection transform it covers the whole viewport.
func NewSquare(center mgl32.Vec3) *Mesh {
	m := &Mesh{Name: "square", Center: center}
	n := mgl32.Vec3{0, 0, 1}
	m.appendVertex(mgl32.Vec3{-1, -1, 0}, n)
	m.appendVertex(mgl32.Vec3{1, -1, 0}, n)
	m.appendVertex(mgl32.Vec3{1, 1, 0}, n)
	m.appendVertex(mgl32.Vec3{-1, 1, 0}, n)
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return m
}
