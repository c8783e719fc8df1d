package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSubdivisions caps icosphere tessellation; level 8 is ~1.3M triangles.
const MaxSubdivisions = 8

// NewIcosphere subdivides an icosahedron `subdivisions` times and projects
// every vertex onto a sphere of the given radius. Normals point outwards.
func NewIcosphere(center mgl32.Vec3, radius float32, subdivisions int) *Mesh {
	if subdivisions < 0 {
		subdivisions = 0
	}
	if subdivisions > MaxSubdivisions {
		subdivisions = MaxSubdivisions
	}

	t := (1 + math32.Sqrt(5)) / 2
	verts := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}

	tris := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for level := 0; level < subdivisions; level++ {
		midpoints := make(map[[2]uint32]uint32, len(tris))
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			mid := verts[a].Add(verts[b]).Mul(0.5).Normalize()
			idx := uint32(len(verts))
			verts = append(verts, mid)
			midpoints[key] = idx
			return idx
		}

		next := make([]uint32, 0, len(tris)*4)
		for i := 0; i < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		tris = next
	}

	m := &Mesh{
		Name:    "icosphere",
		Center:  center,
		Pos:     make([]float32, 0, len(verts)*4),
		Nor:     make([]float32, 0, len(verts)*4),
		Indices: tris,
	}
	for _, v := range verts {
		m.appendVertex(v.Mul(radius), v)
	}
	return m
}
