// Package geometry builds the procedural meshes the renderer draws and owns
// their GPU buffers.
package geometry

import (
	"fireball/internal/engine3D/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a triangle mesh with flat vec4 positions and normals and 32-bit
// indices. It satisfies shader.Drawable once created.
type Mesh struct {
	Name    string
	Center  mgl32.Vec3
	Pos     []float32 // x,y,z,w per vertex
	Nor     []float32 // x,y,z,0 per vertex
	Indices []uint32

	dev     gpu.Device
	bufPos  gpu.BufferID
	bufNor  gpu.BufferID
	bufIdx  gpu.BufferID
	created bool
	count   int32
}

func (m *Mesh) VertexCount() int   { return len(m.Pos) / 4 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Created reports whether the mesh currently owns GPU buffers.
func (m *Mesh) Created() bool { return m.created }

// Create uploads the CPU arrays into fresh GPU buffers.
// A mesh that was already created releases its old buffers first.
func (m *Mesh) Create(dev gpu.Device) {
	if m.created {
		m.Destroy()
	}
	m.dev = dev

	m.bufIdx = dev.CreateBuffer()
	m.bufPos = dev.CreateBuffer()
	m.bufNor = dev.CreateBuffer()

	dev.BufferIndices(m.bufIdx, m.Indices)
	dev.BufferFloats(gpu.ArrayBuffer, m.bufPos, m.Pos)
	dev.BufferFloats(gpu.ArrayBuffer, m.bufNor, m.Nor)

	m.count = int32(len(m.Indices))
	m.created = true
}

// Destroy deletes the GPU buffers. The CPU arrays are kept.
func (m *Mesh) Destroy() {
	if !m.created {
		return
	}
	m.dev.DeleteBuffer(m.bufIdx)
	m.dev.DeleteBuffer(m.bufPos)
	m.dev.DeleteBuffer(m.bufNor)
	m.created = false
	m.count = 0
}

func (m *Mesh) BindPos() bool {
	if !m.created {
		return false
	}
	m.dev.BindBuffer(gpu.ArrayBuffer, m.bufPos)
	return true
}

func (m *Mesh) BindNor() bool {
	if !m.created || len(m.Nor) == 0 {
		return false
	}
	m.dev.BindBuffer(gpu.ArrayBuffer, m.bufNor)
	return true
}

func (m *Mesh) BindIdx() {
	if !m.created {
		return
	}
	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.bufIdx)
}

func (m *Mesh) DrawMode() gpu.Primitive { return gpu.Triangles }

// ElemCount is zero until the mesh is created.
func (m *Mesh) ElemCount() int32 { return m.count }

func (m *Mesh) appendVertex(p, n mgl32.Vec3) uint32 {
	idx := uint32(len(m.Pos) / 4)
	m.Pos = append(m.Pos, p[0]+m.Center[0], p[1]+m.Center[1], p[2]+m.Center[2], 1)
	m.Nor = append(m.Nor, n[0], n[1], n[2], 0)
	return idx
}
