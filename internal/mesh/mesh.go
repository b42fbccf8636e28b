package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved vertex layout: position(3), uv(2), normal(3)
const FloatsPerVertex = 8

// Mesh is CPU-side triangle geometry
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32 // Three per triangle, counter-clockwise is front facing
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// BoundingRadius returns the largest vertex distance from the local origin
func (m *Mesh) BoundingRadius() float32 {
	var maxSq float32
	for _, p := range m.Positions {
		if d := p.LenSqr(); d > maxSq {
			maxSq = d
		}
	}
	return float32(math.Sqrt(float64(maxSq)))
}

// Interleaved packs the vertex attributes for upload.
// Missing UVs or normals are written as zero.
func (m *Mesh) Interleaved() []float32 {
	data := make([]float32, 0, len(m.Positions)*FloatsPerVertex)
	for i, p := range m.Positions {
		data = append(data, p.X(), p.Y(), p.Z())

		var uv mgl32.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		data = append(data, uv.X(), uv.Y())

		var n mgl32.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		data = append(data, n.X(), n.Y(), n.Z())
	}
	return data
}

// FlipWinding reverses every triangle and negates the normals,
// turning the visible side of the surface around.
func (m *Mesh) FlipWinding() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Mul(-1)
	}
}
