package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidRadius       = errors.New("mesh: radius must be positive and finite")
	ErrInvalidSubdivisions = errors.New("mesh: subdivisions must be between 0 and 8")
)

// MaxSubdivisions keeps index counts well inside uint32 and memory sane
const MaxSubdivisions = 8

// Icosphere builds a sphere of the given radius by refining a regular icosahedron.
// Level n has 10*4^n+2 vertices and 20*4^n triangles. With inwardFacing set the
// triangles wind so the interior is the front face, for viewers inside the sphere.
func Icosphere(radius float32, subdivisions int, inwardFacing bool) (*Mesh, error) {
	r := float64(radius)
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if subdivisions < 0 || subdivisions > MaxSubdivisions {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSubdivisions, subdivisions)
	}

	points, faces := icosahedron()
	for i := 0; i < subdivisions; i++ {
		points, faces = subdivide(points, faces)
	}

	m := &Mesh{
		Positions: make([]mgl32.Vec3, len(points)),
		Normals:   make([]mgl32.Vec3, len(points)),
		UVs:       make([]mgl32.Vec2, len(points)),
		Indices:   make([]uint32, 0, len(faces)*3),
	}
	for i, p := range points {
		m.Normals[i] = p
		m.Positions[i] = p.Mul(radius)
		m.UVs[i] = sphericalUV(p)
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}

	if inwardFacing {
		m.FlipWinding()
	}
	return m, nil
}

// icosahedron returns the 12 unit vertices and 20 outward-wound faces
func icosahedron() ([]mgl32.Vec3, [][3]uint32) {
	t := float32((1.0 + math.Sqrt(5.0)) / 2.0)

	raw := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	points := make([]mgl32.Vec3, len(raw))
	for i, p := range raw {
		points[i] = p.Normalize()
	}

	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return points, faces
}

// subdivide splits every triangle into four, sharing edge midpoints between neighbours
func subdivide(points []mgl32.Vec3, faces [][3]uint32) ([]mgl32.Vec3, [][3]uint32) {
	midpoints := make(map[[2]uint32]uint32, len(faces)*3/2)

	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		p := points[a].Add(points[b]).Mul(0.5).Normalize()
		idx := uint32(len(points))
		points = append(points, p)
		midpoints[key] = idx
		return idx
	}

	out := make([][3]uint32, 0, len(faces)*4)
	for _, f := range faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		out = append(out,
			[3]uint32{f[0], ab, ca},
			[3]uint32{f[1], bc, ab},
			[3]uint32{f[2], ca, bc},
			[3]uint32{ab, bc, ca},
		)
	}
	return points, out
}

func sphericalUV(n mgl32.Vec3) mgl32.Vec2 {
	u := 0.5 + math.Atan2(float64(n.Z()), float64(n.X()))/(2*math.Pi)
	v := 0.5 - math.Asin(float64(mgl32.Clamp(n.Y(), -1, 1)))/math.Pi
	return mgl32.Vec2{float32(u), float32(v)}
}
