package mesh

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func flat(x, z float32) float32 { return 0 }

func TestHeightfieldCounts(t *testing.T) {
	m, err := Heightfield(4, 1, flat)
	if err != nil {
		t.Fatalf("Heightfield failed: %v", err)
	}
	if m.VertexCount() != 25 {
		t.Errorf("Expected 25 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 32 {
		t.Errorf("Expected 32 triangles, got %d", m.TriangleCount())
	}
	if m.Positions[0] != (mgl32.Vec3{-2, 0, -2}) {
		t.Errorf("Grid should be centred, first vertex at %v", m.Positions[0])
	}
}

func TestHeightfieldFacesUp(t *testing.T) {
	m, _ := Heightfield(3, 2, flat)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		if n := b.Sub(a).Cross(c.Sub(a)); n.Y() <= 0 {
			t.Fatalf("Triangle %d faces %v", i/3, n)
		}
	}
	for i, n := range m.Normals {
		if n != (mgl32.Vec3{0, 1, 0}) {
			t.Fatalf("Flat normal %d should be up, got %v", i, n)
		}
	}
}

func TestHeightfieldSlopeNormals(t *testing.T) {
	ramp := func(x, z float32) float32 { return x }
	m, _ := Heightfield(2, 1, ramp)

	want := mgl32.Vec3{-1, 1, 0}.Normalize()
	if m.Normals[4].Sub(want).Len() > 1e-5 {
		t.Errorf("Expected %v on a 45 degree ramp, got %v", want, m.Normals[4])
	}
	if m.Positions[4].Y() != m.Positions[4].X() {
		t.Errorf("Height should follow the function, got %v", m.Positions[4])
	}
}

func TestHeightfieldRejectsBadGrid(t *testing.T) {
	if _, err := Heightfield(0, 1, flat); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("Expected ErrInvalidGrid for zero cells, got %v", err)
	}
	if _, err := Heightfield(4, -1, flat); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("Expected ErrInvalidGrid for negative size, got %v", err)
	}
}
