package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidGrid = errors.New("mesh: grid needs at least one cell and a positive cell size")

// HeightFunc returns the surface height at world x, z
type HeightFunc func(x, z float32) float32

// Heightfield builds a square grid of cells*cells quads centred on the origin,
// displaced along +Y by height. Triangles face up.
func Heightfield(cells int, cellSize float32, height HeightFunc) (*Mesh, error) {
	if cells < 1 || !(cellSize > 0) {
		return nil, fmt.Errorf("%w: cells %d, size %v", ErrInvalidGrid, cells, cellSize)
	}

	side := cells + 1
	half := float32(cells) * cellSize / 2
	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, side*side),
		Normals:   make([]mgl32.Vec3, 0, side*side),
		UVs:       make([]mgl32.Vec2, 0, side*side),
		Indices:   make([]uint32, 0, cells*cells*6),
	}

	d := cellSize / 2
	for iz := 0; iz < side; iz++ {
		for ix := 0; ix < side; ix++ {
			x := float32(ix)*cellSize - half
			z := float32(iz)*cellSize - half
			m.Positions = append(m.Positions, mgl32.Vec3{x, height(x, z), z})

			n := mgl32.Vec3{
				height(x-d, z) - height(x+d, z),
				2 * d,
				height(x, z-d) - height(x, z+d),
			}
			m.Normals = append(m.Normals, n.Normalize())
			m.UVs = append(m.UVs, mgl32.Vec2{float32(ix) / float32(cells), float32(iz) / float32(cells)})
		}
	}

	at := func(ix, iz int) uint32 { return uint32(iz*side + ix) }
	for iz := 0; iz < cells; iz++ {
		for ix := 0; ix < cells; ix++ {
			v00, v10 := at(ix, iz), at(ix+1, iz)
			v01, v11 := at(ix, iz+1), at(ix+1, iz+1)
			m.Indices = append(m.Indices, v00, v01, v10, v10, v01, v11)
		}
	}
	return m, nil
}
