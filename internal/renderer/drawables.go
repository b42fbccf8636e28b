package renderer

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/atmosphere"
	"GopherSky/internal/behaviour"
	"GopherSky/internal/engine"
	"GopherSky/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// drawable is one renderer component resolved against the asset stores
type drawable struct {
	Object     *behaviour.GameObject
	Mesh       assets.Handle[mesh.Mesh]
	MaterialID uint64
	Model      mgl32.Mat4
	Center     mgl32.Vec3
	Radius     float32
}

// collectDrawables returns the active objects whose renderer has the given material
// kind and whose mesh resolves. Objects with dangling mesh handles are skipped.
func collectDrawables(app *engine.App, kind string) []drawable {
	var out []drawable
	meshes := app.Meshes()
	for _, obj := range app.Scene.GetAllGameObjects() {
		if d, ok := drawableOf(meshes, obj, kind); ok {
			out = append(out, d)
		}
	}
	return out
}

// skyDrawable resolves the registered dome only. Other objects carrying the
// atmosphere kind neither follow the camera nor sync, so they are not drawn.
func skyDrawable(app *engine.App) (drawable, bool) {
	sky, ok := atmosphere.SkyOf(app)
	if !ok {
		return drawable{}, false
	}
	return drawableOf(app.Meshes(), sky.Object, atmosphere.MaterialKind)
}

func drawableOf(meshes *assets.Store[mesh.Mesh], obj *behaviour.GameObject, kind string) (drawable, bool) {
	if !obj.Active {
		return drawable{}, false
	}
	r, ok := behaviour.ComponentOf[*behaviour.MeshRendererComponent](obj)
	if !ok || !r.GetEnabled() || r.MaterialKind != kind {
		return drawable{}, false
	}
	h := assets.HandleFromID[mesh.Mesh](r.MeshID)
	m, ok := meshes.Get(h)
	if !ok {
		return drawable{}, false
	}
	world := obj.Transform.World
	scale := mgl32.Abs(world.Scale.X())
	if s := mgl32.Abs(world.Scale.Y()); s > scale {
		scale = s
	}
	if s := mgl32.Abs(world.Scale.Z()); s > scale {
		scale = s
	}
	return drawable{
		Object:     obj,
		Mesh:       h,
		MaterialID: r.MaterialID,
		Model:      world.Mat4(),
		Center:     world.Translation,
		Radius:     m.BoundingRadius() * scale,
	}, true
}
