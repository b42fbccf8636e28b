package atmosphere

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/behaviour"
	"GopherSky/internal/engine"
	"GopherSky/internal/logger"
	"GopherSky/internal/mesh"

	"go.uber.org/zap"
)

// Sky records the single dome spawned by the plugin. Systems only ever touch
// the object held here, never whatever else carries an atmosphere material.
type Sky struct {
	Object   *behaviour.GameObject
	Mesh     assets.Handle[mesh.Mesh]
	Material assets.Handle[Material]

	// shared material version last copied into Material
	seen uint64
}

// Spawned reports whether the dome exists and is still in the scene
func (s *Sky) Spawned() bool {
	return s != nil && s.Object != nil
}

// SkyOf returns the dome record once it has been spawned and is still registered
func SkyOf(app *engine.App) (*Sky, bool) {
	sky, ok := engine.GetResource[*Sky](app.Resources)
	if !ok || !sky.Spawned() || !app.Scene.Contains(sky.Object) {
		return nil, false
	}
	return sky, true
}

// BoundMaterial returns a copy of the material the dome renders with
func BoundMaterial(app *engine.App) (Material, bool) {
	sky, ok := SkyOf(app)
	if !ok {
		return Material{}, false
	}
	store, ok := Materials(app)
	if !ok {
		return Material{}, false
	}
	return store.Get(sky.Material)
}

// ApplyMaterial overwrites the dome's material directly, bypassing the shared
// resource. This is the manual path when dynamic sync is off.
func ApplyMaterial(app *engine.App, m Material) bool {
	sky, ok := SkyOf(app)
	if !ok {
		return false
	}
	store, ok := Materials(app)
	if !ok {
		return false
	}
	return store.Set(sky.Material, m.Clone())
}

func spawnSky(app *engine.App) {
	sky := engine.MustGetResource[*Sky](app.Resources)
	if sky.Spawned() {
		logger.Log.Warn("Sky already spawned, skipping", zap.Uint64("object_id", sky.Object.ID))
		return
	}

	radius := float32(DefaultSkyRadius)
	if r, ok := engine.GetResource[SkyRadius](app.Resources); ok {
		radius = float32(r)
	}

	sphere, err := mesh.Icosphere(radius, SkySubdivisions, true)
	if err != nil {
		logger.Log.Error("Failed to build sky mesh", zap.Float32("radius", radius), zap.Error(err))
		return
	}

	mat := DefaultMaterial()
	var seen uint64
	if shared, ok := SharedMaterial(app); ok {
		mat = shared.Get()
		seen = shared.Version()
	}

	store := engine.MustGetResource[*assets.Store[Material]](app.Resources)
	meshHandle := app.Meshes().Add(*sphere)
	matHandle := store.Add(mat.Clone())

	obj := behaviour.NewGameObject(SkyName)
	obj.AddComponent(behaviour.NewMeshRendererComponent(meshHandle.ID(), matHandle.ID(), MaterialKind))
	obj.AddComponent(&behaviour.NotShadowCaster{})
	app.Scene.RegisterGameObject(obj)

	sky.Object = obj
	sky.Mesh = meshHandle
	sky.Material = matHandle
	sky.seen = seen

	logger.Log.Info("Sky spawned",
		zap.Uint64("object_id", obj.ID),
		zap.Float32("radius", radius),
		zap.Int("vertices", sphere.VertexCount()))
}

// followCamera centres the dome on the active camera. It runs after transform
// propagation so the camera position it copies is this frame's.
func followCamera(app *engine.App) {
	sky, ok := SkyOf(app)
	if !ok {
		return
	}
	cam := app.Scene.ActiveCamera()
	if cam == nil || cam == sky.Object {
		return
	}
	sky.Object.Transform.World.Translation = cam.Transform.World.Translation
}

// syncMaterial copies the shared material into the dome's material once per write
func syncMaterial(app *engine.App) {
	shared, ok := SharedMaterial(app)
	if !ok {
		return
	}
	sky, ok := SkyOf(app)
	if !ok || !shared.ChangedSince(sky.seen) {
		return
	}
	store, ok := Materials(app)
	if !ok {
		return
	}
	dst, ok := store.GetMut(sky.Material)
	if !ok {
		// Asset not resolvable yet; retry next frame
		return
	}
	*dst = shared.Get().Clone()
	sky.seen = shared.Version()
	logger.Log.Debug("Sky material synced", zap.Uint64("version", sky.seen))
}
