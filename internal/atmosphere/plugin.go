package atmosphere

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/engine"
	"GopherSky/internal/logger"

	"go.uber.org/zap"
)

const (
	// SkyName is the name of the spawned sky object
	SkyName = "Sky Sphere"
	// MaterialKind tags renderers whose MaterialID lives in the atmosphere material store
	MaterialKind = "atmosphere"
	// SkySubdivisions is the icosphere detail used for the dome
	SkySubdivisions = 2
	// DefaultSkyRadius keeps the dome well inside typical far planes
	DefaultSkyRadius = 10.0
)

// System names registered by the plugin
const (
	SpawnSkySystem   = "atmosphere_spawn_sky"
	FollowSkySystem  = "atmosphere_follow_camera"
	DynamicSkySystem = "atmosphere_dynamic_sync"
)

// Plugin installs the sky dome, the camera follow system and, when Dynamic is set,
// propagation of the shared Material resource into the dome's own material.
type Plugin struct {
	Dynamic   bool    `json:"dynamic"`
	SkyRadius float32 `json:"sky_radius"`
}

func DefaultPlugin() Plugin {
	return Plugin{
		Dynamic:   false,
		SkyRadius: DefaultSkyRadius,
	}
}

// SkyRadius is the dome radius recorded at build time
type SkyRadius float32

// Build wires shaders, resources and systems into app
func (p Plugin) Build(app *engine.App) {
	RegisterShaders(app.Shaders())

	if _, ok := engine.GetResource[*assets.Store[Material]](app.Resources); !ok {
		engine.InsertResource(app.Resources, assets.NewStore[Material]())
	}
	engine.InsertResource(app.Resources, SkyRadius(p.SkyRadius))
	if _, ok := engine.GetResource[*Sky](app.Resources); !ok {
		engine.InsertResource(app.Resources, &Sky{})
	}

	app.AddStartupSystem(SpawnSkySystem, spawnSky)
	app.AddSystem(engine.StageLast, FollowSkySystem, followCamera)
	if p.Dynamic {
		app.AddSystem(engine.StageUpdate, DynamicSkySystem, syncMaterial)
	}

	logger.Log.Info("Atmosphere plugin built",
		zap.Bool("dynamic", p.Dynamic),
		zap.Float32("sky_radius", p.SkyRadius))
}

// Materials returns the atmosphere material store, if the plugin was built
func Materials(app *engine.App) (*assets.Store[Material], bool) {
	return engine.GetResource[*assets.Store[Material]](app.Resources)
}

// InsertSharedMaterial installs (or replaces) the application-wide material.
// In dynamic mode every write to it reaches the dome at the next update.
func InsertSharedMaterial(app *engine.App, m Material) *engine.Tracked[Material] {
	if shared, ok := SharedMaterial(app); ok {
		// Reuse the tracker so versions stay monotonic
		shared.Set(m)
		return shared
	}
	shared := engine.NewTracked(m)
	engine.InsertResource(app.Resources, shared)
	return shared
}

// SharedMaterial returns the application-wide material, if one was inserted
func SharedMaterial(app *engine.App) (*engine.Tracked[Material], bool) {
	return engine.GetResource[*engine.Tracked[Material]](app.Resources)
}
