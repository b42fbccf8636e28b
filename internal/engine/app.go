package engine

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/behaviour"
	"GopherSky/internal/logger"
	"GopherSky/internal/mesh"

	"go.uber.org/zap"
)

// Stage orders systems within a frame
type Stage int

const (
	// StageStartup runs once, before the first frame
	StageStartup Stage = iota
	StageFirst
	StageUpdate
	// StagePostUpdate holds transform propagation
	StagePostUpdate
	// StageLast runs after world transforms are final for the frame
	StageLast
	stageCount
)

var stageNames = [...]string{"Startup", "First", "Update", "PostUpdate", "Last"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "Unknown"
	}
	return stageNames[s]
}

// Built-in system names
const (
	BehaviourFixedUpdateSystem = "behaviour_fixed_update"
	BehaviourUpdateSystem      = "behaviour_update"
	TransformPropagateSystem   = "transform_propagate"
)

// FixedUpdateInterval is the number of frames between component FixedUpdate calls
const FixedUpdateInterval = 2

// System is a named per-frame callback
type System struct {
	Name string
	Run  func(app *App)
}

// Plugin installs resources and systems into an App
type Plugin interface {
	Build(app *App)
}

// App owns the scene, the shared resources and the frame schedule
type App struct {
	Scene     *behaviour.ComponentManager
	Resources *Resources

	stages  [stageCount][]System
	started bool
	frame   uint64
}

// NewApp creates an App with a mesh store, a shader registry, component updates
// and transform propagation installed
func NewApp() *App {
	app := &App{
		Scene:     behaviour.NewComponentManager(),
		Resources: NewResources(),
	}
	InsertResource(app.Resources, assets.NewStore[mesh.Mesh]())
	InsertResource(app.Resources, assets.NewShaderRegistry())

	app.AddSystem(StageFirst, BehaviourFixedUpdateSystem, func(a *App) {
		if a.frame%FixedUpdateInterval == 0 {
			a.Scene.FixedUpdateAll()
		}
	})
	app.AddSystem(StageUpdate, BehaviourUpdateSystem, func(a *App) {
		a.Scene.UpdateAll()
	})
	app.AddSystem(StagePostUpdate, TransformPropagateSystem, func(a *App) {
		a.Scene.PropagateTransforms()
	})
	return app
}

// AddPlugin builds p into the app immediately
func (app *App) AddPlugin(p Plugin) *App {
	p.Build(app)
	return app
}

// AddSystem appends a system to a stage. Systems in one stage run in insertion order.
func (app *App) AddSystem(stage Stage, name string, run func(app *App)) *App {
	if stage < 0 || stage >= stageCount {
		logger.Log.Error("Ignoring system for unknown stage", zap.String("system", name), zap.Int("stage", int(stage)))
		return app
	}
	app.stages[stage] = append(app.stages[stage], System{Name: name, Run: run})
	return app
}

// AddStartupSystem is shorthand for AddSystem(StageStartup, ...)
func (app *App) AddStartupSystem(name string, run func(app *App)) *App {
	return app.AddSystem(StageStartup, name, run)
}

// HasSystem reports whether a system with the given name is scheduled in stage
func (app *App) HasSystem(stage Stage, name string) bool {
	if stage < 0 || stage >= stageCount {
		return false
	}
	for _, s := range app.stages[stage] {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Systems returns the system names of a stage in run order
func (app *App) Systems(stage Stage) []string {
	if stage < 0 || stage >= stageCount {
		return nil
	}
	names := make([]string, len(app.stages[stage]))
	for i, s := range app.stages[stage] {
		names[i] = s.Name
	}
	return names
}

// Startup runs the startup stage once. Later calls do nothing.
func (app *App) Startup() {
	if app.started {
		return
	}
	app.started = true
	for _, s := range app.stages[StageStartup] {
		s.Run(app)
	}
	logger.Log.Debug("Startup complete", zap.Int("systems", len(app.stages[StageStartup])))
}

// Update runs one frame: every per-frame stage in order. Startup runs first if it has not yet.
func (app *App) Update() {
	app.Startup()
	for stage := StageFirst; stage < stageCount; stage++ {
		for _, s := range app.stages[stage] {
			s.Run(app)
		}
	}
	app.frame++
}

// Frame returns the number of completed frames
func (app *App) Frame() uint64 {
	return app.frame
}

// Meshes returns the app's mesh store
func (app *App) Meshes() *assets.Store[mesh.Mesh] {
	return MustGetResource[*assets.Store[mesh.Mesh]](app.Resources)
}

// Shaders returns the app's shader registry
func (app *App) Shaders() *assets.ShaderRegistry {
	return MustGetResource[*assets.ShaderRegistry](app.Resources)
}
