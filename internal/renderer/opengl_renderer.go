package renderer

import (
	"fmt"

	"GopherSky/internal/atmosphere"
	"GopherSky/internal/engine"
	"GopherSky/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// OpenGLRenderer draws the sky first, then lit geometry on top of it
type OpenGLRenderer struct {
	app    *engine.App
	meshes *meshCache
	sky    *SkyPass
	models *ModelPass

	light        Light
	lightVersion uint64
}

// NewOpenGLRenderer binds a renderer to the app whose scene and stores it draws
func NewOpenGLRenderer(app *engine.App) *OpenGLRenderer {
	return &OpenGLRenderer{app: app, meshes: newMeshCache()}
}

// Init must run on the thread that owns the GL context, after the plugins are built
func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return fmt.Errorf("renderer: %w", err)
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)

	sky, err := NewSkyPass(rend.app.Shaders())
	if err != nil {
		return err
	}
	models, err := NewModelPass()
	if err != nil {
		sky.Cleanup()
		return err
	}
	rend.sky = sky
	rend.models = models
	rend.light = SunLight(atmosphere.DefaultMaterial())

	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

func (rend *OpenGLRenderer) Render(app *engine.App, camera *Camera) {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	rend.updateLight(app)
	rend.sky.Render(app, camera, rend.meshes)
	rend.models.Render(app, camera, rend.meshes, rend.light)
}

// updateLight re-derives the sun light when the dome's material changes
func (rend *OpenGLRenderer) updateLight(app *engine.App) {
	sky, ok := atmosphere.SkyOf(app)
	if !ok {
		return
	}
	store, ok := atmosphere.Materials(app)
	if !ok {
		return
	}
	version := store.Version(sky.Material)
	if version == 0 || version == rend.lightVersion {
		return
	}
	mat, _ := store.Get(sky.Material)
	rend.light = SunLight(mat)
	rend.lightVersion = version
}

func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	if rend.sky != nil {
		rend.sky.Cleanup()
	}
	if rend.models != nil {
		rend.models.Cleanup()
	}
	rend.meshes.clear()
}
