package renderer

import (
	"GopherSky/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

var FaceCullingEnabled bool = true
var FrustumCullingEnabled bool = true
var Debug bool = false
var DepthTestEnabled bool = true

// Light is a single directional light, usually derived from the sky's sun
type Light struct {
	Direction mgl32.Vec3 // Points towards the light
	Color     mgl32.Vec3
	Ambient   mgl32.Vec3
	Intensity float32
}

type Render interface {
	Init(width, height int32) error
	Render(app *engine.App, camera *Camera)
	UpdateViewport(width, height int32)
	Cleanup()
}
