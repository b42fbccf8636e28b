package atmosphere

import (
	_ "embed"

	"GopherSky/internal/assets"
)

// Stable shader identifiers. Renderers look these up in the shader registry.
const (
	VertexShaderID   = "atmosphere/sky.vert"
	FragmentShaderID = "atmosphere/sky.frag"
)

// Per-draw uniforms the sky shaders read besides the material
const (
	UniformModel          = "model"
	UniformViewProjection = "viewProjection"
	UniformCameraPosition = "cameraPosition"
)

//go:embed shaders/sky.vert
var skyVertexSource string

//go:embed shaders/sky.frag
var skyFragmentSource string

// RegisterShaders publishes the sky shader sources. Registering twice is harmless.
func RegisterShaders(reg *assets.ShaderRegistry) {
	reg.Set(VertexShaderID, assets.ShaderSource{Stage: assets.VertexStage, Source: skyVertexSource})
	reg.Set(FragmentShaderID, assets.ShaderSource{Stage: assets.FragmentStage, Source: skyFragmentSource})
}
