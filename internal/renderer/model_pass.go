package renderer

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/atmosphere"
	"GopherSky/internal/engine"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// PhongMaterialKind tags renderers drawn by the model pass
const PhongMaterialKind = "phong"

// PhongMaterial is the lit surface material of ordinary scene geometry
type PhongMaterial struct {
	DiffuseColor  mgl32.Vec3 `json:"diffuse_color"`
	SpecularColor mgl32.Vec3 `json:"specular_color"`
	Shininess     float32    `json:"shininess"`
}

func DefaultPhongMaterial() PhongMaterial {
	return PhongMaterial{
		DiffuseColor:  mgl32.Vec3{0.8, 0.8, 0.8},
		SpecularColor: mgl32.Vec3{0.1, 0.1, 0.1},
		Shininess:     16,
	}
}

// PhongMaterials returns the phong material store, installing it on first use
func PhongMaterials(app *engine.App) *assets.Store[PhongMaterial] {
	if store, ok := engine.GetResource[*assets.Store[PhongMaterial]](app.Resources); ok {
		return store
	}
	store := assets.NewStore[PhongMaterial]()
	engine.InsertResource(app.Resources, store)
	return store
}

// SunLight derives a directional light from the sky material. Colour and ambient
// come from evaluating the sky itself, so terrain dims and reddens with the sun.
func SunLight(mat atmosphere.Material) Light {
	dir := mat.SunDirection()
	sampler := atmosphere.Sampler{Material: mat}
	intensity := float32(1)
	if dir.Y() < 0 {
		intensity = 0
	}
	return Light{
		Direction: dir,
		Color:     sampler.Sample(dir),
		Ambient:   sampler.Ambient().Mul(0.5),
		Intensity: intensity,
	}
}

// ModelPass draws phong-material objects with frustum culling
type ModelPass struct {
	shader Shader
}

func NewModelPass() (*ModelPass, error) {
	pass := &ModelPass{shader: InitPhongShader()}
	if err := pass.shader.Compile(); err != nil {
		return nil, err
	}
	return pass, nil
}

func (p *ModelPass) Render(app *engine.App, camera *Camera, meshes *meshCache, light Light) {
	items := collectDrawables(app, PhongMaterialKind)
	if len(items) == 0 {
		return
	}
	materials := PhongMaterials(app)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	var frustum Frustum
	if FrustumCullingEnabled {
		frustum = camera.CalculateFrustum()
	}

	p.shader.Use()
	p.shader.SetMat4("viewProjection", camera.GetViewProjection())
	p.shader.SetVec3("viewPos", camera.Position)
	p.shader.SetVec3("lightDirection", light.Direction)
	p.shader.SetVec3("lightColor", light.Color)
	p.shader.SetVec3("ambientColor", light.Ambient)
	p.shader.SetFloat("lightIntensity", light.Intensity)

	for _, item := range items {
		if FrustumCullingEnabled && !frustum.IntersectsSphere(item.Center, item.Radius) {
			continue
		}
		gpu, ok := meshes.resolve(app.Meshes(), item.Mesh)
		if !ok {
			continue
		}
		mat, ok := materials.Get(assets.HandleFromID[PhongMaterial](item.MaterialID))
		if !ok {
			mat = DefaultPhongMaterial()
		}
		p.shader.SetMat4("model", item.Model)
		p.shader.SetVec3("diffuseColor", mat.DiffuseColor)
		p.shader.SetVec3("specularColor", mat.SpecularColor)
		p.shader.SetFloat("shininess", mat.Shininess)
		gpu.draw()
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
}

func (p *ModelPass) Cleanup() {
	p.shader.Delete()
}
