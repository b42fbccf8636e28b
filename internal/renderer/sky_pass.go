package renderer

import (
	"fmt"

	"GopherSky/internal/assets"
	"GopherSky/internal/atmosphere"
	"GopherSky/internal/engine"
	"GopherSky/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// bindingCache remembers which material version was last uploaded as uniforms
type bindingCache struct {
	bound   uint64 // material id currently in the program
	version uint64
}

// stale reports whether the program needs the material's uniforms again
func (b *bindingCache) stale(id, version uint64) bool {
	return b.bound != id || b.version != version
}

func (b *bindingCache) mark(id, version uint64) {
	b.bound = id
	b.version = version
}

func (b *bindingCache) reset() {
	*b = bindingCache{}
}

// SkyPass draws every atmosphere-material object as a background: depth writes
// off, drawn before anything else, coloured entirely by the scattering shader.
type SkyPass struct {
	shader   Shader
	bindings bindingCache
	warned   map[uint64]bool
}

// NewSkyPass builds the pass from the shader sources registered with the app
func NewSkyPass(shaders *assets.ShaderRegistry) (*SkyPass, error) {
	vert, ok := shaders.Get(atmosphere.VertexShaderID)
	if !ok {
		return nil, fmt.Errorf("renderer: shader %q not registered", atmosphere.VertexShaderID)
	}
	frag, ok := shaders.Get(atmosphere.FragmentShaderID)
	if !ok {
		return nil, fmt.Errorf("renderer: shader %q not registered", atmosphere.FragmentShaderID)
	}
	pass := &SkyPass{
		shader: NewShader("atmosphere", vert.Source, frag.Source),
		warned: make(map[uint64]bool),
	}
	if err := pass.shader.Compile(); err != nil {
		return nil, err
	}
	return pass, nil
}

func (p *SkyPass) Render(app *engine.App, camera *Camera, meshes *meshCache) {
	materials, ok := atmosphere.Materials(app)
	if !ok {
		return
	}
	item, ok := skyDrawable(app)
	if !ok {
		return
	}
	h := assets.HandleFromID[atmosphere.Material](item.MaterialID)
	version := materials.Version(h)
	if version == 0 {
		if !p.warned[item.MaterialID] {
			logger.Log.Warn("Sky material does not resolve, skipping",
				zap.String("object", item.Object.Name), zap.Uint64("material_id", item.MaterialID))
			p.warned[item.MaterialID] = true
		}
		return
	}
	gpu, ok := meshes.resolve(app.Meshes(), item.Mesh)
	if !ok {
		return
	}

	p.shader.Use()
	p.shader.SetMat4(atmosphere.UniformViewProjection, camera.GetViewProjection())
	p.shader.SetVec3(atmosphere.UniformCameraPosition, camera.Position)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	if FaceCullingEnabled {
		// Dome triangles wind inwards, so from inside they are front faces
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	if p.bindings.stale(item.MaterialID, version) {
		mat, _ := materials.Get(h)
		mat.ApplyUniforms(&p.shader)
		p.bindings.mark(item.MaterialID, version)
	}
	p.shader.SetMat4(atmosphere.UniformModel, item.Model)
	gpu.draw()

	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (p *SkyPass) Cleanup() {
	p.shader.Delete()
	p.bindings.reset()
}
