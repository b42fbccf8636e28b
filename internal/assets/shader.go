package assets

import "sort"

// ShaderStage is the pipeline stage a shader source targets
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// ShaderSource is GLSL text handed to the graphics backend untouched
type ShaderSource struct {
	Stage  ShaderStage
	Source string
}

// ShaderRegistry maps fixed, stable identifiers to shader sources
type ShaderRegistry struct {
	sources map[string]ShaderSource
}

func NewShaderRegistry() *ShaderRegistry {
	return &ShaderRegistry{sources: make(map[string]ShaderSource)}
}

// Set registers src under id, replacing any previous source
func (r *ShaderRegistry) Set(id string, src ShaderSource) {
	r.sources[id] = src
}

func (r *ShaderRegistry) Get(id string) (ShaderSource, bool) {
	src, ok := r.sources[id]
	return src, ok
}

// IDs returns the registered identifiers in sorted order
func (r *ShaderRegistry) IDs() []string {
	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
