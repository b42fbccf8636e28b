package renderer

import (
	"GopherSky/internal/assets"
	"GopherSky/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// gpuMesh is a mesh asset uploaded to vertex and index buffers
type gpuMesh struct {
	VAO, VBO, EBO uint32
	IndexCount    int32
	version       uint64
}

// meshCache uploads mesh assets on first use and again whenever the asset changes
type meshCache struct {
	entries map[uint64]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{entries: make(map[uint64]*gpuMesh)}
}

func (c *meshCache) resolve(store *assets.Store[mesh.Mesh], h assets.Handle[mesh.Mesh]) (*gpuMesh, bool) {
	version := store.Version(h)
	if version == 0 {
		return nil, false
	}
	entry, ok := c.entries[h.ID()]
	if ok && entry.version == version {
		return entry, true
	}
	m, _ := store.Get(h)
	if ok {
		entry.delete()
	}
	entry = uploadMesh(&m)
	entry.version = version
	c.entries[h.ID()] = entry
	return entry, true
}

func (c *meshCache) clear() {
	for id, entry := range c.entries {
		entry.delete()
		delete(c.entries, id)
	}
}

func uploadMesh(m *mesh.Mesh) *gpuMesh {
	data := m.Interleaved()
	g := &gpuMesh{IndexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.VAO)
	gl.DrawElements(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &g.VAO)
	gl.DeleteBuffers(1, &g.VBO)
	gl.DeleteBuffers(1, &g.EBO)
}
