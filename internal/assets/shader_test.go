package assets

import "testing"

func TestShaderRegistry(t *testing.T) {
	reg := NewShaderRegistry()

	reg.Set("b.frag", ShaderSource{Stage: FragmentStage, Source: "frag"})
	reg.Set("a.vert", ShaderSource{Stage: VertexStage, Source: "vert"})

	src, ok := reg.Get("a.vert")
	if !ok {
		t.Fatal("Registered shader should resolve")
	}
	if src.Stage != VertexStage || src.Source != "vert" {
		t.Errorf("Unexpected source %+v", src)
	}

	if _, ok := reg.Get("missing"); ok {
		t.Error("Unknown id should not resolve")
	}

	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != "a.vert" || ids[1] != "b.frag" {
		t.Errorf("Expected sorted ids [a.vert b.frag], got %v", ids)
	}
}

func TestShaderStageString(t *testing.T) {
	if VertexStage.String() != "vertex" || FragmentStage.String() != "fragment" {
		t.Error("Unexpected stage names")
	}
}
