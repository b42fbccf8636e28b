package renderer

import (
	"testing"

	"GopherSky/internal/atmosphere"
	"GopherSky/internal/engine"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPhongMaterialsInstalledOnce(t *testing.T) {
	app := engine.NewApp()
	a := PhongMaterials(app)
	h := a.Add(DefaultPhongMaterial())
	b := PhongMaterials(app)

	if a != b {
		t.Error("Store should be installed once")
	}
	if !b.Contains(h) {
		t.Error("Material should be retrievable from the same store")
	}
}

func TestSunLightFollowsSun(t *testing.T) {
	day := atmosphere.DefaultMaterial()
	day.SunPosition = mgl32.Vec3{0, 1, 0}
	light := SunLight(day)

	if !vecNear(light.Direction, mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("Expected light from above, got %v", light.Direction)
	}
	if light.Intensity != 1 {
		t.Errorf("Expected full intensity at noon, got %v", light.Intensity)
	}
	if light.Ambient.Len() == 0 {
		t.Error("Expected sky ambient during the day")
	}

	night := atmosphere.DefaultMaterial()
	night.SunPosition = mgl32.Vec3{0, -1, 0.2}
	if SunLight(night).Intensity != 0 {
		t.Error("Sun below the horizon should not light the scene")
	}
}
