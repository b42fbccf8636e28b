package atmosphere

import (
	"math"
	"strings"
	"testing"

	"GopherSky/internal/assets"
	"GopherSky/internal/behaviour"
	"GopherSky/internal/engine"
	"GopherSky/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

func newSkyApp(p Plugin) *engine.App {
	app := engine.NewApp()
	app.AddPlugin(p)
	return app
}

func addCamera(app *engine.App, pos mgl32.Vec3) *behaviour.GameObject {
	cam := behaviour.NewGameObject("Camera")
	cam.AddComponent(behaviour.NewCameraComponent())
	cam.Transform.SetPosition(pos)
	app.Scene.RegisterGameObject(cam)
	app.Scene.SetActiveCamera(cam)
	return cam
}

func countNamed(app *engine.App, name string) int {
	n := 0
	for _, obj := range app.Scene.GetAllGameObjects() {
		if obj.Name == name {
			n++
		}
	}
	return n
}

func TestDefaultPlugin(t *testing.T) {
	p := DefaultPlugin()
	if p.Dynamic {
		t.Error("Dynamic sync should be off by default")
	}
	if p.SkyRadius != 10 {
		t.Errorf("Expected sky radius 10, got %v", p.SkyRadius)
	}
}

func TestBuildRegistersShadersAndSystems(t *testing.T) {
	app := newSkyApp(DefaultPlugin())

	vert, ok := app.Shaders().Get(VertexShaderID)
	if !ok || vert.Stage != assets.VertexStage {
		t.Fatal("Vertex shader should be registered")
	}
	frag, ok := app.Shaders().Get(FragmentShaderID)
	if !ok || frag.Stage != assets.FragmentStage {
		t.Fatal("Fragment shader should be registered")
	}
	if !strings.Contains(vert.Source, "worldPosition") || !strings.Contains(frag.Source, "worldPosition") {
		t.Error("Shaders should pass the world position between stages")
	}
	for _, name := range []string{
		UniformSunPosition, UniformRayOrigin, UniformSunIntensity, UniformPlanetRadius,
		UniformAtmosphereRadius, UniformRayleighCoefficient, UniformMieCoefficient,
		UniformRayleighScaleHeight, UniformMieScaleHeight, UniformMieDirection,
		UniformCameraPosition,
	} {
		if !strings.Contains(frag.Source, "uniform vec3 "+name+";") && !strings.Contains(frag.Source, "uniform float "+name+";") {
			t.Errorf("Fragment shader does not declare uniform %s", name)
		}
	}

	if !app.HasSystem(engine.StageStartup, SpawnSkySystem) {
		t.Error("Spawn system should run at startup")
	}
	if !app.HasSystem(engine.StageLast, FollowSkySystem) {
		t.Error("Follow system should run in the last stage")
	}
	if app.HasSystem(engine.StageUpdate, DynamicSkySystem) {
		t.Error("Dynamic sync should not be registered when disabled")
	}
	if _, ok := Materials(app); !ok {
		t.Error("Material store should be installed")
	}
}

func TestSpawnCreatesSingleSky(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	app.Update()

	if countNamed(app, SkyName) != 1 {
		t.Fatalf("Expected one sky object, got %d", countNamed(app, SkyName))
	}
	sky, ok := SkyOf(app)
	if !ok {
		t.Fatal("Sky should be recorded after startup")
	}

	r, ok := behaviour.ComponentOf[*behaviour.MeshRendererComponent](sky.Object)
	if !ok {
		t.Fatal("Sky should carry a mesh renderer")
	}
	if r.MaterialKind != MaterialKind {
		t.Errorf("Expected material kind %q, got %q", MaterialKind, r.MaterialKind)
	}
	if r.MeshID != sky.Mesh.ID() || r.MaterialID != sky.Material.ID() {
		t.Error("Renderer ids should match the recorded handles")
	}
	if behaviour.CastsShadows(sky.Object) {
		t.Error("Sky should not cast shadows")
	}

	m, ok := app.Meshes().Get(assets.HandleFromID[mesh.Mesh](r.MeshID))
	if !ok {
		t.Fatal("Sky mesh should resolve")
	}
	if m.VertexCount() != 162 {
		t.Errorf("Expected 162 vertices at two subdivisions, got %d", m.VertexCount())
	}
	if math.Abs(float64(m.BoundingRadius())-10) > 1e-4 {
		t.Errorf("Expected radius 10, got %v", m.BoundingRadius())
	}
	if m.Normals[0].Dot(m.Positions[0]) >= 0 {
		t.Error("Sky normals should face inwards")
	}

	mat, ok := BoundMaterial(app)
	if !ok || !mat.Equal(DefaultMaterial()) {
		t.Errorf("Expected the default material, got %+v", mat)
	}
}

func TestSpawnTwiceKeepsOneSky(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	app.Update()
	spawnSky(app)
	app.Update()

	if countNamed(app, SkyName) != 1 {
		t.Errorf("Expected one sky object, got %d", countNamed(app, SkyName))
	}
}

func TestSkyFollowsActiveCamera(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	cam := addCamera(app, mgl32.Vec3{3, 4, 5})
	app.Update()

	sky, _ := SkyOf(app)
	if sky.Object.Transform.World.Translation != cam.Transform.World.Translation {
		t.Errorf("Expected sky at %v, got %v", cam.Transform.World.Translation, sky.Object.Transform.World.Translation)
	}

	cam.Transform.SetPosition(mgl32.Vec3{-20, 1, 7})
	app.Update()
	if sky.Object.Transform.World.Translation != (mgl32.Vec3{-20, 1, 7}) {
		t.Errorf("Expected sky to follow to (-20, 1, 7), got %v", sky.Object.Transform.World.Translation)
	}
	if sky.Object.Transform.Position != (mgl32.Vec3{}) {
		t.Errorf("Follow should not touch the local position, got %v", sky.Object.Transform.Position)
	}
}

func TestSkyFollowsChildCameraWorldPosition(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	rig := behaviour.NewGameObject("Rig")
	rig.Transform.SetPosition(mgl32.Vec3{100, 0, 0})
	app.Scene.RegisterGameObject(rig)
	cam := addCamera(app, mgl32.Vec3{0, 2, 0})
	cam.Transform.SetParent(rig.Transform)
	app.Update()

	sky, _ := SkyOf(app)
	if sky.Object.Transform.World.Translation != (mgl32.Vec3{100, 2, 0}) {
		t.Errorf("Expected sky at the camera's world position, got %v", sky.Object.Transform.World.Translation)
	}
}

func TestNoCameraLeavesSkyInPlace(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	app.Update()
	app.Update()

	sky, _ := SkyOf(app)
	if sky.Object.Transform.World.Translation != (mgl32.Vec3{}) {
		t.Errorf("Expected sky at the origin without a camera, got %v", sky.Object.Transform.World.Translation)
	}
}

func TestFollowIgnoresOtherAtmosphereObjects(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	decoy := behaviour.NewGameObject("Decoy")
	decoy.AddComponent(behaviour.NewMeshRendererComponent(0, 0, MaterialKind))
	app.Scene.RegisterGameObject(decoy)
	addCamera(app, mgl32.Vec3{9, 9, 9})
	app.Update()

	if decoy.Transform.World.Translation != (mgl32.Vec3{}) {
		t.Errorf("Only the spawned sky should follow, decoy at %v", decoy.Transform.World.Translation)
	}
}

func TestDestroyedSkyIsIgnored(t *testing.T) {
	app := newSkyApp(Plugin{Dynamic: true, SkyRadius: 10})
	addCamera(app, mgl32.Vec3{1, 1, 1})
	app.Update()

	sky, _ := SkyOf(app)
	app.Scene.UnregisterGameObject(sky.Object)
	InsertSharedMaterial(app, DefaultMaterial())
	app.Update()

	if _, ok := SkyOf(app); ok {
		t.Error("Unregistered sky should not be reported")
	}
	if ApplyMaterial(app, DefaultMaterial()) {
		t.Error("ApplyMaterial should fail without a sky")
	}
}

func TestInvalidRadiusSkipsSpawn(t *testing.T) {
	for _, r := range []float32{0, -5, float32(math.NaN())} {
		app := newSkyApp(Plugin{SkyRadius: r})
		addCamera(app, mgl32.Vec3{1, 2, 3})
		app.Update()
		app.Update()

		if countNamed(app, SkyName) != 0 {
			t.Errorf("Radius %v: expected no sky, got %d", r, countNamed(app, SkyName))
		}
		if _, ok := SkyOf(app); ok {
			t.Errorf("Radius %v: sky should not be recorded", r)
		}
	}
}

func TestStartupSeedsFromSharedMaterial(t *testing.T) {
	app := engine.NewApp()
	custom := DefaultMaterial()
	custom.SunIntensity = 7
	InsertSharedMaterial(app, custom)
	app.AddPlugin(DefaultPlugin())
	app.Update()

	mat, ok := BoundMaterial(app)
	if !ok || mat.SunIntensity != 7 {
		t.Errorf("Expected the shared material at spawn, got %+v", mat)
	}
}

func TestDynamicSyncCopiesSharedMaterial(t *testing.T) {
	app := engine.NewApp()
	shared := InsertSharedMaterial(app, DefaultMaterial())
	app.AddPlugin(Plugin{Dynamic: true, SkyRadius: 10})
	if !app.HasSystem(engine.StageUpdate, DynamicSkySystem) {
		t.Fatal("Dynamic sync should be registered")
	}
	app.Update()

	sky, _ := SkyOf(app)
	store, _ := Materials(app)
	before := store.Version(sky.Material)
	app.Update()
	app.Update()
	if store.Version(sky.Material) != before {
		t.Error("Material should not be rewritten without shared changes")
	}

	shared.Mutate(func(m *Material) { m.SetSunAngles(0.1, 1) })
	app.Update()

	mat, _ := BoundMaterial(app)
	if mat.SunPosition != SunFromAngles(0.1, 1) {
		t.Errorf("Expected synced sun position, got %v", mat.SunPosition)
	}
	if store.Version(sky.Material) != before+1 {
		t.Errorf("Expected exactly one write, version went %d -> %d", before, store.Version(sky.Material))
	}

	app.Update()
	if store.Version(sky.Material) != before+1 {
		t.Error("Sync should fire once per shared write")
	}
}

func TestDynamicSyncPicksUpLateSharedMaterial(t *testing.T) {
	app := newSkyApp(Plugin{Dynamic: true, SkyRadius: 10})
	app.Update()

	late := DefaultMaterial()
	late.MieDirection = 0.5
	InsertSharedMaterial(app, late)
	app.Update()

	mat, _ := BoundMaterial(app)
	if mat.MieDirection != 0.5 {
		t.Errorf("Expected mie direction 0.5, got %v", mat.MieDirection)
	}
}

func TestDynamicSyncPicksUpReplacedSharedMaterial(t *testing.T) {
	app := engine.NewApp()
	first := DefaultMaterial()
	first.SunIntensity = 5
	engine.InsertResource(app.Resources, engine.NewTracked(first))
	app.AddPlugin(Plugin{Dynamic: true, SkyRadius: 10})
	app.Update()

	mat, _ := BoundMaterial(app)
	if mat.SunIntensity != 5 {
		t.Fatalf("Expected intensity 5 after startup, got %v", mat.SunIntensity)
	}

	second := DefaultMaterial()
	second.SunIntensity = 9
	engine.InsertResource(app.Resources, engine.NewTracked(second))
	app.Update()

	mat, _ = BoundMaterial(app)
	if mat.SunIntensity != 9 {
		t.Errorf("Expected replaced shared material to sync, got intensity %v", mat.SunIntensity)
	}
}

func TestStaticModeIgnoresSharedChanges(t *testing.T) {
	app := engine.NewApp()
	shared := InsertSharedMaterial(app, DefaultMaterial())
	app.AddPlugin(DefaultPlugin())
	app.Update()

	shared.Mutate(func(m *Material) { m.SunIntensity = 1 })
	app.Update()

	mat, _ := BoundMaterial(app)
	if mat.SunIntensity != 22 {
		t.Errorf("Static sky should keep its material, got intensity %v", mat.SunIntensity)
	}

	manual := DefaultMaterial()
	manual.SunIntensity = 3
	if !ApplyMaterial(app, manual) {
		t.Fatal("ApplyMaterial should succeed once the sky exists")
	}
	mat, _ = BoundMaterial(app)
	if mat.SunIntensity != 3 {
		t.Errorf("Expected manual intensity 3, got %v", mat.SunIntensity)
	}
}

func TestInsertSharedMaterialKeepsTracker(t *testing.T) {
	app := engine.NewApp()
	a := InsertSharedMaterial(app, DefaultMaterial())
	v := a.Version()
	b := InsertSharedMaterial(app, DefaultMaterial())

	if a != b {
		t.Error("Reinserting should reuse the tracker")
	}
	if b.Version() <= v {
		t.Error("Reinserting should bump the version")
	}
}

func TestFollowKeepsRotationAndScale(t *testing.T) {
	app := newSkyApp(DefaultPlugin())
	addCamera(app, mgl32.Vec3{1, 1, 1})
	app.Update()

	sky, _ := SkyOf(app)
	rot := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	sky.Object.Transform.SetRotation(rot)
	sky.Object.Transform.SetScale(mgl32.Vec3{2, 2, 2})
	app.Update()

	world := sky.Object.Transform.World
	if world.Translation != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected translation (1,1,1), got %v", world.Translation)
	}
	if world.Rotation != rot {
		t.Errorf("Rotation should be untouched, got %v", world.Rotation)
	}
	if world.Scale != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("Scale should be untouched, got %v", world.Scale)
	}
}

func TestEndToEndStaticSky(t *testing.T) {
	app := engine.NewApp()
	app.AddPlugin(Plugin{Dynamic: false, SkyRadius: 25})
	app.Startup()

	if countNamed(app, SkyName) != 1 {
		t.Fatalf("Expected one sky, got %d", countNamed(app, SkyName))
	}
	sky, _ := SkyOf(app)
	m, _ := app.Meshes().Get(sky.Mesh)
	if math.Abs(float64(m.BoundingRadius())-25) > 25e-5 {
		t.Errorf("Expected bounding radius 25, got %v", m.BoundingRadius())
	}
	mat, _ := BoundMaterial(app)
	if !mat.Equal(DefaultMaterial()) {
		t.Error("Expected the default material")
	}

	addCamera(app, mgl32.Vec3{1, 2, 3})
	app.Update()
	if sky.Object.Transform.World.Translation != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected sky at (1,2,3), got %v", sky.Object.Transform.World.Translation)
	}
}
