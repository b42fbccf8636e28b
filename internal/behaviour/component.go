package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component is the base interface for all components
// Components can be attached to game objects
type Component interface {
	// Lifecycle methods
	Awake()       // Called when component is first attached
	Start()       // Called when the owning object is registered
	Update()      // Called every frame
	FixedUpdate() // Called at fixed time intervals
	OnDestroy()   // Called when component/object is destroyed

	// Component info
	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// BaseComponent provides default implementations for all Component methods
// Embed it and override only what is needed
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()       {}
func (c *BaseComponent) Start()       {}
func (c *BaseComponent) Update()      {}
func (c *BaseComponent) FixedUpdate() {}
func (c *BaseComponent) OnDestroy()   {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// GameObject represents an object in the scene
type GameObject struct {
	ID         uint64 // Assigned on registration, 0 while unregistered
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component
}

// GlobalTransform is a transform expressed in world space.
// It is written by ComponentManager.PropagateTransforms.
type GlobalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// IdentityGlobalTransform returns the world-space identity
func IdentityGlobalTransform() GlobalTransform {
	return GlobalTransform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Mul composes g with a child's local transform
func (g GlobalTransform) Mul(local *Transform) GlobalTransform {
	scaled := mgl32.Vec3{
		local.Position.X() * g.Scale.X(),
		local.Position.Y() * g.Scale.Y(),
		local.Position.Z() * g.Scale.Z(),
	}
	return GlobalTransform{
		Translation: g.Translation.Add(g.Rotation.Rotate(scaled)),
		Rotation:    g.Rotation.Mul(local.Rotation),
		Scale: mgl32.Vec3{
			g.Scale.X() * local.Scale.X(),
			g.Scale.Y() * local.Scale.Y(),
			g.Scale.Z() * local.Scale.Z(),
		},
	}
}

// Mat4 returns the TRS model matrix
func (g GlobalTransform) Mat4() mgl32.Mat4 {
	scale := mgl32.Scale3D(g.Scale.X(), g.Scale.Y(), g.Scale.Z())
	translation := mgl32.Translate3D(g.Translation.X(), g.Translation.Y(), g.Translation.Z())
	return translation.Mul4(g.Rotation.Mat4()).Mul4(scale)
}

// Transform holds the local transform of a game object
type Transform struct {
	BaseComponent
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
	Children []*Transform

	// World is the propagated world-space transform
	World GlobalTransform
}

// Transform methods
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation)
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

// SetParent re-parents t, detaching it from any previous parent. A nil parent makes t a root.
func (t *Transform) SetParent(parent *Transform) {
	if t.Parent != nil {
		siblings := t.Parent.Children
		for i, c := range siblings {
			if c == t {
				t.Parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	t.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, t)
	}
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// GameObject methods
func NewGameObject(name string) *GameObject {
	obj := &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform: &Transform{
			Position: mgl32.Vec3{0, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
			World:    IdentityGlobalTransform(),
		},
	}
	obj.Transform.SetGameObject(obj)
	return obj
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
}

// GetComponent returns the first component whose type name matches
func (obj *GameObject) GetComponent(typeName string) Component {
	for _, comp := range obj.Components {
		if typed, ok := comp.(TypedComponent); ok && typed.GetTypeName() == typeName {
			return comp
		}
	}
	return nil
}

// GetComponents returns every component whose type name matches
func (obj *GameObject) GetComponents(typeName string) []Component {
	var result []Component
	for _, comp := range obj.Components {
		if typed, ok := comp.(TypedComponent); ok && typed.GetTypeName() == typeName {
			result = append(result, comp)
		}
	}
	return result
}

// ComponentOf returns the first component of concrete type T
func ComponentOf[T Component](obj *GameObject) (T, bool) {
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

func (obj *GameObject) internalUpdate() {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Update()
		}
	}
}

func (obj *GameObject) internalFixedUpdate() {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.FixedUpdate()
		}
	}
}

func (obj *GameObject) internalStart() {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Start()
		}
	}
}

func (obj *GameObject) Destroy() {
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
