package behaviour

// ComponentManager manages all GameObjects and their components
type ComponentManager struct {
	gameObjects  []*GameObject
	toDestroy    []*GameObject
	nextID       uint64
	activeCamera *GameObject
}

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		gameObjects: make([]*GameObject, 0),
		toDestroy:   make([]*GameObject, 0),
		nextID:      1,
	}
}

// RegisterGameObject adds a GameObject to the manager and starts its components
func (cm *ComponentManager) RegisterGameObject(obj *GameObject) {
	if obj.ID == 0 {
		obj.ID = cm.nextID
		cm.nextID++
	}
	cm.gameObjects = append(cm.gameObjects, obj)
	obj.internalStart()
}

func (cm *ComponentManager) UnregisterGameObject(obj *GameObject) {
	for i, o := range cm.gameObjects {
		if o == obj {
			cm.gameObjects = append(cm.gameObjects[:i], cm.gameObjects[i+1:]...)
			if cm.activeCamera == obj {
				cm.activeCamera = nil
			}
			obj.Destroy()
			return
		}
	}
}

// Contains reports whether obj is registered
func (cm *ComponentManager) Contains(obj *GameObject) bool {
	for _, o := range cm.gameObjects {
		if o == obj {
			return true
		}
	}
	return false
}

// FindGameObject finds a GameObject by name
func (cm *ComponentManager) FindGameObject(name string) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FindGameObjectByID finds a GameObject by its registration id
func (cm *ComponentManager) FindGameObjectByID(id uint64) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

// FindGameObjectsWithTag finds all GameObjects with a specific tag
func (cm *ComponentManager) FindGameObjectsWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, obj := range cm.gameObjects {
		if obj.Tag == tag {
			result = append(result, obj)
		}
	}
	return result
}

// SetActiveCamera designates the viewpoint used for rendering.
// It returns false, leaving the current camera alone, if obj is not registered.
// A nil obj clears the designation.
func (cm *ComponentManager) SetActiveCamera(obj *GameObject) bool {
	if obj == nil {
		cm.activeCamera = nil
		return true
	}
	if !cm.Contains(obj) {
		return false
	}
	cm.activeCamera = obj
	return true
}

// ActiveCamera returns the designated camera, or nil if none is set or it is inactive
func (cm *ComponentManager) ActiveCamera() *GameObject {
	if cm.activeCamera == nil || !cm.activeCamera.Active {
		return nil
	}
	return cm.activeCamera
}

// UpdateAll calls Update on all active GameObjects
func (cm *ComponentManager) UpdateAll() {
	// Process destroyed objects
	if len(cm.toDestroy) > 0 {
		for _, obj := range cm.toDestroy {
			cm.UnregisterGameObject(obj)
		}
		cm.toDestroy = cm.toDestroy[:0]
	}

	for _, obj := range cm.gameObjects {
		if obj.Active {
			obj.internalUpdate()
		}
	}
}

// FixedUpdateAll calls FixedUpdate on all active GameObjects
func (cm *ComponentManager) FixedUpdateAll() {
	for _, obj := range cm.gameObjects {
		if obj.Active {
			obj.internalFixedUpdate()
		}
	}
}

// PropagateTransforms recomputes every registered object's world transform from the
// local transforms of its ancestors. Parents that are not registered are treated as roots.
func (cm *ComponentManager) PropagateTransforms() {
	for _, obj := range cm.gameObjects {
		t := obj.Transform
		if t.Parent != nil && t.Parent.GetGameObject() != nil && cm.Contains(t.Parent.GetGameObject()) {
			continue
		}
		t.World = IdentityGlobalTransform().Mul(t)
		propagateChildren(t)
	}
}

func propagateChildren(parent *Transform) {
	for _, child := range parent.Children {
		child.World = parent.World.Mul(child)
		propagateChildren(child)
	}
}

// DestroyGameObject marks a GameObject for destruction (will be removed next frame)
func (cm *ComponentManager) DestroyGameObject(obj *GameObject) {
	cm.toDestroy = append(cm.toDestroy, obj)
}

// GetAllGameObjects returns all registered GameObjects
func (cm *ComponentManager) GetAllGameObjects() []*GameObject {
	return cm.gameObjects
}

// Clear removes all GameObjects
func (cm *ComponentManager) Clear() {
	for _, obj := range cm.gameObjects {
		obj.Destroy()
	}
	cm.gameObjects = cm.gameObjects[:0]
	cm.toDestroy = cm.toDestroy[:0]
	cm.activeCamera = nil
}
