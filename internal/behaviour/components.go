package behaviour

// ComponentType defines the category of a component
type ComponentType string

const (
	ComponentTypeRenderer ComponentType = "Renderer"
	ComponentTypeCamera   ComponentType = "Camera"
	ComponentTypeMarker   ComponentType = "Marker"
	ComponentTypeCustom   ComponentType = "Custom"
)

// TypedComponent extends Component with type information
type TypedComponent interface {
	Component
	GetComponentType() ComponentType
	GetTypeName() string
}

// MeshRendererComponent makes an object drawable: a mesh asset plus a material asset.
// Handles are kept as untyped asset ids so one component serves every material kind.
type MeshRendererComponent struct {
	BaseComponent
	MeshID       uint64 `json:"mesh_id"`
	MaterialID   uint64 `json:"material_id"`
	MaterialKind string `json:"material_kind"` // Selects the store/shader that owns MaterialID
	CastShadows  bool   `json:"cast_shadows"`
}

func NewMeshRendererComponent(meshID, materialID uint64, materialKind string) *MeshRendererComponent {
	return &MeshRendererComponent{
		MeshID:       meshID,
		MaterialID:   materialID,
		MaterialKind: materialKind,
		CastShadows:  true,
	}
}

func (m *MeshRendererComponent) GetComponentType() ComponentType {
	return ComponentTypeRenderer
}

func (m *MeshRendererComponent) GetTypeName() string {
	return "MeshRendererComponent"
}

// NotShadowCaster excludes the object from shadow map passes
type NotShadowCaster struct {
	BaseComponent
}

// Awake clears CastShadows on a renderer already attached to the object
func (n *NotShadowCaster) Awake() {
	if obj := n.GetGameObject(); obj != nil {
		if r, ok := ComponentOf[*MeshRendererComponent](obj); ok {
			r.CastShadows = false
		}
	}
}

func (n *NotShadowCaster) GetComponentType() ComponentType {
	return ComponentTypeMarker
}

func (n *NotShadowCaster) GetTypeName() string {
	return "NotShadowCaster"
}

// CastsShadows reports whether obj should be drawn into shadow maps
func CastsShadows(obj *GameObject) bool {
	if _, excluded := ComponentOf[*NotShadowCaster](obj); excluded {
		return false
	}
	r, ok := ComponentOf[*MeshRendererComponent](obj)
	return ok && r.CastShadows
}

// CameraComponent holds projection settings for a camera object
type CameraComponent struct {
	BaseComponent
	Fov  float32 `json:"fov"` // Degrees
	Near float32 `json:"near"`
	Far  float32 `json:"far"`
}

func NewCameraComponent() *CameraComponent {
	return &CameraComponent{
		Fov:  45.0,
		Near: 0.1,
		Far:  10000.0,
	}
}

func (c *CameraComponent) GetComponentType() ComponentType {
	return ComponentTypeCamera
}

func (c *CameraComponent) GetTypeName() string {
	return "CameraComponent"
}
