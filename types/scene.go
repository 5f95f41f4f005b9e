package types

// Vector3 represents a point or direction in 3D space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec3 creates a Vector3 from its components.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// UnitScale returns the identity scale vector (1, 1, 1).
func UnitScale() Vector3 {
	return Vector3{X: 1, Y: 1, Z: 1}
}

// Color represents a color as either a hex string or RGB components in [0, 1].
// At least one representation should be set.
type Color struct {
	Hex string   `json:"hex,omitempty"`
	R   *float64 `json:"r,omitempty"`
	G   *float64 `json:"g,omitempty"`
	B   *float64 `json:"b,omitempty"`
}

// HexColor creates a Color from a hex string like "#ff0000".
func HexColor(hex string) Color {
	return Color{Hex: hex}
}

// RGB creates a Color from components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: &r, G: &g, B: &b}
}

// CameraDefinition describes a scene camera.
type CameraDefinition struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // PerspectiveCamera, OrthographicCamera
	Position Vector3 `json:"position"`
	LookAt   Vector3 `json:"lookAt"`
	FOV      float64 `json:"fov"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
	Active   bool    `json:"active"`
}

// LightDefinition describes a scene light source.
type LightDefinition struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"` // AmbientLight, DirectionalLight, PointLight, SpotLight
	Color      string   `json:"color"`
	Intensity  float64  `json:"intensity"`
	Position   *Vector3 `json:"position,omitempty"`
	CastShadow bool     `json:"castShadow"`
}

// FogDefinition describes atmospheric fog. Density applies to exponential
// fog; Near/Far apply to linear fog.
type FogDefinition struct {
	Type    string  `json:"type"` // "linear" or "exponential"
	Color   string  `json:"color"`
	Density float64 `json:"density,omitempty"`
	Near    float64 `json:"near,omitempty"`
	Far     float64 `json:"far,omitempty"`
}

// EnvironmentDefinition describes the scene environment.
type EnvironmentDefinition struct {
	BackgroundColor string         `json:"backgroundColor"`
	Fog             *FogDefinition `json:"fog,omitempty"`
	Skybox          map[string]any `json:"skybox,omitempty"`
	Ground          map[string]any `json:"ground,omitempty"`
}

// MaterialDefinition describes a Three.js material.
type MaterialDefinition struct {
	ID                string   `json:"id"`
	Type              string   `json:"type"` // MeshStandardMaterial, MeshBasicMaterial, ...
	Color             string   `json:"color"`
	Metalness         float64  `json:"metalness"`
	Roughness         float64  `json:"roughness"`
	Emissive          string   `json:"emissive,omitempty"`
	EmissiveIntensity *float64 `json:"emissiveIntensity,omitempty"`
	Map               string   `json:"map,omitempty"`
	NormalMap         string   `json:"normalMap,omitempty"`
	RoughnessMap      string   `json:"roughnessMap,omitempty"`
	MetalnessMap      string   `json:"metalnessMap,omitempty"`
	AOMap             string   `json:"aoMap,omitempty"`
	AlphaTest         *float64 `json:"alphaTest,omitempty"`
	Transparent       *bool    `json:"transparent,omitempty"`
	Wireframe         *bool    `json:"wireframe,omitempty"`
	Side              string   `json:"side,omitempty"` // FrontSide, BackSide, DoubleSide
}

// GeometryDefinition describes a primitive geometry. Parameters are passed
// positionally to the Three.js geometry constructor.
type GeometryDefinition struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // BoxGeometry, SphereGeometry, CylinderGeometry, ...
	Parameters []float64 `json:"parameters"`
}

// ObjectDefinition describes a renderable mesh object.
type ObjectDefinition struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Type          string              `json:"type"` // usually "Mesh"
	Geometry      *GeometryDefinition `json:"geometry,omitempty"`
	Material      *MaterialDefinition `json:"material,omitempty"`
	Position      *Vector3            `json:"position,omitempty"`
	Rotation      *Vector3            `json:"rotation,omitempty"`
	Scale         *Vector3            `json:"scale,omitempty"`
	CastShadow    bool                `json:"castShadow"`
	ReceiveShadow bool                `json:"receiveShadow"`
	Visible       bool                `json:"visible"`
	Interactive   bool                `json:"interactive"`
	UserData      map[string]any      `json:"userData,omitempty"`
}

// ModelDefinition describes an external 3D model reference.
type ModelDefinition struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	URL              string         `json:"url"`
	Format           string         `json:"format"` // gltf, glb, fbx, obj
	Position         Vector3        `json:"position"`
	Rotation         Vector3        `json:"rotation"`
	Scale            Vector3        `json:"scale"`
	CastShadow       bool           `json:"castShadow"`
	ReceiveShadow    bool           `json:"receiveShadow"`
	Animations       []string       `json:"animations,omitempty"`
	DefaultAnimation string         `json:"defaultAnimation,omitempty"`
	Interactive      bool           `json:"interactive"`
	UserData         map[string]any `json:"userData,omitempty"`
}

// PostProcessingEffect describes a render post-processing pass.
type PostProcessingEffect struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"` // Bloom, SSAO, ...
	Enabled    bool           `json:"enabled"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// SceneDefinition is the aggregate root describing one renderable scene.
// Exactly one camera in Cameras must be marked active.
type SceneDefinition struct {
	SceneID          string                 `json:"scene_id"`
	PlayerID         string                 `json:"player_id"`
	LocationID       string                 `json:"location_id"`
	Cameras          []CameraDefinition     `json:"cameras"`
	Lights           []LightDefinition      `json:"lights"`
	Objects          []ObjectDefinition     `json:"objects,omitempty"`
	Models           []ModelDefinition      `json:"models,omitempty"`
	Environment      *EnvironmentDefinition `json:"environment,omitempty"`
	RendererSettings map[string]any         `json:"renderer_settings"`
	PostProcessing   []PostProcessingEffect `json:"post_processing,omitempty"`
}

// ActiveCamera returns the camera marked active, or nil if none is.
func (s *SceneDefinition) ActiveCamera() *CameraDefinition {
	for i := range s.Cameras {
		if s.Cameras[i].Active {
			return &s.Cameras[i]
		}
	}
	return nil
}

// SetActiveCamera appends cam to the camera list, marks it active, and
// clears the active flag on every other camera.
func (s *SceneDefinition) SetActiveCamera(cam CameraDefinition) {
	for i := range s.Cameras {
		s.Cameras[i].Active = false
	}
	cam.Active = true
	s.Cameras = append(s.Cameras, cam)
}
