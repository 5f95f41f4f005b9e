package types

// SceneTemplateDefinition is the on-disk shape of a scene template file.
// A template may extend another via BaseTemplate; sections set on the
// child override the base's, and Variables merge key-wise with the
// child winning.
type SceneTemplateDefinition struct {
	Name                string                       `json:"name"`
	BaseTemplate        string                       `json:"base_template,omitempty"`
	Camera              *CameraDefinition            `json:"camera,omitempty"`
	Lights              []LightDefinition            `json:"lights,omitempty"`
	Objects             []ObjectDefinition           `json:"objects,omitempty"`
	Environment         *EnvironmentDefinition       `json:"environment,omitempty"`
	Animations          []map[string]any             `json:"animations,omitempty"`
	Variables           map[string]any               `json:"variables,omitempty"`
	UsageInstructions   string                       `json:"usage_instructions,omitempty"`
	CustomizationPoints map[string]map[string]string `json:"customization_points,omitempty"`
}

// Clone returns a deep-enough copy for safe per-request customization.
// Slices and maps are copied one level down; element structs are values.
func (t *SceneTemplateDefinition) Clone() *SceneTemplateDefinition {
	c := *t
	if t.Camera != nil {
		cam := *t.Camera
		c.Camera = &cam
	}
	if t.Lights != nil {
		c.Lights = append([]LightDefinition(nil), t.Lights...)
	}
	if t.Objects != nil {
		c.Objects = append([]ObjectDefinition(nil), t.Objects...)
	}
	if t.Environment != nil {
		env := *t.Environment
		c.Environment = &env
	}
	if t.Animations != nil {
		c.Animations = append([]map[string]any(nil), t.Animations...)
	}
	if t.Variables != nil {
		c.Variables = make(map[string]any, len(t.Variables))
		for k, v := range t.Variables {
			c.Variables[k] = v
		}
	}
	if t.CustomizationPoints != nil {
		c.CustomizationPoints = make(map[string]map[string]string, len(t.CustomizationPoints))
		for k, v := range t.CustomizationPoints {
			inner := make(map[string]string, len(v))
			for ik, iv := range v {
				inner[ik] = iv
			}
			c.CustomizationPoints[k] = inner
		}
	}
	return &c
}

// Merge combines a base template with an override template. Sections set
// on the override win wholesale; Variables merge key-wise with the
// override winning.
func (t *SceneTemplateDefinition) Merge(base *SceneTemplateDefinition) *SceneTemplateDefinition {
	merged := t.Clone()
	if merged.Camera == nil {
		merged.Camera = base.Camera
	}
	if merged.Lights == nil {
		merged.Lights = base.Lights
	}
	if merged.Objects == nil {
		merged.Objects = base.Objects
	}
	if merged.Environment == nil {
		merged.Environment = base.Environment
	}
	if merged.Animations == nil {
		merged.Animations = base.Animations
	}
	if merged.UsageInstructions == "" {
		merged.UsageInstructions = base.UsageInstructions
	}
	if merged.CustomizationPoints == nil {
		merged.CustomizationPoints = base.CustomizationPoints
	}
	vars := make(map[string]any, len(base.Variables)+len(t.Variables))
	for k, v := range base.Variables {
		vars[k] = v
	}
	for k, v := range t.Variables {
		vars[k] = v
	}
	if len(vars) > 0 {
		merged.Variables = vars
	}
	return merged
}
