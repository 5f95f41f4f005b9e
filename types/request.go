package types

import "net/http"

// SceneRequest asks for a new scene for a player at a location.
type SceneRequest struct {
	PlayerID         string         `json:"player_id"`
	LocationID       string         `json:"location_id"`
	QualityLevel     string         `json:"quality_level,omitempty"`
	IncludeAssets    bool           `json:"include_assets,omitempty"`
	RendererSettings map[string]any `json:"renderer_settings,omitempty"`
}

// Normalize fills in defaults for optional fields.
func (r *SceneRequest) Normalize() {
	if r.QualityLevel == "" {
		r.QualityLevel = QualityMedium
	}
	if r.RendererSettings == nil {
		r.RendererSettings = map[string]any{}
	}
}

// Validate checks required fields.
func (r *SceneRequest) Validate() error {
	if r.PlayerID == "" {
		return NewError(ErrInvalidRequest, "player_id is required").WithHTTPStatus(http.StatusBadRequest)
	}
	if r.LocationID == "" {
		return NewError(ErrInvalidRequest, "location_id is required").WithHTTPStatus(http.StatusBadRequest)
	}
	return nil
}

// CharacterRequest asks for a character model.
type CharacterRequest struct {
	CharacterID       string         `json:"character_id"`
	CharacterType     string         `json:"character_type"`
	CharacterClass    string         `json:"character_class,omitempty"`
	Description       string         `json:"description"`
	Height            float64        `json:"height,omitempty"`
	Build             string         `json:"build,omitempty"`
	QualityLevel      string         `json:"quality_level,omitempty"`
	IncludeAnimations *bool          `json:"include_animations,omitempty"`
	CustomSettings    map[string]any `json:"custom_settings,omitempty"`
}

// Normalize fills in defaults for optional fields.
func (r *CharacterRequest) Normalize() {
	if r.QualityLevel == "" {
		r.QualityLevel = QualityMedium
	}
	if r.Height == 0 {
		r.Height = 1.8
	}
	if r.Build == "" {
		r.Build = "average"
	}
}

// WantAnimations reports whether animation clips should be attached.
// Unset defaults to true.
func (r *CharacterRequest) WantAnimations() bool {
	return r.IncludeAnimations == nil || *r.IncludeAnimations
}

// Validate checks required fields.
func (r *CharacterRequest) Validate() error {
	if r.CharacterID == "" {
		return NewError(ErrInvalidRequest, "character_id is required").WithHTTPStatus(http.StatusBadRequest)
	}
	if r.CharacterType == "" {
		return NewError(ErrInvalidRequest, "character_type is required").WithHTTPStatus(http.StatusBadRequest)
	}
	return nil
}

// SceneTemplateRequest asks for a scene built from a named template.
type SceneTemplateRequest struct {
	TemplateType       string         `json:"template_type"`
	TemplateParameters map[string]any `json:"template_parameters,omitempty"`
	QualityLevel       string         `json:"quality_level,omitempty"`
}

// Normalize fills in defaults for optional fields.
func (r *SceneTemplateRequest) Normalize() {
	if r.QualityLevel == "" {
		r.QualityLevel = QualityMedium
	}
	if r.TemplateParameters == nil {
		r.TemplateParameters = map[string]any{}
	}
}

// Validate checks required fields.
func (r *SceneTemplateRequest) Validate() error {
	if r.TemplateType == "" {
		return NewError(ErrInvalidRequest, "template_type is required").WithHTTPStatus(http.StatusBadRequest)
	}
	return nil
}

// SceneUpdateRequest carries partial updates for an active scene. Keys name
// top-level scene sections (environment, renderer_settings, lights, ...).
type SceneUpdateRequest struct {
	Updates map[string]any `json:"updates"`
}

// Validate checks required fields.
func (r *SceneUpdateRequest) Validate() error {
	if len(r.Updates) == 0 {
		return NewError(ErrInvalidRequest, "updates must not be empty").WithHTTPStatus(http.StatusBadRequest)
	}
	return nil
}
