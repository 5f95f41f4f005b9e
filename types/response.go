package types

import "time"

// ResponseMeta carries generation metadata common to all responses.
type ResponseMeta struct {
	QualityLevel string    `json:"quality_level"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// SceneResponse is the result of a scene generation.
type SceneResponse struct {
	RequestID       string            `json:"request_id"`
	SceneID         string            `json:"scene_id"`
	PlayerID        string            `json:"player_id"`
	LocationID      string            `json:"location_id"`
	SceneDefinition *SceneDefinition  `json:"scene_definition"`
	GeneratedCode   string            `json:"generated_code,omitempty"`
	AssetURLs       map[string]string `json:"asset_urls"`
	Meta            ResponseMeta      `json:"metadata"`
}

// CharacterResponse is the result of a character model generation.
type CharacterResponse struct {
	RequestID       string                    `json:"request_id"`
	CharacterID     string                    `json:"character_id"`
	ModelDefinition *CharacterModelDefinition `json:"model_definition"`
	GeneratedCode   string                    `json:"generated_code,omitempty"`
	AssetURLs       map[string]string         `json:"asset_urls"`
	Meta            ResponseMeta              `json:"metadata"`
}

// SceneTemplateResponse is the result of a template lookup.
type SceneTemplateResponse struct {
	TemplateType        string                       `json:"template_type"`
	TemplateParameters  map[string]any               `json:"template_parameters"`
	SceneDefinition     *SceneDefinition             `json:"scene_definition"`
	JSCode              string                       `json:"js_code"`
	Assets              map[string]string            `json:"assets"`
	UsageInstructions   string                       `json:"usage_instructions"`
	CustomizationPoints map[string]map[string]string `json:"customization_points"`
	Meta                ResponseMeta                 `json:"metadata"`
}

// SceneUpdate is one scene change event pushed to stream subscribers.
type SceneUpdate struct {
	SceneID   string           `json:"scene_id"`
	Scene     *SceneDefinition `json:"scene"`
	UpdatedAt time.Time        `json:"updated_at"`
}
