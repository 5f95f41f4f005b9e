package types

// AnimationDefinition describes a named character animation clip.
type AnimationDefinition struct {
	Name     string  `json:"name"`
	URL      string  `json:"url,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Loop     bool    `json:"loop"`
}

// CollisionDefinition describes the collision volume attached to a
// character model.
type CollisionDefinition struct {
	Type   string  `json:"type"` // capsule, box, sphere
	Radius float64 `json:"radius,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// CharacterModelDefinition is the aggregate root describing one character
// model: the model reference itself, its placeholder body parts, materials,
// and animation clips.
type CharacterModelDefinition struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	CharacterID   string                `json:"character_id"`
	CharacterType string                `json:"character_type"`
	Model         ModelDefinition       `json:"model"`
	Parts         []ObjectDefinition    `json:"parts,omitempty"`
	Materials     []MaterialDefinition  `json:"materials,omitempty"`
	Animations    []AnimationDefinition `json:"animations,omitempty"`
	Collision     *CollisionDefinition  `json:"collision,omitempty"`
}
