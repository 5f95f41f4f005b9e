package visualization

import (
	"fmt"

	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization/animation"
)

// Character part colors per build; a plain palette keeps primitive
// placeholders readable until real models replace them.
const (
	characterSkinColor = "#ffdbac"
	characterBodyColor = "#4169e1"
	characterLegColor  = "#2f4f4f"
)

// BuildCharacterModel assembles a primitive placeholder model for a
// character: a sphere head, box torso and two cylinder legs, scaled to
// the requested height. The model ID is "character_<id>" and the model
// name "<id>_model".
func BuildCharacterModel(req *types.CharacterRequest) *types.CharacterModelDefinition {
	scale := req.Height / 1.8

	head := types.ObjectDefinition{
		ID:   "head",
		Name: "Head",
		Type: "mesh",
		Geometry: &types.GeometryDefinition{
			Type:       "SphereGeometry",
			Parameters: []float64{0.25 * scale, 32, 32},
		},
		Material:   &types.MaterialDefinition{Color: characterSkinColor, Roughness: 0.8},
		Position:   &types.Vector3{Y: 1.6 * scale},
		CastShadow: true,
	}

	torsoWidth := 0.5 * scale
	if req.Build == "heavy" {
		torsoWidth = 0.65 * scale
	} else if req.Build == "slim" {
		torsoWidth = 0.4 * scale
	}
	torso := types.ObjectDefinition{
		ID:   "torso",
		Name: "Torso",
		Type: "mesh",
		Geometry: &types.GeometryDefinition{
			Type:       "BoxGeometry",
			Parameters: []float64{torsoWidth, 0.75 * scale, 0.3 * scale},
		},
		Material:   &types.MaterialDefinition{Color: characterBodyColor, Roughness: 0.9},
		Position:   &types.Vector3{Y: 1.0 * scale},
		CastShadow: true,
	}

	legGeometry := func() *types.GeometryDefinition {
		return &types.GeometryDefinition{
			Type:       "CylinderGeometry",
			Parameters: []float64{0.1 * scale, 0.1 * scale, 0.8 * scale},
		}
	}
	leftLeg := types.ObjectDefinition{
		ID:         "left_leg",
		Name:       "Left Leg",
		Type:       "mesh",
		Geometry:   legGeometry(),
		Material:   &types.MaterialDefinition{Color: characterLegColor, Roughness: 0.9},
		Position:   &types.Vector3{X: -0.15 * scale, Y: 0.4 * scale},
		CastShadow: true,
	}
	rightLeg := leftLeg
	rightLeg.ID = "right_leg"
	rightLeg.Name = "Right Leg"
	rightLeg.Geometry = legGeometry()
	rightLeg.Position = &types.Vector3{X: 0.15 * scale, Y: 0.4 * scale}

	model := &types.CharacterModelDefinition{
		ID:            fmt.Sprintf("character_%s", req.CharacterID),
		Name:          fmt.Sprintf("%s_model", req.CharacterID),
		CharacterID:   req.CharacterID,
		CharacterType: req.CharacterType,
		Model: types.ModelDefinition{
			ID:     fmt.Sprintf("character_%s", req.CharacterID),
			Name:   fmt.Sprintf("%s_model", req.CharacterID),
			Format: "gltf",
			Scale:  types.Vector3{X: 1, Y: 1, Z: 1},
		},
		Parts: []types.ObjectDefinition{head, torso, leftLeg, rightLeg},
		Collision: &types.CollisionDefinition{
			Type:   "capsule",
			Radius: 0.3 * scale,
			Height: req.Height,
		},
	}

	if req.WantAnimations() {
		for _, seq := range animation.StandardCharacterSequences() {
			model.Animations = append(model.Animations, types.AnimationDefinition{
				Name: seq.Name,
				Loop: seq.Loop,
			})
			model.Model.Animations = append(model.Model.Animations, seq.Name)
		}
		model.Model.DefaultAnimation = "idle"
	}
	return model
}
