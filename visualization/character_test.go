package visualization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmanhype/RealmForge/types"
)

func TestBuildCharacterModel_Naming(t *testing.T) {
	t.Parallel()

	req := &types.CharacterRequest{CharacterID: "goblin_7", CharacterType: "monster"}
	req.Normalize()
	model := BuildCharacterModel(req)

	assert.Equal(t, "character_goblin_7", model.ID)
	assert.Equal(t, "goblin_7_model", model.Name)
	assert.Equal(t, "goblin_7", model.CharacterID)
	assert.Equal(t, "monster", model.CharacterType)
}

func TestBuildCharacterModel_HeightScaling(t *testing.T) {
	t.Parallel()

	short := &types.CharacterRequest{CharacterID: "a", CharacterType: "npc", Height: 0.9}
	short.Normalize()
	tall := &types.CharacterRequest{CharacterID: "b", CharacterType: "npc", Height: 1.8}
	tall.Normalize()

	shortModel := BuildCharacterModel(short)
	tallModel := BuildCharacterModel(tall)

	shortHead := shortModel.Parts[0]
	tallHead := tallModel.Parts[0]
	require.Equal(t, "head", shortHead.ID)
	assert.InDelta(t, tallHead.Position.Y/2, shortHead.Position.Y, 1e-9)
	assert.InDelta(t, tallHead.Geometry.Parameters[0]/2, shortHead.Geometry.Parameters[0], 1e-9)

	require.NotNil(t, shortModel.Collision)
	assert.Equal(t, 0.9, shortModel.Collision.Height)
}

func TestBuildCharacterModel_BuildAffectsTorso(t *testing.T) {
	t.Parallel()

	torsoWidth := func(build string) float64 {
		req := &types.CharacterRequest{CharacterID: "x", CharacterType: "npc", Build: build}
		req.Normalize()
		model := BuildCharacterModel(req)
		for _, part := range model.Parts {
			if part.ID == "torso" {
				return part.Geometry.Parameters[0]
			}
		}
		t.Fatalf("no torso part for build %q", build)
		return 0
	}

	assert.Less(t, torsoWidth("slim"), torsoWidth("average"))
	assert.Less(t, torsoWidth("average"), torsoWidth("heavy"))
}

func TestBuildCharacterModel_LegsMirror(t *testing.T) {
	t.Parallel()

	req := &types.CharacterRequest{CharacterID: "x", CharacterType: "npc"}
	req.Normalize()
	model := BuildCharacterModel(req)

	var left, right *types.ObjectDefinition
	for i := range model.Parts {
		switch model.Parts[i].ID {
		case "left_leg":
			left = &model.Parts[i]
		case "right_leg":
			right = &model.Parts[i]
		}
	}
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, -right.Position.X, left.Position.X)
	assert.Equal(t, left.Position.Y, right.Position.Y)
}
