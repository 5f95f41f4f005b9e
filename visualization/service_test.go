package visualization

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmanhype/RealmForge/assets"
	"github.com/jmanhype/RealmForge/config"
	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization/template"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	cfg := config.DefaultVisualizationConfig()
	cfg.TemplatePath = t.TempDir()
	store := template.NewStore(template.NewFileStore(cfg.TemplatePath, nil))
	return NewService(cfg, store, opts...)
}

func writeServiceTemplate(t *testing.T, svc *Service, name, body string) {
	t.Helper()
	dir := svc.cfg.TemplatePath
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644))
}

func TestGenerateScene_Defaults(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp, err := svc.GenerateScene(context.Background(), &types.SceneRequest{
		PlayerID:   "p1",
		LocationID: "forest",
	})
	require.NoError(t, err)

	scene := resp.SceneDefinition
	require.NotNil(t, scene)
	assert.Equal(t, "p1", resp.PlayerID)
	assert.Equal(t, "forest", resp.LocationID)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "medium", resp.Meta.QualityLevel)

	// Camera: (0, 5, 10) looking at the origin, 75 degree FOV.
	cam := scene.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, types.Vector3{X: 0, Y: 5, Z: 10}, cam.Position)
	assert.Equal(t, types.Vector3{}, cam.LookAt)
	assert.Equal(t, float64(75), cam.FOV)
	assert.Equal(t, 0.1, cam.Near)
	assert.Equal(t, float64(1000), cam.Far)

	active := 0
	for _, c := range scene.Cameras {
		if c.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)

	// At least the ambient fill and the shadow-casting key light.
	require.GreaterOrEqual(t, len(scene.Lights), 2)
	byType := map[string]types.LightDefinition{}
	for _, l := range scene.Lights {
		byType[l.Type] = l
	}
	ambient, ok := byType["AmbientLight"]
	require.True(t, ok)
	assert.Equal(t, 0.5, ambient.Intensity)
	directional, ok := byType["DirectionalLight"]
	require.True(t, ok)
	assert.Equal(t, 1.0, directional.Intensity)
	require.NotNil(t, directional.Position)
	assert.Equal(t, types.Vector3{X: 5, Y: 10, Z: 5}, *directional.Position)
	assert.True(t, directional.CastShadow)

	// Sky-blue background with matching exponential fog.
	require.NotNil(t, scene.Environment)
	assert.Equal(t, "#87ceeb", scene.Environment.BackgroundColor)
	require.NotNil(t, scene.Environment.Fog)
	assert.Equal(t, "exponential", scene.Environment.Fog.Type)
	assert.Equal(t, 0.02, scene.Environment.Fog.Density)

	// Renderer settings come from the medium preset.
	assert.Equal(t, true, scene.RendererSettings["shadows"])
	assert.Equal(t, 200, scene.RendererSettings["draw_distance"])

	assert.Contains(t, resp.GeneratedCode, "import * as THREE from 'three';")
}

func TestGenerateScene_RendererOverrides(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp, err := svc.GenerateScene(context.Background(), &types.SceneRequest{
		PlayerID:     "p1",
		LocationID:   "forest",
		QualityLevel: "ultra",
		RendererSettings: map[string]any{
			"draw_distance": 50,
			"motion_blur":   true,
		},
	})
	require.NoError(t, err)

	settings := resp.SceneDefinition.RendererSettings
	// The preset wins on conflicting keys so "ultra" always means the
	// same renderer configuration.
	assert.Equal(t, 1000, settings["draw_distance"])
	assert.Equal(t, true, settings["ray_tracing"])
	// Keys the preset does not define pass through from the request.
	assert.Equal(t, true, settings["motion_blur"])
	// Ultra enables bloom and SSAO passes.
	assert.Len(t, resp.SceneDefinition.PostProcessing, 2)
}

func TestGenerateScene_InvalidQuality(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.GenerateScene(context.Background(), &types.SceneRequest{
		PlayerID:     "p1",
		LocationID:   "forest",
		QualityLevel: "potato",
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrInvalidQualityLevel, types.GetErrorCode(err))
}

func TestGenerateScene_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.GenerateScene(context.Background(), &types.SceneRequest{LocationID: "forest"})
	require.Error(t, err)
	assert.Equal(t, types.ErrInvalidRequest, types.GetErrorCode(err))
}

func TestGenerateScene_RegistersScene(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp, err := svc.GenerateScene(context.Background(), &types.SceneRequest{
		PlayerID:   "p1",
		LocationID: "forest",
	})
	require.NoError(t, err)

	got, err := svc.GetScene(resp.SceneID)
	require.NoError(t, err)
	assert.Equal(t, resp.SceneID, got.SceneID)
}

func TestGenerateCharacterModel(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp, err := svc.GenerateCharacterModel(context.Background(), &types.CharacterRequest{
		CharacterID:   "hero",
		CharacterType: "warrior",
	})
	require.NoError(t, err)

	model := resp.ModelDefinition
	require.NotNil(t, model)
	assert.Equal(t, "character_hero", model.ID)
	assert.Equal(t, "hero_model", model.Name)

	partTypes := map[string]string{}
	for _, part := range model.Parts {
		require.NotNil(t, part.Geometry, "part %s needs inline geometry", part.ID)
		partTypes[part.ID] = part.Geometry.Type
	}
	assert.Equal(t, "SphereGeometry", partTypes["head"])
	assert.Equal(t, "BoxGeometry", partTypes["torso"])
	assert.Equal(t, "CylinderGeometry", partTypes["left_leg"])
	assert.Equal(t, "CylinderGeometry", partTypes["right_leg"])

	// Animations default on, with idle as the resting state.
	assert.Len(t, model.Animations, 3)
	assert.Equal(t, "idle", model.Model.DefaultAnimation)
	assert.Contains(t, resp.GeneratedCode, "gsap.timeline")
}

func TestGenerateCharacterModel_NoAnimations(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	off := false
	resp, err := svc.GenerateCharacterModel(context.Background(), &types.CharacterRequest{
		CharacterID:       "npc1",
		CharacterType:     "villager",
		IncludeAnimations: &off,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.ModelDefinition.Animations)
	assert.NotContains(t, resp.GeneratedCode, "gsap.timeline")
}

func TestGenerateCharacterModel_AssetURLs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, WithAssetResolver(assets.NewStaticResolver("https://cdn.example.com")))
	resp, err := svc.GenerateCharacterModel(context.Background(), &types.CharacterRequest{
		CharacterID:   "hero",
		CharacterType: "warrior",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/model/warrior.glb", resp.AssetURLs["model"])
}

func TestGetSceneTemplate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	writeServiceTemplate(t, svc, "forest", `{
		"name": "forest",
		"environment": {"backgroundColor": "#1a472a"},
		"variables": {"tree_count": 20},
		"usage_instructions": "A forest clearing.",
		"customization_points": {"tree_count": {"type": "int", "description": "number of trees"}}
	}`)

	resp, err := svc.GetSceneTemplate(context.Background(), &types.SceneTemplateRequest{
		TemplateType:       "forest",
		TemplateParameters: map[string]any{"tree_count": 5},
	})
	require.NoError(t, err)

	assert.Equal(t, "forest", resp.TemplateType)
	assert.Equal(t, "A forest clearing.", resp.UsageInstructions)
	assert.Contains(t, resp.CustomizationPoints, "tree_count")
	require.NotNil(t, resp.SceneDefinition)
	// Template environment wins; missing sections fall back to defaults.
	assert.Equal(t, "#1a472a", resp.SceneDefinition.Environment.BackgroundColor)
	require.NotNil(t, resp.SceneDefinition.ActiveCamera())
	assert.GreaterOrEqual(t, len(resp.SceneDefinition.Lights), 2)
	assert.NotEmpty(t, resp.JSCode)
}

func TestGetSceneTemplate_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.GetSceneTemplate(context.Background(), &types.SceneTemplateRequest{
		TemplateType: "missing",
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrTemplateNotFound, types.GetErrorCode(err))
}

func TestGetSceneTemplate_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	writeServiceTemplate(t, svc, "broken", `{not json`)

	_, err := svc.GetSceneTemplate(context.Background(), &types.SceneTemplateRequest{
		TemplateType: "broken",
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrMalformedTemplate, types.GetErrorCode(err))
}

func TestUpdateScene(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp, err := svc.GenerateScene(context.Background(), &types.SceneRequest{
		PlayerID:   "p1",
		LocationID: "forest",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateScene(context.Background(), resp.SceneID, &types.SceneUpdateRequest{
		Updates: map[string]any{
			"environment": map[string]any{"backgroundColor": "#000000"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "#000000", updated.Environment.BackgroundColor)
}

func TestUpdateScene_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.UpdateScene(context.Background(), "scene_missing", &types.SceneUpdateRequest{
		Updates: map[string]any{"location_id": "cave"},
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrSceneNotFound, types.GetErrorCode(err))
}

func TestQualityPresets_Copy(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	presets := svc.QualityPresets()
	require.Contains(t, presets, "ultra")
	presets["ultra"] = types.QualityPreset{}

	fresh := svc.QualityPresets()
	assert.True(t, fresh["ultra"].RayTracing)
}
