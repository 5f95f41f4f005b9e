package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmanhype/RealmForge/types"
)

func testScene() *types.SceneDefinition {
	scene := &types.SceneDefinition{
		SceneID:    "scene_test",
		PlayerID:   "p1",
		LocationID: "forest",
		Lights: []types.LightDefinition{
			{ID: "ambient_light", Type: "AmbientLight", Color: "#ffffff", Intensity: 0.5},
			{
				ID: "sun", Type: "DirectionalLight", Color: "#ffffff", Intensity: 1.0,
				Position: &types.Vector3{X: 5, Y: 10, Z: 5}, CastShadow: true,
			},
		},
		Objects: []types.ObjectDefinition{
			{
				ID:   "ground",
				Type: "mesh",
				Geometry: &types.GeometryDefinition{
					Type:       "plane",
					Parameters: []float64{100, 100},
				},
				Material:      &types.MaterialDefinition{Color: "#228b22", Roughness: 0.9},
				ReceiveShadow: true,
			},
		},
		Environment: &types.EnvironmentDefinition{
			BackgroundColor: "#87ceeb",
			Fog:             &types.FogDefinition{Type: "exponential", Color: "#87ceeb", Density: 0.02},
		},
	}
	scene.SetActiveCamera(types.CameraDefinition{
		ID: "main_camera", Type: "PerspectiveCamera",
		Position: types.Vector3{Y: 5, Z: 10},
		FOV:      75, Near: 0.1, Far: 1000,
	})
	return scene
}

func TestGenerateSceneCode_Basics(t *testing.T) {
	t.Parallel()

	code := NewGenerator().GenerateSceneCode(testScene())
	require.NotEmpty(t, code)

	assert.Contains(t, code, "import * as THREE from 'three';")
	assert.Contains(t, code, "OrbitControls")
	assert.Contains(t, code, "scene.background = new THREE.Color(0x87ceeb);")
	assert.Contains(t, code, "scene.fog = new THREE.FogExp2(0x87ceeb, 0.02);")
	assert.Contains(t, code, "new THREE.PerspectiveCamera(75, window.innerWidth / window.innerHeight, 0.1, 1000);")
	assert.Contains(t, code, "camera.position.set(0, 5, 10);")
	assert.Contains(t, code, "camera.lookAt(0, 0, 0);")
	assert.Contains(t, code, "requestAnimationFrame(animate)")
	assert.Contains(t, code, "window.addEventListener('resize'")
}

func TestGenerateSceneCode_Lights(t *testing.T) {
	t.Parallel()

	code := NewGenerator().GenerateSceneCode(testScene())

	assert.Contains(t, code, "const ambient_light = new THREE.AmbientLight(0xffffff, 0.5);")
	assert.Contains(t, code, "const sun = new THREE.DirectionalLight(0xffffff, 1);")
	assert.Contains(t, code, "sun.position.set(5, 10, 5);")
	assert.Contains(t, code, "sun.castShadow = true;")
	assert.Contains(t, code, "sun.shadow.mapSize.width = 2048;")
	// Shadow-casting lights force the shadow map on.
	assert.Contains(t, code, "renderer.shadowMap.enabled = true;")
}

func TestGenerateSceneCode_LegacyLightTags(t *testing.T) {
	t.Parallel()

	scene := testScene()
	scene.Lights = []types.LightDefinition{
		{ID: "fill", Type: "ambient", Color: "#ffffff", Intensity: 0.4},
		{
			ID: "key", Type: "directional", Color: "#ffffff", Intensity: 1.0,
			Position: &types.Vector3{X: 5, Y: 10, Z: 5}, CastShadow: true,
		},
	}

	code := NewGenerator().GenerateSceneCode(scene)

	assert.Contains(t, code, "const fill = new THREE.AmbientLight(0xffffff, 0.4);")
	assert.Contains(t, code, "const key = new THREE.DirectionalLight(0xffffff, 1);")
	assert.Contains(t, code, "key.castShadow = true;")
}

func TestGenerateSceneCode_UnknownLightTypeSkipped(t *testing.T) {
	t.Parallel()

	scene := testScene()
	scene.Lights = append(scene.Lights, types.LightDefinition{
		ID: "mystery", Type: "VolumetricLight", Color: "#ff0000", Intensity: 2,
	})

	code := NewGenerator().GenerateSceneCode(scene)

	// An unrecognized light must not be rendered as some other class.
	assert.NotContains(t, code, "mystery")
	assert.Equal(t, 1, strings.Count(code, "new THREE.AmbientLight"))
}

func TestGenerateSceneCode_InlineObjects(t *testing.T) {
	t.Parallel()

	code := NewGenerator().GenerateSceneCode(testScene())

	assert.Contains(t, code, "const ground_geometry = new THREE.PlaneGeometry(100, 100);")
	assert.Contains(t, code, "color: 0x228b22,")
	assert.Contains(t, code, "roughness: 0.9,")
	assert.Contains(t, code, "const ground = new THREE.Mesh(ground_geometry, ground_material);")
	assert.Contains(t, code, "ground.receiveShadow = true;")
	assert.NotContains(t, code, "GLTFLoader")
}

func TestGenerateSceneCode_ModelObjects(t *testing.T) {
	t.Parallel()

	scene := testScene()
	scene.Objects = append(scene.Objects, types.ObjectDefinition{
		ID:       "statue",
		Type:     "model",
		UserData: map[string]any{"url": "/assets/model/statue.glb"},
		Position: &types.Vector3{X: 2},
	})

	code := NewGenerator().GenerateSceneCode(scene)

	assert.Contains(t, code, "import { GLTFLoader } from 'three/addons/loaders/GLTFLoader.js';")
	assert.Contains(t, code, "loader_statue.load('/assets/model/statue.glb'")
	assert.Contains(t, code, "statue.position.set(2, 0, 0);")
}

func TestGenerateSceneCode_PostProcessing(t *testing.T) {
	t.Parallel()

	scene := testScene()
	scene.PostProcessing = []types.PostProcessingEffect{
		{ID: "bloom", Type: "bloom", Enabled: true, Parameters: map[string]any{"intensity": 1.5}},
		{ID: "ssao", Type: "ssao", Enabled: true},
		{ID: "off", Type: "bloom", Enabled: false},
	}

	code := NewGenerator().GenerateSceneCode(scene)

	assert.Contains(t, code, "const composer = new EffectComposer(renderer);")
	assert.Contains(t, code, "1.5, 0.85, 0.4")
	assert.Contains(t, code, "ssaoPass.kernelRadius = 16;")
	assert.Contains(t, code, "composer.render();")
	assert.NotContains(t, code, "renderer.render(scene, camera);")
	// Disabled effects add exactly one bloom pass.
	assert.Equal(t, 1, strings.Count(code, "new UnrealBloomPass"))
}

func TestGenerateCharacterCode(t *testing.T) {
	t.Parallel()

	model := &types.CharacterModelDefinition{
		ID:   "character_hero",
		Name: "hero_model",
		Parts: []types.ObjectDefinition{
			{
				ID:       "head",
				Geometry: &types.GeometryDefinition{Type: "sphere", Parameters: []float64{0.25, 32, 32}},
				Material: &types.MaterialDefinition{Color: "#ffdbac"},
				Position: &types.Vector3{Y: 1.6},
			},
		},
	}

	code := NewGenerator().GenerateCharacterCode(model)

	assert.Contains(t, code, "const character_hero = new THREE.Group();")
	assert.Contains(t, code, "character_hero.name = 'hero_model';")
	assert.Contains(t, code, "new THREE.SphereGeometry(0.25, 32, 32);")
	assert.Contains(t, code, "character_hero.add(head);")
	assert.Contains(t, code, "export { character_hero };")
	assert.NotContains(t, code, "GLTFLoader")
}

func TestJSColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x87ceeb", jsColor("#87ceeb"))
	assert.Equal(t, "0x000000", jsColor("#000000"))
	assert.Equal(t, "0xffffff", jsColor("not-a-color"))
	assert.Equal(t, "0xffffff", jsColor(""))
}

func TestJSIdent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "obj_1", jsIdent("obj-1"))
	assert.Equal(t, "_9lives", jsIdent("9lives"))
	assert.Equal(t, "obj", jsIdent(""))
}

func TestGenerateSceneCode_NilScene(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewGenerator().GenerateSceneCode(nil))
	assert.Empty(t, NewGenerator().GenerateCharacterCode(nil))
}
