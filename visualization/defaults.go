package visualization

import (
	"github.com/jmanhype/RealmForge/types"
)

// Baseline scene constants. Every generated scene starts from these and
// template or request data layers on top.
const (
	defaultBackgroundColor = "#87ceeb"
	defaultFogDensity      = 0.02
	defaultLightColor      = "#ffffff"
)

// DefaultCamera returns the standard perspective camera: positioned at
// (0, 5, 10), looking at the origin.
func DefaultCamera() types.CameraDefinition {
	return types.CameraDefinition{
		ID:       "main_camera",
		Name:     "Main Camera",
		Type:     "PerspectiveCamera",
		Position: types.Vector3{X: 0, Y: 5, Z: 10},
		LookAt:   types.Vector3{},
		FOV:      75,
		Near:     0.1,
		Far:      1000,
	}
}

// DefaultLights returns the standard two-light rig: a soft ambient fill
// and a shadow-casting directional key light.
func DefaultLights() []types.LightDefinition {
	return []types.LightDefinition{
		{
			ID:        "ambient_light",
			Name:      "Ambient Light",
			Type:      "AmbientLight",
			Color:     defaultLightColor,
			Intensity: 0.5,
		},
		{
			ID:         "directional_light",
			Name:       "Directional Light",
			Type:       "DirectionalLight",
			Color:      defaultLightColor,
			Intensity:  1.0,
			Position:   &types.Vector3{X: 5, Y: 10, Z: 5},
			CastShadow: true,
		},
	}
}

// DefaultEnvironment returns a sky-blue background with matching
// exponential fog.
func DefaultEnvironment() *types.EnvironmentDefinition {
	return &types.EnvironmentDefinition{
		BackgroundColor: defaultBackgroundColor,
		Fog: &types.FogDefinition{
			Type:    "exponential",
			Color:   defaultBackgroundColor,
			Density: defaultFogDensity,
		},
	}
}

// NewDefaultScene assembles a baseline scene for the given player and
// location: default camera marked active, both default lights and the
// default environment.
func NewDefaultScene(sceneID, playerID, locationID string) *types.SceneDefinition {
	scene := &types.SceneDefinition{
		SceneID:     sceneID,
		PlayerID:    playerID,
		LocationID:  locationID,
		Lights:      DefaultLights(),
		Environment: DefaultEnvironment(),
	}
	scene.SetActiveCamera(DefaultCamera())
	return scene
}

// sceneFromTemplate assembles a scene from a resolved template, filling
// any missing section with the defaults.
func sceneFromTemplate(sceneID string, tpl *types.SceneTemplateDefinition) *types.SceneDefinition {
	scene := &types.SceneDefinition{
		SceneID: sceneID,
	}

	cam := DefaultCamera()
	if tpl.Camera != nil {
		cam = *tpl.Camera
	}
	scene.SetActiveCamera(cam)

	if len(tpl.Lights) > 0 {
		scene.Lights = append([]types.LightDefinition(nil), tpl.Lights...)
	} else {
		scene.Lights = DefaultLights()
	}

	if tpl.Environment != nil {
		env := *tpl.Environment
		scene.Environment = &env
	} else {
		scene.Environment = DefaultEnvironment()
	}

	if len(tpl.Objects) > 0 {
		scene.Objects = append([]types.ObjectDefinition(nil), tpl.Objects...)
	}
	return scene
}
