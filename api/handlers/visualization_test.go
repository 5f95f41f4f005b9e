package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/config"
	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization"
	"github.com/jmanhype/RealmForge/visualization/template"
)

// =============================================================================
// 🧪 测试辅助函数
// =============================================================================

func newTestVisualizationHandler(t *testing.T) (*VisualizationHandler, *visualization.Service) {
	t.Helper()
	cfg := config.DefaultVisualizationConfig()
	cfg.TemplatePath = t.TempDir()
	store := template.NewStore(template.NewFileStore(cfg.TemplatePath, nil))
	svc := visualization.NewService(cfg, store)
	return NewVisualizationHandler(svc, zap.NewNop()), svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	handler(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// =============================================================================
// 🧪 VisualizationHandler 测试
// =============================================================================

func TestVisualizationHandler_GenerateScene(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := postJSON(t, handler.HandleGenerateScene, "/v1/scenes", types.SceneRequest{
		PlayerID:   "p1",
		LocationID: "forest",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p1", data["player_id"])
	assert.NotEmpty(t, data["scene_id"])

	sceneDef, ok := data["scene_definition"].(map[string]any)
	require.True(t, ok)
	cameras, ok := sceneDef["cameras"].([]any)
	require.True(t, ok)
	require.Len(t, cameras, 1)
	lights, ok := sceneDef["lights"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(lights), 2)
}

func TestVisualizationHandler_GenerateScene_InvalidQuality(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := postJSON(t, handler.HandleGenerateScene, "/v1/scenes", types.SceneRequest{
		PlayerID:     "p1",
		LocationID:   "forest",
		QualityLevel: "potato",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(types.ErrInvalidQualityLevel), resp.Error.Code)
}

func TestVisualizationHandler_GenerateScene_BadContentType(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/scenes", bytes.NewBufferString(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	handler.HandleGenerateScene(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisualizationHandler_GenerateCharacter(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := postJSON(t, handler.HandleGenerateCharacter, "/v1/characters", types.CharacterRequest{
		CharacterID:   "hero",
		CharacterType: "warrior",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	model, ok := data["model_definition"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "character_hero", model["id"])
	assert.Equal(t, "hero_model", model["name"])
}

func TestVisualizationHandler_SceneTemplate_NotFound(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := postJSON(t, handler.HandleSceneTemplate, "/v1/templates", types.SceneTemplateRequest{
		TemplateType: "missing",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(types.ErrTemplateNotFound), resp.Error.Code)
}

func TestVisualizationHandler_UpdateScene(t *testing.T) {
	handler, svc := newTestVisualizationHandler(t)

	gen := postJSON(t, handler.HandleGenerateScene, "/v1/scenes", types.SceneRequest{
		PlayerID:   "p1",
		LocationID: "forest",
	})
	require.Equal(t, http.StatusOK, gen.Code)
	data := decodeResponse(t, gen).Data.(map[string]any)
	sceneID := data["scene_id"].(string)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /v1/scenes/{id}", handler.HandleUpdateScene)

	raw, err := json.Marshal(types.SceneUpdateRequest{
		Updates: map[string]any{"location_id": "cave"},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/v1/scenes/"+sceneID, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	scene, err := svc.GetScene(sceneID)
	require.NoError(t, err)
	assert.Equal(t, "cave", scene.LocationID)
}

func TestVisualizationHandler_UpdateScene_NotFound(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /v1/scenes/{id}", handler.HandleUpdateScene)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/v1/scenes/scene_missing",
		bytes.NewBufferString(`{"updates":{"location_id":"cave"}}`))
	r.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVisualizationHandler_QualityPresets(t *testing.T) {
	handler, _ := newTestVisualizationHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/quality-presets", nil)
	handler.HandleQualityPresets(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	for _, level := range []string{"low", "medium", "high", "ultra"} {
		assert.Contains(t, data, level)
	}

	ultra, ok := data["ultra"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, ultra["ray_tracing"])
	assert.Equal(t, float64(1000), ultra["draw_distance"])
}
