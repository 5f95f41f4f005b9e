package handlers

import (
	"net/http"

	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization"
	"go.uber.org/zap"
)

// =============================================================================
// 🎨 可视化接口 Handler
// =============================================================================

// VisualizationHandler 可视化接口处理器
type VisualizationHandler struct {
	service *visualization.Service
	logger  *zap.Logger
}

// NewVisualizationHandler 创建可视化处理器
func NewVisualizationHandler(service *visualization.Service, logger *zap.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGenerateScene 处理场景生成请求
// @Summary 生成场景
// @Description 为玩家在指定位置生成 Three.js 场景
// @Tags 可视化
// @Accept json
// @Produce json
// @Param request body types.SceneRequest true "场景请求"
// @Success 200 {object} types.SceneResponse "场景响应"
// @Failure 400 {object} Response "无效请求"
// @Failure 500 {object} Response "内部错误"
// @Security ApiKeyAuth
// @Router /v1/scenes [post]
func (h *VisualizationHandler) HandleGenerateScene(w http.ResponseWriter, r *http.Request) {
	// 验证 Content-Type
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	// 解码请求
	var req types.SceneRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	// 调用服务
	resp, err := h.service.GenerateScene(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteSuccess(w, resp)
}

// HandleGenerateCharacter 处理角色模型生成请求
// @Summary 生成角色模型
// @Description 生成角色的占位几何体模型与动画代码
// @Tags 可视化
// @Accept json
// @Produce json
// @Param request body types.CharacterRequest true "角色请求"
// @Success 200 {object} types.CharacterResponse "角色响应"
// @Failure 400 {object} Response "无效请求"
// @Failure 500 {object} Response "内部错误"
// @Security ApiKeyAuth
// @Router /v1/characters [post]
func (h *VisualizationHandler) HandleGenerateCharacter(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req types.CharacterRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	resp, err := h.service.GenerateCharacterModel(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteSuccess(w, resp)
}

// HandleSceneTemplate 处理场景模板请求
// @Summary 获取场景模板
// @Description 解析模板继承链并应用定制参数,返回完整场景
// @Tags 可视化
// @Accept json
// @Produce json
// @Param request body types.SceneTemplateRequest true "模板请求"
// @Success 200 {object} types.SceneTemplateResponse "模板响应"
// @Failure 400 {object} Response "无效请求"
// @Failure 404 {object} Response "模板不存在"
// @Failure 500 {object} Response "内部错误"
// @Security ApiKeyAuth
// @Router /v1/templates [post]
func (h *VisualizationHandler) HandleSceneTemplate(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req types.SceneTemplateRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	resp, err := h.service.GetSceneTemplate(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteSuccess(w, resp)
}

// HandleGetScene 处理场景查询请求
// @Summary 查询场景
// @Description 按 ID 返回活跃场景
// @Tags 可视化
// @Produce json
// @Param id path string true "场景 ID"
// @Success 200 {object} types.SceneDefinition "场景定义"
// @Failure 404 {object} Response "场景不存在"
// @Security ApiKeyAuth
// @Router /v1/scenes/{id} [get]
func (h *VisualizationHandler) HandleGetScene(w http.ResponseWriter, r *http.Request) {
	sceneID := r.PathValue("id")
	if sceneID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "scene id is required", h.logger)
		return
	}

	scene, err := h.service.GetScene(sceneID)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteSuccess(w, scene)
}

// HandleUpdateScene 处理场景更新请求
// @Summary 更新场景
// @Description 对活跃场景应用部分更新并推送给订阅者
// @Tags 可视化
// @Accept json
// @Produce json
// @Param id path string true "场景 ID"
// @Param request body types.SceneUpdateRequest true "更新请求"
// @Success 200 {object} types.SceneDefinition "更新后的场景"
// @Failure 400 {object} Response "无效请求"
// @Failure 404 {object} Response "场景不存在"
// @Security ApiKeyAuth
// @Router /v1/scenes/{id} [put]
func (h *VisualizationHandler) HandleUpdateScene(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	sceneID := r.PathValue("id")
	if sceneID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "scene id is required", h.logger)
		return
	}

	var req types.SceneUpdateRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	scene, err := h.service.UpdateScene(r.Context(), sceneID, &req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteSuccess(w, scene)
}

// HandleQualityPresets 处理质量预设查询请求
// @Summary 质量预设列表
// @Description 返回所有可用的渲染质量预设
// @Tags 可视化
// @Produce json
// @Success 200 {object} map[string]types.QualityPreset "质量预设"
// @Router /v1/quality-presets [get]
func (h *VisualizationHandler) HandleQualityPresets(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.service.QualityPresets())
}
