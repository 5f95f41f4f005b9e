package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/internal/metrics"
	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization"
)

// =============================================================================
// 📡 场景流 Handler
// =============================================================================

// StreamHandler 场景更新 WebSocket 处理器
type StreamHandler struct {
	service *visualization.Service
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewStreamHandler 创建场景流处理器,metrics 可为 nil
func NewStreamHandler(service *visualization.Service, logger *zap.Logger, collector *metrics.Collector) *StreamHandler {
	return &StreamHandler{
		service: service,
		logger:  logger,
		metrics: collector,
	}
}

// HandleSceneStream 处理场景更新订阅
// @Summary 订阅场景更新
// @Description 通过 WebSocket 推送场景的每次更新
// @Tags 可视化
// @Param id path string true "场景 ID"
// @Success 101 {string} string "协议升级"
// @Failure 404 {object} Response "场景不存在"
// @Router /v1/scenes/{id}/stream [get]
func (h *StreamHandler) HandleSceneStream(w http.ResponseWriter, r *http.Request) {
	sceneID := r.PathValue("id")
	if sceneID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "scene id is required", h.logger)
		return
	}

	// 升级前确认场景存在
	if _, err := h.service.GetScene(sceneID); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			zap.String("scene_id", sceneID),
			zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	if h.metrics != nil {
		h.metrics.StreamConnected()
		defer h.metrics.StreamDisconnected()
	}

	updates, cancel := h.service.Registry().Subscribe(sceneID)
	defer cancel()

	h.logger.Info("Scene stream opened", zap.String("scene_id", sceneID))

	// 订阅者不发送数据,CloseRead 在客户端断开时取消 ctx
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Scene stream closed", zap.String("scene_id", sceneID))
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case update, ok := <-updates:
			if !ok {
				// 场景被移除
				conn.Close(websocket.StatusGoingAway, "scene removed")
				return
			}
			if err := wsjson.Write(ctx, conn, update); err != nil {
				h.logger.Warn("Failed to push scene update",
					zap.String("scene_id", sceneID),
					zap.Error(err))
				return
			}
		}
	}
}
