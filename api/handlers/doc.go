// Copyright (c) RealmForge Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 RealmForge HTTP API 的请求处理器实现。

# 概述

handlers 包实现了 RealmForge 所有 HTTP 端点的请求处理逻辑，
包括场景生成、角色模型生成、场景模板、场景更新流以及统一的
响应/错误处理。所有 Handler 均遵循标准 net/http 接口，通过
Swagger 注解生成 API 文档。

# 核心类型

  - VisualizationHandler — 场景/角色/模板生成处理器
  - StreamHandler        — 场景更新 WebSocket 推送处理器
  - HealthHandler        — 服务健康检查（/health, /healthz, /ready）
  - Response             — 统一 JSON 响应结构（success + data + error + timestamp）
  - ErrorInfo            — 结构化错误信息，含 code、message、retryable 标记
  - ResponseWriter       — 包装 http.ResponseWriter 以捕获状态码
  - HealthCheck          — 可插拔健康检查接口（模板目录、Redis 等）

# 主要能力

  - 统一响应格式：WriteSuccess / WriteError / WriteJSON 辅助函数
  - 请求验证：DecodeJSONBody（1 MB 限制 + 严格模式）、ValidateContentType
  - ErrorCode → HTTP 状态码自动映射（4xx/5xx）
  - 场景流推送：StreamHandler 通过 WebSocket 推送场景更新
  - 质量预设查询：/v1/quality-presets 返回全部渲染预设
  - 可扩展健康检查：RegisterCheck 注册自定义 HealthCheck 实现
*/
package handlers
