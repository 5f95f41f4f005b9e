// Copyright (c) RealmForge Authors.
// Licensed under the MIT License.

/*
Package main 提供 RealmForge 服务端程序入口。

# 概述

cmd/realmforge 是 RealmForge 的可执行入口，提供场景生成 HTTP API、
WebSocket 场景流、健康检查、模板列表和版本查询等子命令。程序支持 YAML
配置文件加载、结构化日志（zap）、Prometheus 指标采集以及 OpenTelemetry
链路追踪。

# 核心类型

  - Server           — 主服务器，管理 HTTP、Metrics 双端口及优雅关闭
  - Middleware        — HTTP 中间件函数签名 func(http.Handler) http.Handler
  - responseWriter    — 包装 http.ResponseWriter 以捕获状态码

# 主要能力

  - 子命令：serve（启动服务）、templates（列出模板）、version、health
  - 中间件链：Recovery、RequestID、SecurityHeaders、OTelTracing、
    MetricsMiddleware、RequestLogger、CORS、RateLimiter（基于 IP）、
    APIKeyAuth（X-API-Key / query 参数，供 WebSocket 客户端使用）
  - 模板监听：Watcher 轮询模板目录，变更时失效 Store 缓存条目
  - Redis 响应缓存：可选，Redis 不可用时自动降级为直接生成
  - Metrics 服务器：独立端口暴露 /metrics（Prometheus）
  - 优雅关闭：信号监听 → 停止监听器 → 关闭 HTTP → 关闭 Metrics →
    关闭 Redis → 关闭遥测 → Wait
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
