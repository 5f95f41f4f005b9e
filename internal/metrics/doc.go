// 版权所有 2024 RealmForge Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的全链路指标采集能力，覆盖
HTTP、场景生成、模板、缓存与场景流五大维度。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制，避免手动管理 Registry。所有指标按 namespace 隔离，
支持多维度 label 分组，便于 Grafana 等工具进行可视化与告警。

# 核心类型

  - Collector：指标收集器，持有 Counter、Histogram、Gauge 等
    Prometheus 向量指标，按业务域分组管理。

# 主要能力

  - HTTP 指标：请求总数、请求耗时、请求/响应体大小，
    按 method/path/status 分组，状态码归类为 2xx/3xx/4xx/5xx。
  - 生成指标：场景/角色/模板生成总数与耗时，
    按 kind/quality/status 分组，另有活跃场景数 Gauge。
  - 模板指标：模板文件加载总数与耗时，按 template_type/status 分组。
  - 缓存指标：命中与未命中计数，按 cache_type 分组。
  - 场景流指标：活跃 WebSocket 连接数 Gauge 与已推送更新计数。
*/
package metrics
