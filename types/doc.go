// Copyright (c) RealmForge Authors.
// Licensed under the MIT License.

/*
Package types 提供 RealmForge 服务的全局共享类型定义。

# 概述

types 是服务最底层的公共包，不依赖任何内部包，为 visualization、api、
config 等上层模块提供统一的类型契约。所有跨包共享的结构体、枚举和
错误码均定义于此，以避免循环依赖。

# 核心类型

  - Vector3 / Color               — 三维向量与颜色值对象
  - CameraDefinition              — 相机定义（位置、朝向、视锥参数）
  - LightDefinition               — 灯光定义（类型、颜色、强度、阴影）
  - EnvironmentDefinition         — 环境定义（背景色、雾、天空盒、地面）
  - MaterialDefinition            — 材质定义（PBR 参数与贴图引用）
  - GeometryDefinition            — 几何体定义（类型 + 构造参数）
  - ObjectDefinition              — 可渲染网格对象（几何 + 材质 + 变换）
  - ModelDefinition               — 外部模型引用（glTF 等）
  - SceneDefinition               — 场景聚合根（相机、灯光、对象、环境）
  - CharacterModelDefinition      — 角色模型聚合根（模型、部件、材质、动画）
  - SceneTemplateDefinition       — 场景模板（支持继承与自定义点）
  - QualityPreset                 — 渲染质量预设（low / medium / high / ultra）
  - Error / ErrorCode             — 结构化错误体系，含 HTTP 状态码与 Retryable 标记

# 主要能力

  - 请求校验：SceneRequest / CharacterRequest / SceneTemplateRequest 的 Validate
  - 错误工具链：NewError / WithCause / IsRetryable / GetErrorCode
  - 场景不变量：SceneDefinition.ActiveCamera 保证单一激活相机
  - 质量预设：QualityPreset.Settings 展开为渲染器设置键值
*/
package types
