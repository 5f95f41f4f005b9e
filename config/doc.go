// Package config 提供 RealmForge 的配置管理功能。
//
// 包含配置加载与默认值管理。
// 支持从文件和环境变量加载配置，
// 并内置四档渲染质量预设。
package config
