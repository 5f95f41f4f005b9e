// =============================================================================
// 📦 RealmForge 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import (
	"time"

	"github.com/jmanhype/RealmForge/types"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Server:        DefaultServerConfig(),
		Visualization: DefaultVisualizationConfig(),
		Redis:         DefaultRedisConfig(),
		Log:           DefaultLogConfig(),
		Telemetry:     DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        8080,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RateLimitRPS:    100,
		RateLimitBurst:  200,
	}
}

// DefaultVisualizationConfig 返回默认场景生成配置
func DefaultVisualizationConfig() VisualizationConfig {
	return VisualizationConfig{
		TemplatePath:     "templates",
		TemplateCacheTTL: 0,
		WatchTemplates:   false,
		AssetBaseURL:     "/assets",
		DefaultQuality:   types.QualityMedium,
		MaxActiveScenes:  1024,
		QualityPresets:   DefaultQualityPresets(),
	}
}

// DefaultQualityPresets 返回内置的四档渲染质量预设
func DefaultQualityPresets() map[string]types.QualityPreset {
	return map[string]types.QualityPreset{
		types.QualityLow: {
			Shadows:          false,
			AmbientOcclusion: false,
			Bloom:            false,
			AntiAliasing:     false,
			TextureQuality:   "low",
			DrawDistance:     100,
		},
		types.QualityMedium: {
			Shadows:          true,
			AmbientOcclusion: false,
			Bloom:            true,
			AntiAliasing:     true,
			TextureQuality:   "medium",
			DrawDistance:     200,
		},
		types.QualityHigh: {
			Shadows:          true,
			AmbientOcclusion: true,
			Bloom:            true,
			AntiAliasing:     true,
			TextureQuality:   "high",
			DrawDistance:     500,
		},
		types.QualityUltra: {
			Shadows:          true,
			AmbientOcclusion: true,
			Bloom:            true,
			AntiAliasing:     true,
			TextureQuality:   "ultra",
			DrawDistance:     1000,
			RayTracing:       true,
		},
	}
}

// DefaultRedisConfig 返回默认 Redis 配置
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:      false,
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		TTL:          5 * time.Minute,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "realmforge",
		SampleRate:   0.1,
	}
}
