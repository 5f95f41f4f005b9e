package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/api/handlers"
	"github.com/jmanhype/RealmForge/assets"
	"github.com/jmanhype/RealmForge/config"
	"github.com/jmanhype/RealmForge/internal/cache"
	"github.com/jmanhype/RealmForge/internal/metrics"
	"github.com/jmanhype/RealmForge/internal/server"
	"github.com/jmanhype/RealmForge/internal/telemetry"
	"github.com/jmanhype/RealmForge/visualization"
	"github.com/jmanhype/RealmForge/visualization/template"
)

// =============================================================================
// 🖥️ Server 结构
// =============================================================================

// Server 是 RealmForge 的主服务器
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	// 服务器管理器
	httpManager    *server.Manager
	metricsManager *server.Manager

	// 核心服务
	cacheManager  *cache.Manager
	templateStore *template.Store
	watcher       *template.Watcher
	service       *visualization.Service

	// Handlers
	healthHandler *handlers.HealthHandler
	vizHandler    *handlers.VisualizationHandler
	streamHandler *handlers.StreamHandler

	// 指标收集器
	metricsCollector *metrics.Collector

	// 遥测
	otelProviders *telemetry.Providers

	// Rate limiter 生命周期管理
	rateLimiterCancel context.CancelFunc
	watcherCancel     context.CancelFunc

	wg sync.WaitGroup
}

// NewServer 创建新的服务器实例
func NewServer(cfg *config.Config, logger *zap.Logger, otelProviders *telemetry.Providers) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		otelProviders: otelProviders,
	}
}

// =============================================================================
// 🚀 启动流程
// =============================================================================

// Start 启动所有服务
func (s *Server) Start() error {
	// 1. 初始化指标收集器
	s.metricsCollector = metrics.NewCollector("realmforge", s.logger)

	// 2. 初始化缓存与模板存储
	if err := s.initServices(); err != nil {
		return fmt.Errorf("failed to init services: %w", err)
	}

	// 3. 初始化 Handlers
	s.initHandlers()

	// 4. 启动 HTTP 服务器
	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	// 5. 启动 Metrics 服务器
	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.Bool("template_watcher", s.cfg.Visualization.WatchTemplates),
		zap.Bool("redis_cache", s.cacheManager != nil),
	)

	return nil
}

// =============================================================================
// 🔧 初始化方法
// =============================================================================

// initServices 初始化缓存、模板存储、场景生成服务
func (s *Server) initServices() error {
	// Redis 响应缓存（可选）
	if s.cfg.Redis.Enabled {
		manager, err := cache.NewManager(cache.Config{
			Addr:         s.cfg.Redis.Addr,
			Password:     s.cfg.Redis.Password,
			DB:           s.cfg.Redis.DB,
			DefaultTTL:   s.cfg.Redis.TTL,
			PoolSize:     s.cfg.Redis.PoolSize,
			MinIdleConns: s.cfg.Redis.MinIdleConns,
		}, s.logger)
		if err != nil {
			s.logger.Warn("Redis not available, response caching disabled", zap.Error(err))
		} else {
			s.cacheManager = manager
		}
	}

	// 模板存储（文件加载 + 内存缓存）
	source := template.NewFileStore(s.cfg.Visualization.TemplatePath, s.logger)
	s.templateStore = template.NewStore(source,
		template.WithTTL(s.cfg.Visualization.TemplateCacheTTL),
		template.WithStoreLogger(s.logger),
	)

	// 模板目录监听（可选）：变更时失效对应的缓存条目
	if s.cfg.Visualization.WatchTemplates {
		s.watcher = template.NewWatcher(s.cfg.Visualization.TemplatePath,
			template.WithWatcherLogger(s.logger),
		)
		s.watcher.OnChange(func(event template.Event) {
			s.logger.Info("template changed, invalidating cache",
				zap.String("template_type", event.TemplateType),
				zap.String("op", event.Op.String()),
			)
			s.templateStore.Invalidate(event.TemplateType)
		})

		watcherCtx, watcherCancel := context.WithCancel(context.Background())
		s.watcherCancel = watcherCancel
		if err := s.watcher.Start(watcherCtx); err != nil {
			return fmt.Errorf("failed to start template watcher: %w", err)
		}
	}

	// 场景生成服务
	opts := []visualization.ServiceOption{
		visualization.WithLogger(s.logger),
		visualization.WithMetrics(s.metricsCollector),
		visualization.WithAssetResolver(assets.NewStaticResolver(s.cfg.Visualization.AssetBaseURL)),
	}
	if s.cacheManager != nil {
		opts = append(opts, visualization.WithResponseCache(s.cacheManager, s.cfg.Redis.TTL))
	}
	s.service = visualization.NewService(s.cfg.Visualization, s.templateStore, opts...)

	return nil
}

// initHandlers 初始化所有 handlers
func (s *Server) initHandlers() {
	// 健康检查 handler
	s.healthHandler = handlers.NewHealthHandler(s.logger)
	s.healthHandler.RegisterCheck(
		handlers.NewTemplateDirHealthCheck("template_dir", s.cfg.Visualization.TemplatePath),
	)
	if s.cacheManager != nil {
		s.healthHandler.RegisterCheck(
			handlers.NewRedisHealthCheck("redis", s.cacheManager.Ping),
		)
	}

	// 场景生成 handler
	s.vizHandler = handlers.NewVisualizationHandler(s.service, s.logger)

	// WebSocket 场景流 handler
	s.streamHandler = handlers.NewStreamHandler(s.service, s.logger, s.metricsCollector)

	s.logger.Info("Handlers initialized")
}

// =============================================================================
// 🌐 HTTP 服务器
// =============================================================================

// startHTTPServer 启动 HTTP 服务器
func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	// ========================================
	// 健康检查端点
	// ========================================
	mux.HandleFunc("/health", s.healthHandler.HandleHealth)
	mux.HandleFunc("/healthz", s.healthHandler.HandleHealthz)
	mux.HandleFunc("/ready", s.healthHandler.HandleReady)
	mux.HandleFunc("/readyz", s.healthHandler.HandleReady)

	// 版本信息端点
	mux.HandleFunc("/version", s.healthHandler.HandleVersion(Version, BuildTime, GitCommit))

	// ========================================
	// API 路由
	// ========================================
	mux.HandleFunc("POST /v1/scenes", s.vizHandler.HandleGenerateScene)
	mux.HandleFunc("GET /v1/scenes/{id}", s.vizHandler.HandleGetScene)
	mux.HandleFunc("PUT /v1/scenes/{id}", s.vizHandler.HandleUpdateScene)
	mux.HandleFunc("GET /v1/scenes/{id}/stream", s.streamHandler.HandleSceneStream)
	mux.HandleFunc("POST /v1/characters", s.vizHandler.HandleGenerateCharacter)
	mux.HandleFunc("POST /v1/templates", s.vizHandler.HandleSceneTemplate)
	mux.HandleFunc("GET /v1/quality-presets", s.vizHandler.HandleQualityPresets)

	// ========================================
	// 构建中间件链
	// ========================================
	skipAuthPaths := []string{"/health", "/healthz", "/ready", "/readyz", "/version", "/metrics"}
	rateLimiterCtx, rateLimiterCancel := context.WithCancel(context.Background())
	s.rateLimiterCancel = rateLimiterCancel
	handler := Chain(mux,
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		OTelTracing(),
		MetricsMiddleware(s.metricsCollector),
		RequestLogger(s.logger),
		CORS(s.cfg.Server.CORSOrigins),
		RateLimiter(rateLimiterCtx, float64(s.cfg.Server.RateLimitRPS), s.cfg.Server.RateLimitBurst, s.logger),
		APIKeyAuth(s.cfg.Server.APIKeys, skipAuthPaths, s.cfg.Server.AllowQueryAPIKey, s.logger),
	)

	// ========================================
	// 使用 internal/server.Manager
	// ========================================
	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		IdleTimeout:     2 * s.cfg.Server.ReadTimeout,
		MaxHeaderBytes:  1 << 20, // 1 MB
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.httpManager = server.NewManager(handler, serverConfig, s.logger)

	// 启动服务器（非阻塞）
	if s.cfg.Server.TLSCertFile != "" && s.cfg.Server.TLSKeyFile != "" {
		if err := s.httpManager.StartTLS(s.cfg.Server.TLSCertFile, s.cfg.Server.TLSKeyFile); err != nil {
			return err
		}
		s.logger.Info("HTTPS server started", zap.Int("port", s.cfg.Server.HTTPPort))
		return nil
	}
	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.Int("port", s.cfg.Server.HTTPPort))
	return nil
}

// =============================================================================
// 📊 Metrics 服务器
// =============================================================================

// startMetricsServer 启动 Metrics 服务器
func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.metricsManager = server.NewManager(mux, serverConfig, s.logger)

	// 启动服务器（非阻塞）
	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("Metrics server started", zap.Int("port", s.cfg.Server.MetricsPort))
	return nil
}

// =============================================================================
// 🛑 关闭流程
// =============================================================================

// WaitForShutdown 等待关闭信号并优雅关闭
func (s *Server) WaitForShutdown() {
	// 使用 httpManager 的 WaitForShutdown（它会监听信号）
	if s.httpManager != nil {
		s.httpManager.WaitForShutdown()
	}

	// 执行清理
	s.Shutdown()
}

// Shutdown 优雅关闭所有服务
func (s *Server) Shutdown() {
	s.logger.Info("Starting graceful shutdown...")

	ctx := context.Background()

	// 0. 停止 rate limiter 清理 goroutine
	if s.rateLimiterCancel != nil {
		s.rateLimiterCancel()
	}

	// 1. 停止模板监听
	if s.watcher != nil {
		s.watcherCancel()
		s.watcher.Stop()
	}

	// 2. 关闭 HTTP 服务器
	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}

	// 3. 关闭 Metrics 服务器
	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	// 4. 关闭 Redis 连接
	if s.cacheManager != nil {
		if err := s.cacheManager.Close(); err != nil {
			s.logger.Error("Cache manager shutdown error", zap.Error(err))
		}
	}

	// 5. 关闭遥测
	if s.otelProviders != nil {
		if err := s.otelProviders.Shutdown(ctx); err != nil {
			s.logger.Error("Telemetry shutdown error", zap.Error(err))
		}
	}

	// 6. 等待所有 goroutine 完成
	s.wg.Wait()

	s.logger.Info("Graceful shutdown completed")
}
