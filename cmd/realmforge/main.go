// =============================================================================
// RealmForge 主入口
// =============================================================================
// 完整服务入口点，包含 HTTP 服务、WebSocket 场景流、健康检查、Prometheus 指标
//
// 使用方法:
//
//	realmforge serve                       # 启动服务
//	realmforge serve --config config.yaml  # 指定配置文件
//	realmforge version                     # 显示版本信息
//	realmforge health                      # 健康检查
//	realmforge templates                   # 列出可用场景模板
// =============================================================================

// @title RealmForge API
// @version 1.0.0
// @description RealmForge is a production-ready Go backend that generates Three.js scene, character, and template definitions for web-based 3D worlds.
// @description
// @description ## Features
// @description - Scene generation with quality presets (low/medium/high/ultra)
// @description - Character model generation with GSAP animation sequences
// @description - File-backed scene templates with inheritance and caching
// @description - Live scene updates over WebSocket
// @description - Health monitoring and metrics

// @contact.name RealmForge Team
// @contact.url https://github.com/jmanhype/RealmForge

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for authentication

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jmanhype/RealmForge/config"
	"github.com/jmanhype/RealmForge/internal/telemetry"
	"github.com/jmanhype/RealmForge/internal/tlsutil"
	"github.com/jmanhype/RealmForge/visualization/template"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "version":
		printVersion()
	case "health":
		runHealthCheck(os.Args[2:])
	case "templates":
		runListTemplates(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 🖥️ serve 命令
// =============================================================================

func runServe(args []string) {
	// 解析命令行参数
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	// 加载配置
	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 验证配置
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting RealmForge",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Initialize OpenTelemetry
	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	// 创建服务器
	server := NewServer(cfg, logger, otelProviders)

	// 启动服务器
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	// 等待关闭信号
	server.WaitForShutdown()

	logger.Info("RealmForge stopped")
}

// =============================================================================
// 🏥 健康检查命令
// =============================================================================

func runHealthCheck(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "Server address")
	fs.Parse(args)

	client := tlsutil.SecureHTTPClient(5 * time.Second)
	resp, err := client.Get(*addr + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Health check failed: status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	fmt.Println("OK")
}

// =============================================================================
// 📄 templates 命令
// =============================================================================

func runListTemplates(args []string) {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	dir := fs.String("dir", "", "Template directory (defaults to visualization.template_path)")
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	templateDir := *dir
	if templateDir == "" {
		cfg, err := config.NewLoader().WithConfigPath(*configPath).Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		templateDir = cfg.Visualization.TemplatePath
	}

	source := template.NewFileStore(templateDir, zap.NewNop())
	names, err := source.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list templates: %v\n", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Printf("No templates found in %s\n", templateDir)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("RealmForge %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`RealmForge - Three.js Scene Generation Backend

Usage:
  realmforge <command> [options]

Commands:
  serve      Start the RealmForge server
  templates  List available scene templates
  version    Show version information
  health     Check server health
  help       Show this help message

Options for 'serve':
  --config <path>   Path to configuration file (YAML)

Options for 'templates':
  --dir <path>      Template directory to list
  --config <path>   Path to configuration file (YAML)

Examples:
  realmforge serve
  realmforge serve --config /etc/realmforge/config.yaml
  realmforge templates --dir ./templates
  realmforge health --addr http://localhost:8080
  realmforge version`)
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	// 解析日志级别
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// 配置编码器
	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// 构建配置
	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	opts := []zap.Option{}
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	// 构建 logger
	logger, err := zapConfig.Build(opts...)
	if err != nil {
		// 回退到基本 logger
		logger, _ = zap.NewProduction()
	}

	return logger
}
