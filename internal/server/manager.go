package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// 🌐 服务器生命周期管理器
// =============================================================================

// Manager 管理一个 HTTP/HTTPS 服务器的完整生命周期：
// 监听、非阻塞启动、错误传播与优雅停机。
type Manager struct {
	server   *http.Server
	listener net.Listener
	errCh    chan error
	config   Config
	logger   *zap.Logger
	mu       sync.RWMutex
	closed   bool
}

// Config 服务器监听与超时配置
type Config struct {
	// 监听地址，形如 ":8080"
	Addr string `yaml:"addr" json:"addr"`

	// 请求读取超时
	ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout"`

	// 响应写入超时
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`

	// Keep-Alive 连接空闲超时
	IdleTimeout time.Duration `yaml:"idle_timeout" json:"idle_timeout"`

	// 请求头大小上限（字节）
	MaxHeaderBytes int `yaml:"max_header_bytes" json:"max_header_bytes"`

	// 优雅停机等待上限
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig 返回与全局配置默认值一致的服务器配置
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: 15 * time.Second,
	}
}

// NewManager 用给定的 handler 与配置构造管理器，不开始监听
func NewManager(handler http.Handler, config Config, logger *zap.Logger) *Manager {
	return &Manager{
		server: &http.Server{
			Addr:           config.Addr,
			Handler:        handler,
			ReadTimeout:    config.ReadTimeout,
			WriteTimeout:   config.WriteTimeout,
			IdleTimeout:    config.IdleTimeout,
			MaxHeaderBytes: config.MaxHeaderBytes,
		},
		errCh:  make(chan error, 1),
		config: config,
		logger: logger.With(zap.String("component", "http_server")),
	}
}

// =============================================================================
// 🎯 启动与停机
// =============================================================================

// Start 开始监听并在后台 goroutine 中服务请求
func (m *Manager) Start() error {
	listener, err := m.listen()
	if err != nil {
		return err
	}

	m.logger.Info("http server listening", zap.String("addr", listener.Addr().String()))
	go m.run(func() error { return m.server.Serve(listener) })

	return nil
}

// StartTLS 与 Start 相同，但以 TLS 方式提供服务
func (m *Manager) StartTLS(certFile, keyFile string) error {
	listener, err := m.listen()
	if err != nil {
		return err
	}

	m.logger.Info("https server listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("cert_file", certFile),
	)
	go m.run(func() error { return m.server.ServeTLS(listener, certFile, keyFile) })

	return nil
}

// listen 打开监听套接字，同一管理器只允许监听一次
func (m *Manager) listen() (net.Listener, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("server is closed")
	}
	if m.listener != nil {
		return nil, fmt.Errorf("server already started on %s", m.listener.Addr())
	}

	listener, err := net.Listen("tcp", m.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", m.config.Addr, err)
	}
	m.listener = listener
	return listener, nil
}

// run 执行 serve 函数并把非正常退出的错误送入错误通道
func (m *Manager) run(serve func() error) {
	if err := serve(); err != nil && err != http.ErrServerClosed {
		m.logger.Error("server terminated", zap.Error(err))
		select {
		case m.errCh <- err:
		default:
		}
	}
}

// Shutdown 停止接收新连接并等待存量请求完成，多次调用安全
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	m.logger.Info("draining http server", zap.Duration("timeout", m.config.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(ctx, m.config.ShutdownTimeout)
	defer cancel()

	if err := m.server.Shutdown(shutdownCtx); err != nil {
		m.logger.Error("http server drain failed", zap.Error(err))
		return err
	}

	m.listener = nil
	m.logger.Info("http server stopped")
	return nil
}

// WaitForShutdown 阻塞直到收到 SIGINT/SIGTERM 或服务异常退出，
// 然后执行优雅停机
func (m *Manager) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-m.errCh:
		if err != nil {
			m.logger.Error("server exited unexpectedly", zap.Error(err))
		}
	}

	if err := m.Shutdown(context.Background()); err != nil {
		m.logger.Error("shutdown error", zap.Error(err))
	}
}

// =============================================================================
// 🔧 状态查询
// =============================================================================

// Errors 返回异步服务错误通道
func (m *Manager) Errors() <-chan error {
	return m.errCh
}

// Addr 返回实际监听地址；未启动时返回配置地址
func (m *Manager) Addr() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listener != nil {
		return m.listener.Addr().String()
	}
	return m.config.Addr
}

// IsRunning 报告服务器是否尚未关闭
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed
}
