// Package server wires the studio backend together: configuration, logging,
// metrics, the workspace manager, the tool registry, and the gin router.
package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/codecanvas/studio/internal/api/middleware"
	"github.com/codecanvas/studio/internal/config"
	"github.com/codecanvas/studio/internal/http"
	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/monitoring"
	"github.com/codecanvas/studio/internal/providers"
	"github.com/codecanvas/studio/internal/service"
	"github.com/codecanvas/studio/internal/templates"
	"github.com/codecanvas/studio/internal/workspace"
	"github.com/codecanvas/studio/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	logger *logging.Logger
	srv    *nethttp.Server
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, err
	}

	metrics := monitoring.New()
	manager := workspace.NewManager()

	templateReg := templates.NewRegistry(logger)
	if err := templateReg.LoadDir(cfg.Templates.Dir); err != nil {
		logger.Warn("template load failed", zap.Error(err))
	}

	registry := service.NewRegistry()
	if err := registry.Register(providers.NewFiles(manager, cfg.Workspace, logger)); err != nil {
		return nil, err
	}
	if err := registry.Register(providers.NewPreview(manager)); err != nil {
		return nil, err
	}

	wsHandler := ws.NewHandler(manager, metrics, logger)
	handlers := http.NewHandlers(manager, registry, templateReg, wsHandler, metrics, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(metrics.Middleware())
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/workspaces", handlers.CreateWorkspace)
	router.GET("/workspaces", handlers.ListWorkspaces)
	router.DELETE("/workspaces/:id", handlers.CloseWorkspace)
	router.GET("/workspaces/:id/preview", handlers.Preview)
	router.GET("/workspaces/:id/ws", wsHandler.HandleConnection)

	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteTool)
	router.GET("/templates", handlers.ListTemplates)

	return &Server{
		cfg:    cfg,
		logger: logger,
		srv: &nethttp.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

// Run starts serving and blocks until the listener fails or Shutdown runs.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and flushes the logger.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.logger.Sync() //nolint:errcheck
	return s.srv.Shutdown(ctx)
}
