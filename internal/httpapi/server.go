// Package httpapi implements an optional HTTP front-end exposing both
// translation directions over the network, alongside the flag-based CLI
// front-end.
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onedm/sdf-matter-translator/internal/config"
	"github.com/onedm/sdf-matter-translator/internal/httpauth"
	"github.com/onedm/sdf-matter-translator/internal/metrics"
	"github.com/onedm/sdf-matter-translator/internal/middleware/logging"
	"github.com/onedm/sdf-matter-translator/internal/middleware/recovery"
	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

// Server wraps a gin engine and the stdlib http.Server around it.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     config.ServerConfig
	logger     logger.Logger
}

// NewServer builds a Server exposing /v1/sdf-to-matter, /v1/matter-to-sdf,
// /healthz, and (when exposeMetrics is true) /metrics, gated by auth unless
// auth is nil.
func NewServer(cfg config.ServerConfig, log logger.Logger, collector metrics.Collector, auth *httpauth.Middleware, exposeMetrics bool) *Server {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(recovery.Handler(log, recovery.Config{}))
	router.Use(logging.RequestLogger(log, logging.Config{SkipPaths: []string{"/healthz", "/metrics"}}))

	h := &handlers{logger: log, metrics: collector}
	router.GET("/healthz", h.health)

	v1 := router.Group("/v1")
	if auth != nil {
		v1.Use(auth.Authenticate())
	}
	v1.POST("/sdf-to-matter", h.sdfToMatter)
	v1.POST("/matter-to-sdf", h.matterToSdf)

	if exposeMetrics {
		router.GET("/metrics", gin.WrapH(metricsHandler()))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	return &Server{router: router, httpServer: httpServer, config: cfg, logger: log}
}

// Start begins serving; it blocks until the server stops or errors.
func (s *Server) Start() error {
	s.logger.Info("starting translation http server", logger.String("address", s.httpServer.Addr))
	if s.config.TLS.Enabled {
		return s.httpServer.ListenAndServeTLS(s.config.TLS.CertFile, s.config.TLS.KeyFile)
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping translation http server")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server's bind address.
func (s *Server) Address() string {
	return s.httpServer.Addr
}
