// Package api exposes a small HTTP surface for triggering non-interactive
// sync runs and reading the last run's summary.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsync "github.com/eshaffer321/amazon-ynab-sync/internal/application/sync"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/config"
)

// Runner executes a sync run. Implemented by the sync orchestrator.
type Runner interface {
	Run(ctx context.Context, opts appsync.Options) (*appsync.Result, error)
}

// Server is the HTTP API server.
type Server struct {
	cfg    config.APIConfig
	engine *gin.Engine
	runner Runner
	logger *slog.Logger

	mu         sync.Mutex
	lastResult *appsync.Result
}

// NewServer creates the API server.
func NewServer(cfg config.APIConfig, runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	engine.Use(cors.New(corsConfig))

	s := &Server{
		cfg:    cfg,
		engine: engine,
		runner: runner,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/sync", s.handleSync)
	api.GET("/sync/last", s.handleLastResult)
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("starting API server", slog.String("addr", addr))
	return s.engine.Run(addr)
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type syncRequest struct {
	DryRun       bool `json:"dry_run"`
	Force        bool `json:"force"`
	ForceRefresh bool `json:"force_refresh"`
}

func (s *Server) handleSync(c *gin.Context) {
	// An empty body means default options.
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.runner.Run(c.Request.Context(), appsync.Options{
		DryRun:         req.DryRun,
		Force:          req.Force,
		ForceRefresh:   req.ForceRefresh,
		NonInteractive: true,
	})
	if err != nil {
		s.logger.Error("sync failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleLastResult(c *gin.Context) {
	s.mu.Lock()
	result := s.lastResult
	s.mu.Unlock()

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync has run yet"})
		return
	}
	c.JSON(http.StatusOK, result)
}
