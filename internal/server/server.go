// Package server provides the HTTP interface for running and browsing stock analyses.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/finsight/internal/config"
	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/storage"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// Analyzer runs one analysis for a ticker.
type Analyzer interface {
	Run(ctx context.Context, ticker string) (*models.Analysis, error)
}

// Server is the HTTP server for the finsight API and web page.
type Server struct {
	analyzer Analyzer
	storage  storage.Storage
	config   *config.ServerConfig
	logger   *zap.Logger
	validate *validator.Validate
	markdown goldmark.Markdown
	page     *template.Template
	timeout  time.Duration
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(analyzer Analyzer, storage storage.Storage, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		analyzer: analyzer,
		storage:  storage,
		config:   cfg,
		logger:   logger,
		validate: newValidator(),
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify)),
		page:     pageTemplate,
		timeout:  3 * time.Minute,
	}
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyzeForm)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/api/v1/finance/{ticker}", s.handleGetSnapshot)
	r.Get("/api/v1/news/{ticker}", s.handleListNews)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
