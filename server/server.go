// Package server provides HTTP server management and lifecycle handling for
// the medication catalog API. It includes server setup, middleware
// configuration, route management, and graceful shutdown capabilities with
// proper error handling and logging.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vineetdaniels2108/rxnorm-api/config"
	"github.com/vineetdaniels2108/rxnorm-api/handlers"
	"github.com/vineetdaniels2108/rxnorm-api/interfaces"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server    *http.Server
	router    chi.Router
	dataStore interfaces.DataStore
	validator interfaces.DataValidator
	config    *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, store interfaces.DataStore, validator interfaces.DataValidator) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:    router,
		dataStore: store,
		validator: validator,
		config:    cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/database/{pageNumber}", handlers.ServePagedRecords(s.dataStore))
	s.router.Get("/database", handlers.ServeAllRecords(s.dataStore))
	s.router.Get("/medication/{element}", handlers.FindMedication(s.dataStore, s.validator))
	s.router.Get("/medication/id/{identifier}", handlers.FindMedicationByID(s.dataStore, s.validator))
	s.router.Get("/medication/ndc/{ndc}", handlers.FindMedicationByNDC(s.dataStore, s.validator))
	s.router.Get("/manufacturer/{keyword}", handlers.FindByManufacturer(s.dataStore, s.validator))
	s.router.Get("/stats", handlers.ServeStats(s.dataStore))
	s.router.Get("/health", handlers.HealthCheck(s.dataStore))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	// Wait a bit for any ongoing requests to complete
	logging.Info("Waiting for ongoing requests to complete...")
	time.Sleep(2 * time.Second)

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof profiling server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		fmt.Println("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			fmt.Println("Profiling server failed: ", err)
		}
	}()
}
