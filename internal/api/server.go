// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api provides the HTTP surface of the firelog daemon: health,
// metrics and a console demo endpoint that exercises the Wildfire headers.
package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ManuGH/firelog/internal/api/middleware"
	"github.com/ManuGH/firelog/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP API server for firelog.
type Server struct {
	cfg       config.AppConfig
	startTime time.Time
	draining  atomic.Bool
	router    *chi.Mux
}

// New builds a Server and its routes from cfg.
func New(cfg config.AppConfig) *Server {
	s := &Server{
		cfg:       cfg,
		startTime: time.Now(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetDraining marks the server as shutting down; readiness then fails
// while in-flight requests finish.
func (s *Server) SetDraining(v bool) {
	s.draining.Store(v)
}

// StackConfig derives the middleware configuration from cfg.
func StackConfig(cfg config.AppConfig) middleware.StackConfig {
	sc := middleware.StackConfig{
		EnableMetrics: cfg.Metrics.Enabled,
		MetricsPath:   cfg.Metrics.Path,
		EnableLogging: true,
		Wildfire: middleware.WildfireConfig{
			Enabled:       cfg.Wildfire.Enabled,
			RequireClient: cfg.Wildfire.RequireClient,
		},
	}
	if cfg.Tracing.Enabled {
		sc.TracingService = cfg.LogService
	}
	if cfg.RateLimit.Enabled {
		sc.RateLimitPerMinute = cfg.RateLimit.RequestsPerMinute
	}
	return sc
}

func (s *Server) routes() *chi.Mux {
	r := middleware.NewRouter(StackConfig(s.cfg))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/console/demo", s.handleConsoleDemo)
	})
	return r
}
