// SPDX-License-Identifier: MIT

package middleware

import (
	xglog "github.com/ManuGH/firelog/internal/log"
	"github.com/go-chi/chi/v5"
)

// StackConfig configures the canonical HTTP ingress middleware stack.
type StackConfig struct {
	// Observability
	EnableMetrics  bool
	MetricsPath    string // excluded from tracing
	TracingService string // empty disables tracing
	EnableLogging  bool

	// Rate limiting; zero disables it.
	RateLimitPerMinute int

	// Console headers
	Wildfire WildfireConfig
}

// NewRouter constructs a chi router with the canonical middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Metrics (track all requests)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	// 4. Tracing, so request loggers below see the span
	if cfg.TracingService != "" {
		r.Use(OTelHTTP(cfg.TracingService, cfg.MetricsPath))
	}
	// 5. Access log (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(xglog.Middleware())
	}
	// 6. Rate limit
	if cfg.RateLimitPerMinute > 0 {
		r.Use(APIRateLimit(cfg.RateLimitPerMinute))
	}
	// 7. Console session (innermost, owns the request logger)
	r.Use(Wildfire(cfg.Wildfire))
}
