// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"

	xglog "github.com/ManuGH/firelog/internal/log"
	"github.com/ManuGH/firelog/internal/wildfire"
)

// WildfireConfig controls the console session middleware.
type WildfireConfig struct {
	Enabled       bool
	RequireClient bool
}

// Wildfire opens a console session for every request and installs a request
// logger whose events are written to the response as Wildfire headers.
// Handlers log through log.FromContext(r.Context()) or call wildfire.Emit.
func Wildfire(cfg WildfireConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.RequireClient && !wildfire.ClientDetected(r) {
				next.ServeHTTP(w, r)
				return
			}

			sink := wildfire.NewResponseSink(w)
			ctx := wildfire.NewContext(r.Context(), wildfire.NewSession(sink))

			reqLogger := xglog.WithContext(ctx, xglog.Base()).
				With().Ctx(ctx).Logger().
				Hook(wildfire.Hook{})
			ctx = reqLogger.WithContext(ctx)

			next.ServeHTTP(sink, r.WithContext(ctx))
		})
	}
}
