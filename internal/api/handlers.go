// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"errors"
	"net/http"
	"time"

	xglog "github.com/ManuGH/firelog/internal/log"
	"github.com/ManuGH/firelog/internal/wildfire"
)

var errDraining = errors.New("server is shutting down")

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       s.cfg.Version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.draining.Load() {
		writeServiceUnavailable(w, errDraining)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// consoleSample is rendered by the console as an expandable object.
type consoleSample struct {
	Service string            `json:"service"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query,omitempty"`
}

type consoleDemoResponse struct {
	Session bool `json:"session"`
	Sent    int  `json:"sent"`
}

// handleConsoleDemo logs one message per console severity and one structured
// value. Open it in a browser with a FirePHP extension to see the output.
func (s *Server) handleConsoleDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xglog.FromContext(ctx)

	logger.Debug().Msg("console demo: debug")
	logger.Log().Msg("console demo: notice")
	logger.Info().Msg("console demo: info")
	logger.Warn().Msg("console demo: warning")
	logger.Error().Msg("console demo: error")

	sample := consoleSample{
		Service: s.cfg.LogService,
		Path:    r.URL.Path,
	}
	if q := r.URL.Query(); len(q) > 0 {
		sample.Query = make(map[string]string, len(q))
		for k := range q {
			sample.Query[k] = q.Get(k)
		}
	}
	wildfire.Emit(ctx, wildfire.LevelInfo, sample)

	resp := consoleDemoResponse{}
	if sess := wildfire.FromContext(ctx); sess != nil {
		resp.Session = true
		resp.Sent = sess.NextIndex() - 1
	}
	writeJSON(w, http.StatusOK, resp)
}
