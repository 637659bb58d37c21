// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	xglog "github.com/ManuGH/firelog/internal/log"
	"github.com/ManuGH/firelog/internal/wildfire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countWildfireHeaders(h http.Header) int {
	n := 0
	for name := range h {
		if strings.HasPrefix(name, wildfire.HeaderPrefix+"-") {
			n++
		}
	}
	return n
}

func TestWildfire_RequestLoggerWritesHeaders(t *testing.T) {
	h := Wildfire(WildfireConfig{Enabled: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := xglog.FromContext(r.Context())
		l.Info().Msg("loaded user")
		l.Warn().Msg("slow query")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, wildfire.ProtocolURI, rec.Header().Get("X-Wf-Protocol-1"))
	assert.Contains(t, rec.Header().Get("X-Wf-1-1-1-1"), `"loaded user"`)
	assert.Contains(t, rec.Header().Get("X-Wf-1-1-1-2"), `"Type":"WARN"`)
	assert.Equal(t, 5, countWildfireHeaders(rec.Header()))
}

func TestWildfire_DirectEmit(t *testing.T) {
	var results []bool
	h := Wildfire(WildfireConfig{Enabled: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results = append(results, wildfire.Emit(r.Context(), wildfire.LevelDebug, map[string]int{"rows": 3}))
		_, _ = w.Write([]byte("done"))
		results = append(results, wildfire.Emit(r.Context(), wildfire.LevelDebug, "after body"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []bool{true, false}, results)
	assert.Contains(t, rec.Header().Get("X-Wf-1-1-1-1"), `{\"rows\":3}`)
	assert.Empty(t, rec.Header().Get("X-Wf-1-1-1-2"))
}

func TestWildfire_SessionsArePerRequest(t *testing.T) {
	h := Wildfire(WildfireConfig{Enabled: true})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		wildfire.Emit(r.Context(), wildfire.LevelInfo, "hello")
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, wildfire.ProtocolURI, rec.Header().Get("X-Wf-Protocol-1"), "request %d", i)
		assert.NotEmpty(t, rec.Header().Get("X-Wf-1-1-1-1"), "request %d", i)
		assert.Empty(t, rec.Header().Get("X-Wf-1-1-1-2"), "request %d", i)
	}
}

func TestWildfire_Disabled(t *testing.T) {
	var ok bool
	h := Wildfire(WildfireConfig{Enabled: false})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ok = wildfire.Emit(r.Context(), wildfire.LevelInfo, "hidden")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
	assert.Zero(t, countWildfireHeaders(rec.Header()))
}

func TestWildfire_RequireClient(t *testing.T) {
	h := Wildfire(WildfireConfig{Enabled: true, RequireClient: true})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		wildfire.Emit(r.Context(), wildfire.LevelInfo, "for extension users only")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Zero(t, countWildfireHeaders(rec.Header()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(wildfire.HeaderClientVersion, "0.7.4")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, 4, countWildfireHeaders(rec.Header()))
}
