// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ManuGH/firelog/internal/wildfire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gathered returns the counter value (or histogram sample count) of the
// series of family name whose labels include want.
func gathered(t *testing.T, name string, want map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, l := range m.GetLabel() {
				if v, ok := want[l.GetName()]; ok && v == l.GetValue() {
					matched++
				}
			}
			if matched != len(want) {
				continue
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics_CountsConsoleHeadersPerRoute(t *testing.T) {
	r := NewRouter(StackConfig{
		EnableMetrics: true,
		Wildfire:      WildfireConfig{Enabled: true},
	})
	r.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		wildfire.Emit(r.Context(), wildfire.LevelInfo, "loading order")
		wildfire.Emit(r.Context(), wildfire.LevelWarning, "stock low")
		w.WriteHeader(http.StatusOK)
	})

	route := map[string]string{"route": "/orders/{id}"}
	onLabels := map[string]string{"route": "/orders/{id}", "console": "on", "status": "200"}
	responses := gathered(t, "firelog_http_console_responses_total", route)
	headers := gathered(t, "firelog_http_console_headers_total", route)
	observed := gathered(t, "firelog_http_request_duration_seconds", onLabels)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, gathered(t, "firelog_http_console_responses_total", route)-responses)
	assert.Equal(t, 4.0, gathered(t, "firelog_http_console_headers_total", route)-headers)
	assert.Equal(t, 2.0, gathered(t, "firelog_http_request_duration_seconds", onLabels)-observed)
}

func TestMetrics_NoConsoleOutput(t *testing.T) {
	r := NewRouter(StackConfig{EnableMetrics: true})
	r.Get("/quiet", func(w http.ResponseWriter, r *http.Request) {
		wildfire.Emit(r.Context(), wildfire.LevelInfo, "nobody listens")
		_, _ = w.Write([]byte("ok"))
	})

	route := map[string]string{"route": "/quiet"}
	offLabels := map[string]string{"route": "/quiet", "console": "off", "status": "200"}
	observed := gathered(t, "firelog_http_request_duration_seconds", offLabels)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quiet", nil))

	assert.Equal(t, 1.0, gathered(t, "firelog_http_request_duration_seconds", offLabels)-observed)
	assert.Zero(t, gathered(t, "firelog_http_console_responses_total", route))
}

func TestRouteLabel_OutsideRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/raw/path", nil)
	assert.Equal(t, "/raw/path", routeLabel(req))
}
