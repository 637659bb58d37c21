// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ManuGH/firelog/internal/metrics"
	"github.com/ManuGH/firelog/internal/wildfire"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "firelog_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status", "console"}) // console=on|off

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "firelog_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "firelog_http_response_size_bytes",
		Help:    "HTTP response body sizes in bytes",
		Buckets: prometheus.ExponentialBuckets(100, 10, 8),
	}, []string{"method", "route", "status"})
)

// Metrics records request latency and response size by route pattern.
// Responses that carried console output are labelled console=on, and the
// console message headers they sent are counted per route. It must sit
// outside the Wildfire middleware so the headers are final when it looks.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			sw := &sizeWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := routeLabel(r)
			status := strconv.Itoa(sw.status)
			console := "off"
			if wildfire.Announced(w.Header()) {
				console = "on"
				metrics.RecordConsoleResponse(route, wildfire.MessageCount(w.Header()))
			}

			httpRequestDuration.WithLabelValues(r.Method, route, status, console).Observe(time.Since(start).Seconds())
			if sw.bytes > 0 {
				httpResponseSize.WithLabelValues(r.Method, route, status).Observe(float64(sw.bytes))
			}
		})
	}
}

// routeLabel returns the chi route pattern, falling back to the raw path
// outside a router. Patterns keep label cardinality bounded.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// sizeWriter records the first status code and the body size.
type sizeWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (sw *sizeWriter) WriteHeader(code int) {
	if !sw.wroteHeader && code >= http.StatusOK {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sizeWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

func (sw *sizeWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
