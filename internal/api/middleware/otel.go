// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelHTTP wraps the handler with OpenTelemetry HTTP instrumentation.
// Health and metrics endpoints are not traced.
func OTelHTTP(serviceName, metricsPath string) func(http.Handler) http.Handler {
	skip := map[string]bool{"/healthz": true, "/readyz": true}
	if metricsPath != "" {
		skip[metricsPath] = true
	}

	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			next,
			serviceName,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
			otelhttp.WithSpanOptions(
				trace.WithAttributes(semconv.ServiceName(serviceName)),
			),
			otelhttp.WithFilter(func(r *http.Request) bool { return !skip[r.URL.Path] }),
			otelhttp.WithSpanNameFormatter(spanNameFormatter),
		)
	}
}

// spanNameFormatter names spans "{operation} {path}", hiding query values.
func spanNameFormatter(operation string, r *http.Request) string {
	if r.URL.RawQuery != "" {
		return operation + " " + r.URL.Path + "?"
	}
	return operation + " " + r.URL.Path
}

// ExtractTraceContext returns the trace and span IDs of the request span,
// or empty strings without an active span.
func ExtractTraceContext(r *http.Request) (traceID, spanID string) {
	spanCtx := trace.SpanContextFromContext(r.Context())
	if !spanCtx.IsValid() {
		return "", ""
	}
	return spanCtx.TraceID().String(), spanCtx.SpanID().String()
}
