// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		Enabled:      false,
		ServiceName:  "firelog-test",
		ExporterType: ExporterGRPC,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if provider.tp != nil {
		t.Error("Expected noop provider (tp == nil)")
	}

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	if span.IsRecording() {
		t.Error("Expected noop tracer span to be non-recording")
	}
	span.End()
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "firelog-test",
		ExporterType: "invalid",
	})
	if err == nil {
		t.Fatal("Expected error for invalid exporter type")
	}

	expectedMsg := "unsupported exporter type: invalid (supported: grpc, http)"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{rate: 1.0, want: "AlwaysOnSampler"},
		{rate: 2.0, want: "AlwaysOnSampler"},
		{rate: 0.0, want: "AlwaysOffSampler"},
		{rate: -1, want: "AlwaysOffSampler"},
		{rate: 0.5, want: "TraceIDRatioBased"},
	}

	for _, tt := range tests {
		got := newSampler(tt.rate).Description()
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("newSampler(%v) = %q, want prefix %q", tt.rate, got, tt.want)
		}
	}
}

func TestProvider_ShutdownNoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &Provider{tp: nil}
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("Expected no error on noop shutdown, got: %v", err)
	}
}

func TestTracer(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Enabled: false}); err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	ctx, span := Tracer("test-tracer").Start(context.Background(), "test-span")
	defer span.End()

	if trace.SpanFromContext(ctx) == nil {
		t.Error("Expected span in context")
	}
}
