// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"context"

	"github.com/ManuGH/firelog/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// Emit sends message at level to the console session of the response bound
// to ctx. It returns false without side effects when ctx carries no session,
// and false when the response headers are already committed.
func Emit(ctx context.Context, level string, message any) bool {
	return emitContext(ctx, level, message, callerAt(1))
}

func emitContext(ctx context.Context, level string, message any, loc Location) bool {
	s := FromContext(ctx)
	if s == nil {
		return false
	}
	index, ok := s.emit(level, message, loc)
	if !ok {
		return false
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("wildfire.message", trace.WithAttributes(
			telemetry.WildfireAttributes(TypeFor(level), level, index)...,
		))
	}
	return true
}
