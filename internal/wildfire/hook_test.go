// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestHook_ForwardsEvents(t *testing.T) {
	s, _, rec := newTestSession()
	ctx := NewContext(context.Background(), s)

	var out bytes.Buffer
	logger := zerolog.New(&out).With().Ctx(ctx).Logger().Hook(Hook{})

	logger.Warn().Str("disk", "/var").Msg("disk almost full")
	_, file, line, _ := runtime.Caller(0)

	record, message := decodeMessage(t, rec.Header().Get("X-Wf-1-1-1-1"))
	assert.Equal(t, TypeWarn, record["Type"])
	assert.Equal(t, LevelWarning, record["Label"])
	assert.Equal(t, file, record["File"])
	assert.Equal(t, float64(line-1), record["Line"])
	assert.Equal(t, "disk almost full", message)

	// The regular log output is untouched.
	assert.Contains(t, out.String(), `"disk":"/var"`)
}

func TestHook_LevelTranslation(t *testing.T) {
	s, _, rec := newTestSession()
	ctx := NewContext(context.Background(), s)
	logger := zerolog.New(io.Discard).Level(zerolog.TraceLevel).With().Ctx(ctx).Logger().Hook(Hook{})

	logger.Trace().Msg("t")
	logger.Debug().Msg("d")
	logger.Info().Msg("i")
	logger.Error().Msg("e")
	logger.Log().Msg("n")

	wantTypes := []string{TypeLog, TypeLog, TypeInfo, TypeError, TypeInfo}
	for i, want := range wantTypes {
		record, _ := decodeMessage(t, rec.Header().Get(messageHeaderName(i+1)))
		assert.Equal(t, want, record["Type"], "message %d", i+1)
	}
}

func TestHook_SkipsDisabledLevels(t *testing.T) {
	s, _, _ := newTestSession()
	ctx := NewContext(context.Background(), s)
	logger := zerolog.New(io.Discard).Level(zerolog.InfoLevel).With().Ctx(ctx).Logger().Hook(Hook{})

	logger.Debug().Msg("filtered")
	assert.False(t, s.Initialized())
	assert.Equal(t, 1, s.NextIndex())
}

func TestHook_WithoutSession(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out).Hook(Hook{})

	assert.NotPanics(t, func() {
		logger.Info().Msg("no response here")
	})
	assert.True(t, strings.Contains(out.String(), "no response here"))
}

func TestHook_AddsSpanEvent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s, _, _ := newTestSession()
	ctx, span := tp.Tracer("wildfire-test").Start(NewContext(context.Background(), s), "request")
	logger := zerolog.New(io.Discard).With().Ctx(ctx).Logger().Hook(Hook{})

	logger.Error().Msg("boom")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "wildfire.message", events[0].Name)

	attrs := make(map[string]string)
	for _, kv := range events[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, TypeError, attrs["wildfire.type"])
	assert.Equal(t, LevelError, attrs["wildfire.label"])
	assert.Equal(t, "1", attrs["wildfire.index"])
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  string
	}{
		{zerolog.TraceLevel, LevelDebug},
		{zerolog.DebugLevel, LevelDebug},
		{zerolog.InfoLevel, LevelInfo},
		{zerolog.WarnLevel, LevelWarning},
		{zerolog.ErrorLevel, LevelError},
		{zerolog.FatalLevel, LevelError},
		{zerolog.PanicLevel, LevelError},
		{zerolog.NoLevel, LevelNotice},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelName(tt.level))
		})
	}
}
