// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"github.com/rs/zerolog"
)

const zerologPackage = "github.com/rs/zerolog"

// Hook forwards zerolog events to the console session found in the event's
// context. Attach it to a logger built with With().Ctx(ctx).
type Hook struct{}

// Run implements zerolog.Hook.
func (Hook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if FromContext(ctx) == nil {
		return
	}
	emitContext(ctx, LevelName(level), msg, callerOutside(zerologPackage))
}

// LevelName translates a zerolog level into the level names Emit maps.
func LevelName(level zerolog.Level) string {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return LevelDebug
	case zerolog.InfoLevel:
		return LevelInfo
	case zerolog.WarnLevel:
		return LevelWarning
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelError
	default:
		return LevelNotice
	}
}
