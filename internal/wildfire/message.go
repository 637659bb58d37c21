// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record describes how the console should present a message.
// File and Line encode as null when the call site is unknown.
type Record struct {
	Type  string  `json:"Type"`
	File  *string `json:"File"`
	Line  *int    `json:"Line"`
	Label string  `json:"Label"`
}

// NewRecord builds the descriptor for level at loc.
func NewRecord(level string, loc Location) Record {
	r := Record{
		Type:  TypeFor(level),
		Label: level,
	}
	if loc.Known() {
		file, line := loc.File, loc.Line
		r.File = &file
		r.Line = &line
	}
	return r
}

// Payload encodes the [descriptor, message] pair sent to the console.
func Payload(r Record, message string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([2]any{r, message}); err != nil {
		return nil, fmt.Errorf("encode wildfire payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Frame wraps a payload as "<byte length>|<payload>|" so the console can
// find message boundaries.
func Frame(payload []byte) string {
	return fmt.Sprintf("%d|%s|", len(payload), payload)
}
