// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package wildfire emits log records as Wildfire protocol headers so that a
// FirePHP-capable browser console can display them next to the response.
package wildfire

import (
	"fmt"
	"net/http"
	"strings"
)

// Wildfire protocol identifiers announced once per response.
const (
	// ProtocolURI selects the JSON stream message format.
	ProtocolURI = "http://meta.wildfirehq.org/Protocol/JsonStream/0.2"

	// StructureURI tells the console how to parse and present messages.
	StructureURI = "http://meta.firephp.org/Wildfire/Structure/FirePHP/FirebugConsole/0.1"

	// PluginURI must name a plugin the console knows, otherwise nothing is shown.
	PluginURI = "http://meta.firephp.org/Wildfire/Plugin/FirePHP/Library-FirePHPCore/0.3"

	// HeaderPrefix is the vendor prefix the console scans for.
	HeaderPrefix = "X-Wf"
)

// Console severity tokens understood by the FirebugConsole structure.
const (
	TypeLog   = "LOG"
	TypeInfo  = "INFO"
	TypeWarn  = "WARN"
	TypeError = "ERROR"
)

// Level names accepted by Emit. Anything else is rendered as TypeInfo.
const (
	LevelDebug   = "debug"
	LevelNotice  = "notice"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

var levelTypes = map[string]string{
	LevelDebug:   TypeLog,
	LevelNotice:  TypeInfo,
	LevelInfo:    TypeInfo,
	LevelWarning: TypeWarn,
	LevelError:   TypeError,
}

// TypeFor maps a level name to its console severity token.
// Unknown levels map to TypeInfo.
func TypeFor(level string) string {
	if t, ok := levelTypes[level]; ok {
		return t
	}
	return TypeInfo
}

// HeaderName builds a Wildfire header name from its index path,
// e.g. HeaderName(1, "Structure", 1) == "X-Wf-1-Structure-1".
func HeaderName(path ...any) string {
	var b strings.Builder
	b.WriteString(HeaderPrefix)
	for _, p := range path {
		b.WriteByte('-')
		fmt.Fprint(&b, p)
	}
	return b.String()
}

// announcement is one of the headers sent ahead of the first message.
type announcement struct {
	name  string
	value string
}

var announcements = []announcement{
	{name: HeaderName("Protocol", 1), value: ProtocolURI},
	{name: HeaderName(1, "Structure", 1), value: StructureURI},
	{name: HeaderName(1, "Plugin", 1), value: PluginURI},
}

// messageHeaderName returns the header carrying message number index.
func messageHeaderName(index int) string {
	return HeaderName(1, 1, 1, index)
}

// messageHeaderPrefix is shared by every message header of a response.
var messageHeaderPrefix = HeaderName(1, 1, 1) + "-"

// Announced reports whether h carries the protocol announcement.
func Announced(h http.Header) bool {
	return h.Get(announcements[0].name) != ""
}

// MessageCount returns the number of console message headers in h.
func MessageCount(h http.Header) int {
	n := 0
	for name := range h {
		if strings.HasPrefix(name, messageHeaderPrefix) {
			n++
		}
	}
	return n
}
