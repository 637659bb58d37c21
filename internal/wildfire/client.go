// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"net/http"
	"strings"
)

// HeaderClientVersion is sent by the FirePHP browser extension.
const HeaderClientVersion = "X-FirePHP-Version"

// ClientDetected reports whether r comes from a browser with a FirePHP
// console installed.
func ClientDetected(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.Header.Get(HeaderClientVersion) != "" {
		return true
	}
	return strings.Contains(r.UserAgent(), "FirePHP/")
}
