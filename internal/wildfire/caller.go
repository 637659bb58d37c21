// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"runtime"
	"strings"
)

// Location is the source position a message was logged from.
// The zero value means unknown.
type Location struct {
	File string
	Line int
}

// Known reports whether the location carries a file.
func (l Location) Known() bool {
	return l.File != ""
}

// callerAt returns the location skip frames above its caller.
func callerAt(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line}
}

// callerOutside returns the call site that entered one of the given
// packages on the way to its caller: the first frame following a run of
// frames inside pkgs. Without such a run it returns the immediate caller.
func callerOutside(pkgs ...string) Location {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var first Location
	inside := false
	for {
		frame, more := frames.Next()
		switch {
		case inPackages(frame.Function, pkgs):
			inside = true
		case inside:
			return Location{File: frame.File, Line: frame.Line}
		case first.File == "" && frame.File != "":
			first = Location{File: frame.File, Line: frame.Line}
		}
		if !more {
			return first
		}
	}
}

func inPackages(function string, pkgs []string) bool {
	for _, p := range pkgs {
		if strings.HasPrefix(function, p+".") {
			return true
		}
	}
	return false
}
