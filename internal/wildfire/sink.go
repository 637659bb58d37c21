// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"bufio"
	"net"
	"net/http"
	"sync/atomic"
)

// HeaderSink transmits a single response header.
// SendHeader reports false once headers can no longer be changed.
type HeaderSink interface {
	SendHeader(name, value string) bool
}

// ResponseSink wraps an http.ResponseWriter and tracks whether the header
// block has been committed to the client.
type ResponseSink struct {
	http.ResponseWriter
	committed atomic.Bool
}

// NewResponseSink wraps w.
func NewResponseSink(w http.ResponseWriter) *ResponseSink {
	return &ResponseSink{ResponseWriter: w}
}

// SendHeader sets the header unless the response is already committed.
func (s *ResponseSink) SendHeader(name, value string) bool {
	if s.committed.Load() {
		return false
	}
	s.ResponseWriter.Header().Set(name, value)
	return true
}

// Committed reports whether the status line and headers were written.
func (s *ResponseSink) Committed() bool {
	return s.committed.Load()
}

// WriteHeader commits the response. Informational 1xx codes other than
// 101 leave the header block open.
func (s *ResponseSink) WriteHeader(statusCode int) {
	if statusCode >= http.StatusOK || statusCode == http.StatusSwitchingProtocols {
		s.committed.Store(true)
	}
	s.ResponseWriter.WriteHeader(statusCode)
}

// Write commits the response and writes b.
func (s *ResponseSink) Write(b []byte) (int, error) {
	s.committed.Store(true)
	return s.ResponseWriter.Write(b)
}

// Flush commits the response and flushes the underlying writer if it can.
func (s *ResponseSink) Flush() {
	s.committed.Store(true)
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack takes over the connection. A hijacked response has no header
// block left to write, so the sink counts as committed afterwards.
func (s *ResponseSink) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(s.ResponseWriter).Hijack()
	if err != nil {
		return nil, nil, err
	}
	s.committed.Store(true)
	return conn, rw, nil
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (s *ResponseSink) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
