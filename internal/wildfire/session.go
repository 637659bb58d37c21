// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"context"
	"sync"

	"github.com/ManuGH/firelog/internal/metrics"
)

// Session holds the Wildfire state of one response: whether the protocol
// announcement went out and the index of the next message header.
// Every logger serving the same request must share one Session.
type Session struct {
	mu          sync.Mutex
	sink        HeaderSink
	initialized bool
	index       int
}

// NewSession returns a session writing to sink. Message numbering starts at 1.
func NewSession(sink HeaderSink) *Session {
	return &Session{sink: sink, index: 1}
}

// Emit sends message at level as a console header, announcing the protocol
// first if this is the first message of the response. It reports whether the
// message header was written.
func (s *Session) Emit(level string, message any) bool {
	_, ok := s.emit(level, message, callerAt(1))
	return ok
}

// Initialized reports whether the announcement headers have been sent.
func (s *Session) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// NextIndex returns the index the next message header will use.
func (s *Session) NextIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Reset clears the announcement latch and restarts numbering at 1.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = false
	s.index = 1
}

func (s *Session) emit(level string, message any, loc Location) (int, bool) {
	if s == nil || s.sink == nil {
		return 0, false
	}

	record := NewRecord(level, loc)
	payload, err := Payload(record, ConvertToString(message))
	if err != nil {
		metrics.RecordWildfireDropped(metrics.WildfireDropEncode)
		return 0, false
	}
	body := Frame(payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.announce() {
		metrics.RecordWildfireDropped(metrics.WildfireDropCommitted)
		return 0, false
	}

	index := s.index
	if !s.sink.SendHeader(messageHeaderName(index), body) {
		metrics.RecordWildfireDropped(metrics.WildfireDropCommitted)
		return 0, false
	}
	s.index++
	metrics.RecordWildfireMessage(record.Type)
	return index, true
}

// announce sends the protocol headers once. The latch is only set when all
// of them were written. Caller holds s.mu.
func (s *Session) announce() bool {
	if s.initialized {
		return true
	}
	for _, a := range announcements {
		if !s.sink.SendHeader(a.name, a.value) {
			return false
		}
	}
	s.initialized = true
	metrics.RecordWildfireAnnouncement()
	return true
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, or nil outside a response.
func FromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
