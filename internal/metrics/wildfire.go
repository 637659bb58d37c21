// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for the console emitter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a console message was not delivered.
const (
	WildfireDropCommitted = "committed"
	WildfireDropEncode    = "encode"
)

var (
	wildfireMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firelog_wildfire_messages_total",
		Help: "Console messages written as Wildfire headers by console type",
	}, []string{"type"}) // type=LOG|INFO|WARN|ERROR

	wildfireDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firelog_wildfire_dropped_total",
		Help: "Console messages that could not be written by reason",
	}, []string{"reason"}) // reason=committed|encode

	wildfireAnnouncementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firelog_wildfire_announcements_total",
		Help: "Responses that received the Wildfire protocol announcement",
	})

	consoleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firelog_http_console_responses_total",
		Help: "HTTP responses carrying console output by route",
	}, []string{"route"})

	consoleHeadersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firelog_http_console_headers_total",
		Help: "Console message headers sent by route",
	}, []string{"route"})
)

// RecordWildfireMessage counts a delivered console message.
func RecordWildfireMessage(consoleType string) {
	wildfireMessagesTotal.WithLabelValues(consoleType).Inc()
}

// RecordWildfireDropped counts an undelivered console message.
func RecordWildfireDropped(reason string) {
	wildfireDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordWildfireAnnouncement counts a response that was announced.
func RecordWildfireAnnouncement() {
	wildfireAnnouncementsTotal.Inc()
}

// RecordConsoleResponse counts a response of route that carried console
// output and the message headers it sent.
func RecordConsoleResponse(route string, messages int) {
	consoleResponsesTotal.WithLabelValues(route).Inc()
	consoleHeadersTotal.WithLabelValues(route).Add(float64(messages))
}
