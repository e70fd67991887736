/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics holds the Prometheus counters and trace helpers shared by
// the validation runner and the status publisher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for validation runs.
const (
	ResultPass = "pass"
	ResultFail = "fail"
)

var (
	// repository is bounded by the repositories a deployment watches; the
	// pull request number and head SHA stay on the run span.
	validationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_validations_total",
			Help: "Total number of pull request validations by result and failure kind",
		},
		[]string{"result", "kind", "repository"},
	)

	statusCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_statuses_published_total",
			Help: "Total number of commit statuses published",
		},
		[]string{"context", "state"},
	)

	statusErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_status_publish_errors_total",
			Help: "Total number of commit statuses that failed to publish",
		},
		[]string{"context"},
	)

	suppressedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_publishes_suppressed_total",
			Help: "Total number of runs whose statuses were not published",
		},
		[]string{"reason"},
	)
)

// RecordValidation counts one validation run. kind is empty for passing runs.
func RecordValidation(repository, result, kind string) {
	validationCounter.With(prometheus.Labels{
		"result":     result,
		"kind":       kind,
		"repository": repository,
	}).Inc()
}

// RecordStatus counts one published status.
func RecordStatus(context, state string) {
	statusCounter.With(prometheus.Labels{"context": context, "state": state}).Inc()
}

// RecordStatusError counts one status that could not be published.
func RecordStatusError(context string) {
	statusErrorCounter.With(prometheus.Labels{"context": context}).Inc()
}

// RecordSuppressed counts one run whose statuses were suppressed.
func RecordSuppressed(reason string) {
	suppressedCounter.With(prometheus.Labels{"reason": reason}).Inc()
}
