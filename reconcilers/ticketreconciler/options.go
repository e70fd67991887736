/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ticketreconciler

import (
	"context"
	"io"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/statuspublisher"
	"chainguard.dev/ticketgate/validation"
)

// Validator checks one pull request.
type Validator interface {
	Validate(ctx context.Context, pr pullrequest.PullRequest) (*validation.Outcome, error)
}

// Publisher publishes the statuses for a passing outcome.
type Publisher interface {
	Publish(ctx context.Context, pr pullrequest.PullRequest, outcome *validation.Outcome) ([]statuspublisher.Report, error)
}

// Option configures the Reconciler.
type Option func(*Reconciler)

// WithValidator sets the validator run for every pull request.
func WithValidator(v Validator) Option {
	return func(r *Reconciler) { r.validator = v }
}

// WithPublisher sets where passing outcomes are published.
func WithPublisher(p Publisher) Option {
	return func(r *Reconciler) { r.publisher = p }
}

// WithFailureReporter sets where validation failures are reported. Without
// one, failures are only logged.
func WithFailureReporter(f FailureReporter) Option {
	return func(r *Reconciler) { r.reporter = f }
}

// WithSummary writes a markdown summary of every run to w.
func WithSummary(w io.Writer) Option {
	return func(r *Reconciler) { r.summary = w }
}
