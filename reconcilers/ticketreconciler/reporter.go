/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ticketreconciler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/validation"
)

// FailureReporter marks a run as failed with a message for the author.
type FailureReporter interface {
	ReportFailure(ctx context.Context, pr pullrequest.PullRequest, f *validation.Failure) error
}

type logReporter struct{}

func (logReporter) ReportFailure(ctx context.Context, pr pullrequest.PullRequest, f *validation.Failure) error {
	clog.ErrorContextf(ctx, "%s failed validation: %s", pr, f.Message)
	return nil
}

// ActionsReporter writes failures as GitHub Actions error annotations.
type ActionsReporter struct {
	w io.Writer
}

// NewActionsReporter writes workflow commands to w, normally stdout.
func NewActionsReporter(w io.Writer) *ActionsReporter {
	return &ActionsReporter{w: w}
}

// ReportFailure implements FailureReporter.
func (a *ActionsReporter) ReportFailure(_ context.Context, _ pullrequest.PullRequest, f *validation.Failure) error {
	msg := f.Message
	if f.Err != nil {
		msg = f.Error()
	}
	_, err := fmt.Fprintf(a.w, "::error title=%s::%s\n", escapeProperty("ticket "+f.Kind.String()+" check"), escapeData(msg))
	return err
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }

// FailurePublisher posts a single failing status for a pull request.
type FailurePublisher interface {
	PublishFailure(ctx context.Context, pr pullrequest.PullRequest, message string) error
}

// StatusReporter reports failures as a failing ticket-gate commit status.
type StatusReporter struct {
	pub FailurePublisher
}

// NewStatusReporter reports failures through pub.
func NewStatusReporter(pub FailurePublisher) *StatusReporter {
	return &StatusReporter{pub: pub}
}

// ReportFailure implements FailureReporter.
func (s *StatusReporter) ReportFailure(ctx context.Context, pr pullrequest.PullRequest, f *validation.Failure) error {
	return s.pub.PublishFailure(ctx, pr, f.Message)
}
