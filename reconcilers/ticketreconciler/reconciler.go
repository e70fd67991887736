/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ticketreconciler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/ticketgate/metrics"
	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/statuspublisher"
	"chainguard.dev/ticketgate/validation"
)

// Result describes a completed run. Exactly one of Outcome and Failure is
// set.
type Result struct {
	Outcome *validation.Outcome
	Failure *validation.Failure
	Reports []statuspublisher.Report
}

// Passed reports whether every check passed.
func (r *Result) Passed() bool { return r.Failure == nil }

// Reconciler validates pull requests and routes the results.
type Reconciler struct {
	validator Validator
	publisher Publisher
	reporter  FailureReporter
	summary   io.Writer
}

// New constructs a Reconciler with the provided options.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{reporter: logReporter{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile runs validation for pr, triggered by the given event action.
// A validation failure is reported and returned in the Result; the error is
// only set when reporting, publishing or writing the summary fails.
func (r *Reconciler) Reconcile(ctx context.Context, pr pullrequest.PullRequest, action string) (res *Result, err error) {
	if r.validator == nil || r.publisher == nil {
		return nil, errors.New("reconciler needs a validator and a publisher")
	}

	ctx = metrics.WithRunContext(ctx, metrics.RunContext{
		RunKey:  fmt.Sprintf("pr:%s/%d", pr.FullName(), pr.Number),
		Action:  action,
		HeadSHA: pr.HeadSHA,
	})
	ctx, span := metrics.StartRun(ctx)
	defer func() { metrics.EndRun(span, err) }()

	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).With("pr", pr.String()))
	clog.InfoContextf(ctx, "Validating %s (action: %s)", pr, action)

	outcome, verr := r.validator.Validate(ctx, pr)
	if verr != nil {
		f := validation.AsFailure(verr)
		metrics.RecordValidation(pr.FullName(), metrics.ResultFail, f.Kind.String())
		clog.WarnContextf(ctx, "Validation failed (%s): %v", f.Kind, f)

		res = &Result{Failure: f}
		if err := r.reporter.ReportFailure(ctx, pr, f); err != nil {
			return res, fmt.Errorf("reporting failure: %w", err)
		}
		return res, r.writeSummary(pr, res)
	}
	metrics.RecordValidation(pr.FullName(), metrics.ResultPass, "")

	res = &Result{Outcome: outcome}
	res.Reports, err = r.publisher.Publish(ctx, pr, outcome)
	if err != nil {
		clog.ErrorContextf(ctx, "Publishing statuses failed: %v", err)
		return res, err
	}
	clog.InfoContextf(ctx, "Published %d statuses", len(res.Reports))
	return res, r.writeSummary(pr, res)
}

func (r *Reconciler) writeSummary(pr pullrequest.PullRequest, res *Result) error {
	if r.summary == nil {
		return nil
	}
	reports := res.Reports
	if res.Failure != nil {
		reports = []statuspublisher.Report{{
			Context: statuspublisher.ContextTicketGate,
			Message: res.Failure.Message,
		}}
	}
	if err := statuspublisher.WriteSummary(r.summary, pr, reports); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
