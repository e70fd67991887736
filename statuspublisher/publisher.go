/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statuspublisher

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/ticketgate/metrics"
	"chainguard.dev/ticketgate/overrides"
	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/validation"
)

// Status contexts.
const (
	ContextJiraTicket   = "jira-ticket"
	ContextSingleCommit = "single-commit"
	ContextMaintMerge   = "maint-merge"

	// ContextTicketGate carries validation failures when there is no other
	// place to report them, such as in webhook mode.
	ContextTicketGate = "ticket-gate"
)

// Commit status states.
const (
	StateSuccess = "success"
	StateFailure = "failure"
)

// Suppression reasons, used as the metrics label.
const (
	ReasonExempt  = "exempt"
	ReasonNotOpen = "not_open"
)

// Report is one named status to publish.
type Report struct {
	Context   string
	Pass      bool
	Message   string
	TargetURL string
}

// State is the commit status state of the report.
func (r Report) State() string {
	if r.Pass {
		return StateSuccess
	}
	return StateFailure
}

// Sink delivers a single status for a pull request.
type Sink interface {
	Send(ctx context.Context, pr pullrequest.PullRequest, r Report) error
}

// Publisher publishes the statuses for validation outcomes.
type Publisher struct {
	sink Sink
	cfg  *config
}

// New constructs a Publisher that sends statuses through sink.
func New(sink Sink, opts ...Option) *Publisher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Publisher{sink: sink, cfg: cfg}
}

// Suppressed reports why statuses for pr are not published, or "" when they
// are.
func (p *Publisher) Suppressed(pr pullrequest.PullRequest) string {
	if _, ok := p.cfg.exempt[pr.FullName()]; ok {
		return ReasonExempt
	}
	if pr.State != pullrequest.StateOpen {
		return ReasonNotOpen
	}
	return ""
}

// Publish sends the statuses for outcome concurrently and waits for all of
// them. It returns the reports it attempted and the first send error; reports
// already sent are not withdrawn. Suppressed runs return nil, nil.
func (p *Publisher) Publish(ctx context.Context, pr pullrequest.PullRequest, outcome *validation.Outcome) ([]Report, error) {
	log := clog.FromContext(ctx).With("pr", pr.String())

	switch reason := p.Suppressed(pr); reason {
	case ReasonExempt:
		log.Infof("Not publishing statuses: %s is exempt", pr.FullName())
		metrics.RecordSuppressed(reason)
		return nil, nil
	case ReasonNotOpen:
		log.Infof("Not publishing statuses: pull request is %s", pr.State)
		metrics.RecordSuppressed(reason)
		return nil, nil
	}

	reports := Reports(outcome)
	if p.cfg.detailURL != "" {
		for i := range reports {
			if reports[i].Context == ContextJiraTicket {
				reports[i].TargetURL = p.cfg.detailURL
			}
		}
	}

	var eg errgroup.Group
	for _, r := range reports {
		eg.Go(func() error {
			if err := p.sink.Send(ctx, pr, r); err != nil {
				metrics.RecordStatusError(r.Context)
				return fmt.Errorf("publishing %s status: %w", r.Context, err)
			}
			metrics.RecordStatus(r.Context, r.State())
			log.With("context", r.Context).With("state", r.State()).Debug("Published status")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// PublishFailure sends one failing ticket-gate status carrying message.
// Suppression applies as for Publish.
func (p *Publisher) PublishFailure(ctx context.Context, pr pullrequest.PullRequest, message string) error {
	if reason := p.Suppressed(pr); reason != "" {
		clog.FromContext(ctx).With("pr", pr.String()).Infof("Not publishing failure status: %s", reason)
		metrics.RecordSuppressed(reason)
		return nil
	}
	r := Report{Context: ContextTicketGate, Message: message}
	if err := p.sink.Send(ctx, pr, r); err != nil {
		metrics.RecordStatusError(r.Context)
		return fmt.Errorf("publishing %s status: %w", r.Context, err)
	}
	metrics.RecordStatus(r.Context, r.State())
	return nil
}

// Reports computes the statuses for outcome.
func Reports(outcome *validation.Outcome) []Report {
	reports := []Report{{
		Context: ContextJiraTicket,
		Pass:    outcome.TicketPass,
		Message: outcome.TicketMessage,
	}, singleCommit(outcome)}

	if outcome.MaintenanceMerge {
		reports = append(reports, Report{
			Context: ContextMaintMerge,
			Pass:    false,
			Message: "maintenance merge: use a merge commit and a new ticket",
		})
	}
	return reports
}

func singleCommit(outcome *validation.Outcome) Report {
	n := outcome.CommitCount
	r := Report{Context: ContextSingleCommit}
	switch {
	case n == 0:
		r.Message = "no commits found"
	case n == 1:
		r.Pass = true
		r.Message = "exactly one commit 🎉"
	default:
		r.Pass = outcome.MaintenanceMerge || outcome.Overrides.Enabled(overrides.AllowManyCommits)
		r.Message = fmt.Sprintf("%d commits", n)
		if !r.Pass {
			r.Message += "; please squash into a single commit"
		}
	}
	return r
}
