/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package validation checks that a pull request's title, commits and Jira
// ticket agree with each other.
//
// A run parses the override flags and the title ticket, fetches the ticket
// state and the commit list concurrently, and then applies the rules in
// order. The first rule that fails stops the run with a *Failure; an Outcome
// is only built once every rule has passed.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/ticketgate/issuetracker"
	"chainguard.dev/ticketgate/overrides"
	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/ticketref"
)

// MaxCommits is the most commits the commit list query returns. Receiving
// exactly this many means the list may have been truncated.
const MaxCommits = 100

// DefaultAcceptedStatuses are the ticket workflow states that allow a merge.
var DefaultAcceptedStatuses = []string{"Accepted", "Reviewing", "Review Feedback"}

// TicketLookup fetches the workflow state of a ticket.
type TicketLookup interface {
	Lookup(ctx context.Context, key string) (issuetracker.TicketState, error)
}

// CommitLister lists the commits of a pull request in order, returning at
// most MaxCommits.
type CommitLister interface {
	ListCommits(ctx context.Context, pr pullrequest.PullRequest) ([]pullrequest.Commit, error)
}

// Outcome summarizes a run in which every check passed.
type Outcome struct {
	Ticket           string
	TicketPass       bool
	TicketMessage    string
	CommitCount      int
	MaintenanceMerge bool
	Overrides        overrides.Flags
}

// Validator runs the checks against one pull request at a time. It holds no
// per-run state and may be shared.
type Validator struct {
	tickets  TicketLookup
	commits  CommitLister
	accepted map[string]struct{}
}

// Option configures a Validator.
type Option func(*Validator)

// WithAcceptedStatuses replaces the accepted ticket workflow states.
func WithAcceptedStatuses(statuses ...string) Option {
	return func(v *Validator) {
		v.accepted = make(map[string]struct{}, len(statuses))
		for _, s := range statuses {
			if s = strings.TrimSpace(s); s != "" {
				v.accepted[s] = struct{}{}
			}
		}
	}
}

// New constructs a Validator.
func New(tickets TicketLookup, commits CommitLister, opts ...Option) *Validator {
	v := &Validator{tickets: tickets, commits: commits}
	WithAcceptedStatuses(DefaultAcceptedStatuses...)(v)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every check against pr. Failing checks are reported as a
// *Failure.
func (v *Validator) Validate(ctx context.Context, pr pullrequest.PullRequest) (*Outcome, error) {
	log := clog.FromContext(ctx).With("pr", pr.String())

	flags := overrides.Parse(pr.Body)

	ticket, ok := ticketref.Parse(pr.Title)
	if !ok {
		return nil, failf(KindInput, "pull request title must start with a ticket identifier")
	}
	log = log.With("ticket", ticket)

	var (
		state   issuetracker.TicketState
		commits []pullrequest.Commit
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		state, err = v.tickets.Lookup(egCtx, ticket)
		return err
	})
	eg.Go(func() (err error) {
		commits, err = v.commits.ListCommits(egCtx, pr)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, &Failure{Kind: KindTransport, Message: "fetching pull request data", Err: err}
	}

	maint := IsMaintenanceMerge(pr)

	if !state.Found {
		return nil, failf(KindPolicy, "ticket %s not found", ticket)
	}
	if _, ok := v.accepted[state.Status]; !ok {
		return nil, failf(KindPolicy, "ticket %s is not accepted; status is %s", ticket, state.Status)
	}

	skipMatch := flags.Enabled(overrides.DisableJiraIssueMatch) || maint
	for _, c := range commits {
		ref, ok := ticketref.Parse(c.Message)
		if !ok {
			return nil, failf(KindInput, "commit %s message must start with a ticket identifier", c.ShortSHA)
		}
		if ref != ticket && !skipMatch {
			return nil, failf(KindConsistency, "commit %s message ticket %s does not match pull request ticket %s", c.ShortSHA, ref, ticket)
		}
	}

	if len(commits) == MaxCommits {
		return nil, failf(KindPolicy, "too many commits: more than %d commits cannot be checked; rebase and squash", MaxCommits)
	}

	log.With("commits", len(commits)).With("maintenance", maint).Info("Validation passed")
	return &Outcome{
		Ticket:           ticket,
		TicketPass:       true,
		TicketMessage:    fmt.Sprintf("%s is %s", ticket, state.Status),
		CommitCount:      len(commits),
		MaintenanceMerge: maint,
		Overrides:        flags,
	}, nil
}

// IsMaintenanceMerge reports whether pr merges a maint/ branch of the same
// repository into main or master.
func IsMaintenanceMerge(pr pullrequest.PullRequest) bool {
	if pr.BaseRef != "main" && pr.BaseRef != "master" {
		return false
	}
	rest, ok := strings.CutPrefix(pr.HeadRef, "maint/")
	if !ok || rest == "" {
		return false
	}
	return pr.BaseRepo != "" && pr.BaseRepo == pr.HeadRepo
}
