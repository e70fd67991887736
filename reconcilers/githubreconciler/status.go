/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/go-github/v75/github"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/statuspublisher"
)

// MaxDescriptionLength is the longest commit status description GitHub
// accepts.
const MaxDescriptionLength = 140

// StatusSink publishes commit statuses on the pull request head commit.
type StatusSink struct {
	gh *github.Client
}

var _ statuspublisher.Sink = (*StatusSink)(nil)

// NewStatusSink constructs a StatusSink.
func NewStatusSink(gh *github.Client) *StatusSink {
	return &StatusSink{gh: gh}
}

// Send implements statuspublisher.Sink.
func (s *StatusSink) Send(ctx context.Context, pr pullrequest.PullRequest, r statuspublisher.Report) error {
	if pr.HeadSHA == "" {
		return errors.New("pull request has no head commit")
	}
	status := &github.RepoStatus{
		State:       github.Ptr(r.State()),
		Context:     github.Ptr(r.Context),
		Description: github.Ptr(Truncate(r.Message, MaxDescriptionLength)),
	}
	if r.TargetURL != "" {
		status.TargetURL = github.Ptr(r.TargetURL)
	}
	if _, _, err := s.gh.Repositories.CreateStatus(ctx, pr.Owner, pr.Repo, pr.HeadSHA, status); err != nil {
		return fmt.Errorf("creating status: %w", err)
	}
	return nil
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
