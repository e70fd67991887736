/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package testing provides an in-memory status sink for tests.
package testing

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/statuspublisher"
)

// Sent is one status received by a Recorder.
type Sent struct {
	Repo    string
	SHA     string
	Context string
	State   string
	Message string
	URL     string
}

// Recorder is a statuspublisher.Sink that keeps every status it receives.
// Sends for contexts listed in Fail return the associated error.
type Recorder struct {
	Fail map[string]error

	mu   sync.Mutex
	sent []Sent
}

var _ statuspublisher.Sink = (*Recorder)(nil)

// Send implements statuspublisher.Sink.
func (r *Recorder) Send(_ context.Context, pr pullrequest.PullRequest, rep statuspublisher.Report) error {
	if err := r.Fail[rep.Context]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{
		Repo:    pr.FullName(),
		SHA:     pr.HeadSHA,
		Context: rep.Context,
		State:   rep.State(),
		Message: rep.Message,
		URL:     rep.TargetURL,
	})
	return nil
}

// Sent returns the received statuses ordered by context, since sends arrive
// concurrently.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.sent)
	slices.SortFunc(out, func(a, b Sent) int { return cmp.Compare(a.Context, b.Context) })
	return out
}
