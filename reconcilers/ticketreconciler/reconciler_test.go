/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ticketreconciler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"chainguard.dev/ticketgate/issuetracker"
	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/statuspublisher"
	sptesting "chainguard.dev/ticketgate/statuspublisher/testing"
	"chainguard.dev/ticketgate/validation"
)

type fakeJira map[string]string

func (f fakeJira) Lookup(_ context.Context, key string) (issuetracker.TicketState, error) {
	if status, ok := f[key]; ok {
		return issuetracker.TicketState{Key: key, Status: status, Found: true}, nil
	}
	return issuetracker.NotFound(key), nil
}

type fakeCommits []string

func (f fakeCommits) ListCommits(context.Context, pullrequest.PullRequest) ([]pullrequest.Commit, error) {
	out := make([]pullrequest.Commit, 0, len(f))
	for i, m := range f {
		out = append(out, pullrequest.Commit{ShortSHA: fmt.Sprintf("abc%04d", i), Message: m})
	}
	return out, nil
}

type recordingReporter struct {
	failures []*validation.Failure
	err      error
}

func (r *recordingReporter) ReportFailure(_ context.Context, _ pullrequest.PullRequest, f *validation.Failure) error {
	r.failures = append(r.failures, f)
	return r.err
}

func testPR(title string) pullrequest.PullRequest {
	return pullrequest.PullRequest{
		Number:   7,
		Title:    title,
		State:    pullrequest.StateOpen,
		BaseRef:  "main",
		HeadRef:  "maint/1.2",
		HeadSHA:  "feedface",
		BaseRepo: "acme/widgets",
		HeadRepo: "acme/widgets",
		Owner:    "acme",
		Repo:     "widgets",
	}
}

func newReconciler(commits fakeCommits, opts ...Option) (*Reconciler, *sptesting.Recorder) {
	rec := &sptesting.Recorder{}
	base := []Option{
		WithValidator(validation.New(fakeJira{"ABC-123": "Accepted"}, commits)),
		WithPublisher(statuspublisher.New(rec)),
	}
	return New(append(base, opts...)...), rec
}

func TestReconcilePasses(t *testing.T) {
	var summary strings.Builder
	r, rec := newReconciler(fakeCommits{"ABC-123 merge", "XYZ-1 backport"}, WithSummary(&summary))

	res, err := r.Reconcile(context.Background(), testPR("ABC-123 Merge maint/1.2"), "opened")
	require.NoError(t, err)
	if !res.Passed() {
		t.Fatalf("Passed() = false, failure = %v", res.Failure)
	}

	want := []sptesting.Sent{{
		Repo: "acme/widgets", SHA: "feedface", Context: "jira-ticket", State: "success", Message: "ABC-123 is Accepted",
	}, {
		Repo: "acme/widgets", SHA: "feedface", Context: "maint-merge", State: "failure", Message: "maintenance merge: use a merge commit and a new ticket",
	}, {
		Repo: "acme/widgets", SHA: "feedface", Context: "single-commit", State: "success", Message: "2 commits",
	}}
	if diff := cmp.Diff(want, rec.Sent()); diff != "" {
		t.Errorf("Sent() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(summary.String(), "maint-merge") {
		t.Errorf("summary = %q, wanted it to list maint-merge", summary.String())
	}
}

func TestReconcileFailureIsReported(t *testing.T) {
	var summary strings.Builder
	reporter := &recordingReporter{}
	r, rec := newReconciler(fakeCommits{"ABC-123 ok"}, WithFailureReporter(reporter), WithSummary(&summary))

	res, err := r.Reconcile(context.Background(), testPR("NOPE-9 Unknown ticket"), "synchronize")
	require.NoError(t, err)
	if res.Passed() {
		t.Fatal("Passed() = true, wanted = false")
	}
	if got, want := res.Failure.Message, "ticket NOPE-9 not found"; got != want {
		t.Errorf("Failure.Message: got = %q, wanted = %q", got, want)
	}
	if len(reporter.failures) != 1 || reporter.failures[0] != res.Failure {
		t.Errorf("reported failures: got = %v, wanted [%v]", reporter.failures, res.Failure)
	}
	if got := rec.Sent(); len(got) != 0 {
		t.Errorf("Sent(): got = %v, wanted none", got)
	}
	if !strings.Contains(summary.String(), "ticket NOPE-9 not found") {
		t.Errorf("summary = %q, wanted it to carry the failure", summary.String())
	}
}

func TestReconcileReporterError(t *testing.T) {
	boom := errors.New("stdout closed")
	r, _ := newReconciler(nil, WithFailureReporter(&recordingReporter{err: boom}))

	res, err := r.Reconcile(context.Background(), testPR("no ticket"), "opened")
	if !errors.Is(err, boom) {
		t.Errorf("Reconcile() error: got = %v, wanted = %v", err, boom)
	}
	if res == nil || res.Failure == nil || res.Failure.Kind != validation.KindInput {
		t.Errorf("Reconcile() result: got = %+v, wanted an input failure", res)
	}
}

func TestReconcilePublishError(t *testing.T) {
	boom := errors.New("rate limited")
	rec := &sptesting.Recorder{Fail: map[string]error{"jira-ticket": boom}}
	r := New(
		WithValidator(validation.New(fakeJira{"ABC-123": "Accepted"}, fakeCommits{"ABC-123 x"})),
		WithPublisher(statuspublisher.New(rec)),
	)

	_, err := r.Reconcile(context.Background(), testPR("ABC-123 x"), "opened")
	if !errors.Is(err, boom) {
		t.Errorf("Reconcile() error: got = %v, wanted = %v", err, boom)
	}
}

func TestReconcileRequiresCollaborators(t *testing.T) {
	if _, err := New().Reconcile(context.Background(), testPR("ABC-123 x"), "opened"); err == nil {
		t.Error("Reconcile() error: got = nil, wanted = non-nil")
	}
}

func TestActionsReporter(t *testing.T) {
	tests := []struct {
		name    string
		failure *validation.Failure
		want    string
	}{{
		name:    "policy",
		failure: &validation.Failure{Kind: validation.KindPolicy, Message: "ticket ABC-1 not found"},
		want:    "::error title=ticket policy check::ticket ABC-1 not found\n",
	}, {
		name:    "escaped",
		failure: &validation.Failure{Kind: validation.KindInput, Message: "100% wrong\nsecond line"},
		want:    "::error title=ticket input check::100%25 wrong%0Asecond line\n",
	}, {
		name:    "transport includes cause",
		failure: &validation.Failure{Kind: validation.KindTransport, Message: "fetching pull request data", Err: errors.New("dial tcp: timeout")},
		want:    "::error title=ticket transport check::fetching pull request data: dial tcp: timeout\n",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, NewActionsReporter(&sb).ReportFailure(context.Background(), testPR("x"), tt.failure))
			if got := sb.String(); got != tt.want {
				t.Errorf("ReportFailure() wrote %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestStatusReporter(t *testing.T) {
	rec := &sptesting.Recorder{}
	rep := NewStatusReporter(statuspublisher.New(rec))

	f := &validation.Failure{Kind: validation.KindConsistency, Message: "commit abc0001 message ticket XYZ-1 does not match pull request ticket ABC-123"}
	require.NoError(t, rep.ReportFailure(context.Background(), testPR("ABC-123 x"), f))

	want := []sptesting.Sent{{
		Repo: "acme/widgets", SHA: "feedface", Context: "ticket-gate", State: "failure", Message: f.Message,
	}}
	if diff := cmp.Diff(want, rec.Sent()); diff != "" {
		t.Errorf("Sent() mismatch (-want +got):\n%s", diff)
	}
}
