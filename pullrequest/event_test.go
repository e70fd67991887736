/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pullrequest

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v75/github"
)

func TestLoadEvent(t *testing.T) {
	ev, err := LoadEvent(filepath.Join("testdata", "pull_request.json"))
	if err != nil {
		t.Fatalf("LoadEvent() error: got = %v, wanted = nil", err)
	}
	if got, want := ev.GetAction(), "synchronize"; got != want {
		t.Errorf("action: got = %q, wanted = %q", got, want)
	}

	got, err := FromEvent(ev)
	if err != nil {
		t.Fatalf("FromEvent() error: got = %v, wanted = nil", err)
	}
	want := PullRequest{
		Number:   42,
		Title:    "ABC-123 Add retries to the uploader",
		Body:     "Retries uploads.\n\nALLOW_MANY_COMMITS=true # two logical steps\n",
		State:    "open",
		BaseRef:  "main",
		HeadRef:  "feature/uploader",
		HeadSHA:  "8f3c2d1e9a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d",
		BaseRepo: "acme/widgets",
		HeadRepo: "acme/widgets",
		Owner:    "acme",
		Repo:     "widgets",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromEvent() mismatch (-want +got):\n%s", diff)
	}
	if got, want := got.String(), "acme/widgets#42"; got != want {
		t.Errorf("String(): got = %q, wanted = %q", got, want)
	}
}

func TestLoadEventErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{{
		name: "missing file",
		path: filepath.Join("testdata", "does-not-exist.json"),
	}, {
		name: "not a pull request event",
		path: filepath.Join("testdata", "push.json"),
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadEvent(tt.path); err == nil {
				t.Error("LoadEvent() error: got = nil, wanted = non-nil")
			}
		})
	}
}

func TestFromGitHubErrors(t *testing.T) {
	if _, err := FromGitHub(nil); err == nil {
		t.Error("FromGitHub(nil) error: got = nil, wanted = non-nil")
	}
	if _, err := FromEvent(&github.PullRequestEvent{}); err == nil {
		t.Error("FromEvent(empty) error: got = nil, wanted = non-nil")
	}
	pr := &github.PullRequest{Number: github.Ptr(7)}
	if _, err := FromGitHub(pr); err == nil {
		t.Error("FromGitHub(no base) error: got = nil, wanted = non-nil")
	}
}

func TestFromGitHubForkHead(t *testing.T) {
	pr := &github.PullRequest{
		Number: github.Ptr(9),
		State:  github.Ptr("open"),
		Base: &github.PullRequestBranch{
			Ref: github.Ptr("main"),
			Repo: &github.Repository{
				Name:     github.Ptr("widgets"),
				FullName: github.Ptr("acme/widgets"),
				Owner:    &github.User{Login: github.Ptr("acme")},
			},
		},
		Head: &github.PullRequestBranch{
			Ref: github.Ptr("maint/1.2"),
			Repo: &github.Repository{
				FullName: github.Ptr("someone/widgets"),
			},
		},
	}
	got, err := FromGitHub(pr)
	if err != nil {
		t.Fatalf("FromGitHub() error: got = %v, wanted = nil", err)
	}
	if got.BaseRepo == got.HeadRepo {
		t.Errorf("repos: got = %q == %q, wanted = different", got.BaseRepo, got.HeadRepo)
	}
}
