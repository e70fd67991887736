/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pullrequest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v75/github"
)

// FromGitHub converts a go-github pull request into a snapshot.
func FromGitHub(pr *github.PullRequest) (PullRequest, error) {
	if pr == nil {
		return PullRequest{}, errors.New("pull request is missing")
	}
	base := pr.GetBase()
	repo := base.GetRepo()
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return PullRequest{}, fmt.Errorf("pull request #%d has no base repository", pr.GetNumber())
	}
	return PullRequest{
		Number:   pr.GetNumber(),
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
		State:    pr.GetState(),
		BaseRef:  base.GetRef(),
		HeadRef:  pr.GetHead().GetRef(),
		HeadSHA:  pr.GetHead().GetSHA(),
		BaseRepo: repo.GetFullName(),
		HeadRepo: pr.GetHead().GetRepo().GetFullName(),
		Owner:    repo.GetOwner().GetLogin(),
		Repo:     repo.GetName(),
	}, nil
}

// FromEvent extracts the snapshot from a pull_request event.
func FromEvent(ev *github.PullRequestEvent) (PullRequest, error) {
	if ev == nil || ev.PullRequest == nil {
		return PullRequest{}, errors.New("event has no pull_request")
	}
	return FromGitHub(ev.PullRequest)
}

// LoadEvent reads a pull_request event payload from path, as written by
// GitHub Actions to GITHUB_EVENT_PATH.
func LoadEvent(path string) (*github.PullRequestEvent, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	var ev github.PullRequestEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	if ev.PullRequest == nil {
		return nil, fmt.Errorf("event %s is not a pull_request event", path)
	}
	return &ev, nil
}
