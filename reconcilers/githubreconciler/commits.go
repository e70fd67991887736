/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/shurcooL/githubv4"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/validation"
)

// CommitLister lists pull request commits through the GraphQL API.
type CommitLister struct {
	gql *githubv4.Client
}

var _ validation.CommitLister = (*CommitLister)(nil)

// NewCommitLister constructs a CommitLister.
func NewCommitLister(gql *githubv4.Client) *CommitLister {
	return &CommitLister{gql: gql}
}

// ListCommits returns the first validation.MaxCommits commits of pr, oldest
// first. It does not page further.
func (l *CommitLister) ListCommits(ctx context.Context, pr pullrequest.PullRequest) ([]pullrequest.Commit, error) {
	var query struct {
		Repository struct {
			PullRequest struct {
				Commits struct {
					TotalCount int
					Nodes      []struct {
						Commit struct {
							AbbreviatedOid string `graphql:"abbreviatedOid"`
							Message        string
						}
					}
				} `graphql:"commits(first: $first)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]any{
		"owner":  githubv4.String(pr.Owner),
		"repo":   githubv4.String(pr.Repo),
		"number": githubv4.Int(pr.Number),
		"first":  githubv4.Int(validation.MaxCommits),
	}

	if err := l.gql.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("listing commits of %s: %w", pr, err)
	}

	commits := query.Repository.PullRequest.Commits
	out := make([]pullrequest.Commit, 0, len(commits.Nodes))
	for _, n := range commits.Nodes {
		out = append(out, pullrequest.Commit{
			ShortSHA: n.Commit.AbbreviatedOid,
			Message:  n.Commit.Message,
		})
	}
	clog.FromContext(ctx).With("fetched", len(out)).With("total", commits.TotalCount).Debug("Listed commits")
	return out, nil
}
