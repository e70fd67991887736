/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package statuspublisher turns a validation outcome into named commit
// statuses and publishes them.
//
// # Statuses
//
// Every published run reports:
//
//   - jira-ticket: whether the pull request ticket is in an accepted state.
//   - single-commit: whether the pull request has exactly one commit, or more
//     than one with ALLOW_MANY_COMMITS set or as a maintenance merge.
//
// A maintenance merge additionally reports maint-merge, which always fails
// and asks for a merge commit and a new ticket.
//
// # Suppression
//
// Nothing is published for repositories on the exempt list or for pull
// requests that are no longer open. The reason is logged and counted.
//
// # Basic Usage
//
//	pub := statuspublisher.New(sink,
//	    statuspublisher.WithExemptRepos("acme/legacy"),
//	)
//	reports, err := pub.Publish(ctx, pr, outcome)
//
// Reports is exported so callers can preview the statuses for an outcome
// without publishing them.
package statuspublisher
