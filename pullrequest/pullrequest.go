/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pullrequest holds the immutable pull request snapshot a validation
// run works from, and loads it from GitHub event payloads.
package pullrequest

import "fmt"

// StateOpen is the state of a pull request that can still be merged.
const StateOpen = "open"

// PullRequest is a snapshot of a pull request taken when the event arrived.
type PullRequest struct {
	Number int
	Title  string
	Body   string
	State  string

	BaseRef string
	HeadRef string
	HeadSHA string

	// BaseRepo and HeadRepo are "owner/repo" full names.
	BaseRepo string
	HeadRepo string

	// Owner and Repo identify the repository the pull request belongs to.
	Owner string
	Repo  string
}

// FullName returns "owner/repo" for the repository the pull request targets.
func (p PullRequest) FullName() string {
	return p.Owner + "/" + p.Repo
}

// String identifies the pull request in logs.
func (p PullRequest) String() string {
	return fmt.Sprintf("%s#%d", p.FullName(), p.Number)
}

// Commit is one commit of a pull request.
type Commit struct {
	ShortSHA string
	Message  string
}
