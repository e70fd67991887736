/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statuspublisher

import "strings"

// Option customizes the Publisher.
type Option func(*config)

type config struct {
	exempt    map[string]struct{}
	detailURL string
}

func defaultConfig() *config {
	return &config{exempt: map[string]struct{}{}}
}

// WithExemptRepos adds "owner/repo" names whose statuses are never published.
// Names are matched exactly.
func WithExemptRepos(repos ...string) Option {
	return func(c *config) {
		for _, r := range repos {
			if r = strings.TrimSpace(r); r != "" {
				c.exempt[r] = struct{}{}
			}
		}
	}
}

// WithDetailURL sets the link attached to the jira-ticket status.
func WithDetailURL(url string) Option {
	return func(c *config) { c.detailURL = url }
}
