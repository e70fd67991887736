/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package issuetracker looks up the workflow state of Jira tickets.
package issuetracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andygrunwald/go-jira"
	"github.com/chainguard-dev/clog"
)

// TicketState is the workflow state of a ticket. Found is false when the
// tracker has no such ticket.
type TicketState struct {
	Key    string
	Status string
	Found  bool
}

// NotFound returns the state of a ticket the tracker does not know.
func NotFound(key string) TicketState {
	return TicketState{Key: key}
}

// Client queries a Jira instance.
type Client struct {
	jira *jira.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	user       string
	token      string
	httpClient *http.Client
}

// WithBasicAuth authenticates with a user (or account email) and API token.
func WithBasicAuth(user, token string) Option {
	return func(o *options) {
		o.user = user
		o.token = token
	}
}

// WithBearerToken authenticates with a personal access token.
func WithBearerToken(token string) Option {
	return func(o *options) {
		o.user = ""
		o.token = token
	}
}

// WithHTTPClient sets the HTTP client used for unauthenticated access.
// Authentication options take precedence.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New constructs a Client for the Jira instance at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("jira base URL is required")
	}
	o := &options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(o)
	}

	hc := o.httpClient
	switch {
	case o.user != "":
		tp := &jira.BasicAuthTransport{Username: o.user, Password: o.token, Transport: o.httpClient.Transport}
		hc = tp.Client()
	case o.token != "":
		tp := &jira.PATAuthTransport{Token: o.token, Transport: o.httpClient.Transport}
		hc = tp.Client()
	}

	jc, err := jira.NewClient(hc, baseURL)
	if err != nil {
		return nil, fmt.Errorf("creating jira client: %w", err)
	}
	return &Client{jira: jc}, nil
}

// Lookup returns the workflow state of the ticket key. A ticket Jira does not
// know is reported through TicketState.Found, not as an error.
func (c *Client) Lookup(ctx context.Context, key string) (TicketState, error) {
	log := clog.FromContext(ctx).With("ticket", key)

	issue, resp, err := c.jira.Issue.GetWithContext(ctx, key, &jira.GetQueryOptions{Fields: "status"})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			log.Info("Ticket not found")
			return NotFound(key), nil
		}
		return TicketState{}, fmt.Errorf("fetching ticket %s: %w", key, err)
	}

	state := TicketState{Key: issue.Key, Found: true}
	if state.Key == "" {
		state.Key = key
	}
	if issue.Fields != nil && issue.Fields.Status != nil {
		state.Status = issue.Fields.Status.Name
	}
	log.With("status", state.Status).Debug("Fetched ticket")
	return state, nil
}
