/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Credentials selects how the GitHub clients authenticate. A token takes
// precedence over GitHub App credentials.
type Credentials struct {
	Token string

	AppID          int64
	InstallationID int64
	PrivateKey     []byte
}

// Endpoints overrides the GitHub API locations, for GitHub Enterprise.
// Empty fields keep the github.com defaults.
type Endpoints struct {
	APIURL     string
	GraphQLURL string
}

// Clients bundles the REST and GraphQL clients sharing one authenticated
// transport.
type Clients struct {
	REST    *github.Client
	GraphQL *githubv4.Client
}

// NewHTTPClient returns an http.Client that authenticates as creds.
func NewHTTPClient(ctx context.Context, creds Credentials, ep Endpoints) (*http.Client, error) {
	switch {
	case creds.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
		return oauth2.NewClient(ctx, ts), nil

	case creds.AppID != 0:
		if creds.InstallationID == 0 {
			return nil, errors.New("github app installation ID is required")
		}
		if len(creds.PrivateKey) == 0 {
			return nil, errors.New("github app private key is required")
		}
		tr, err := ghinstallation.New(http.DefaultTransport, creds.AppID, creds.InstallationID, creds.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("creating github app transport: %w", err)
		}
		if ep.APIURL != "" {
			tr.BaseURL = strings.TrimSuffix(ep.APIURL, "/")
		}
		return &http.Client{Transport: tr}, nil

	default:
		return nil, errors.New("no github credentials: set a token or github app credentials")
	}
}

// NewClients constructs the REST and GraphQL clients.
func NewClients(ctx context.Context, creds Credentials, ep Endpoints) (*Clients, error) {
	hc, err := NewHTTPClient(ctx, creds, ep)
	if err != nil {
		return nil, err
	}
	return newClients(hc, ep)
}

func newClients(hc *http.Client, ep Endpoints) (*Clients, error) {
	rest := github.NewClient(hc)
	if ep.APIURL != "" {
		u, err := url.Parse(strings.TrimSuffix(ep.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github api url: %w", err)
		}
		rest.BaseURL = u
	}

	gql := githubv4.NewClient(hc)
	if ep.GraphQLURL != "" {
		gql = githubv4.NewEnterpriseClient(ep.GraphQLURL, hc)
	}
	return &Clients{REST: rest, GraphQL: gql}, nil
}

// ParseRepository splits an "owner/repo" full name.
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("malformed repository %q: want owner/repo", s)
	}
	return owner, repo, nil
}
