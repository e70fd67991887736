/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubreconciler connects ticket validation to GitHub.
//
// It builds authenticated REST and GraphQL clients from either a token or
// GitHub App credentials, lists pull request commits with a single GraphQL
// query, and publishes commit statuses through the REST API.
//
//	clients, err := githubreconciler.NewClients(ctx,
//	    githubreconciler.Credentials{Token: os.Getenv("GITHUB_TOKEN")},
//	    githubreconciler.Endpoints{},
//	)
//	lister := githubreconciler.NewCommitLister(clients.GraphQL)
//	sink := githubreconciler.NewStatusSink(clients.REST)
package githubreconciler
