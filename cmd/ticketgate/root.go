/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"chainguard.dev/ticketgate/issuetracker"
	"chainguard.dev/ticketgate/reconcilers/githubreconciler"
	"chainguard.dev/ticketgate/statuspublisher"
	"chainguard.dev/ticketgate/validation"
)

// version is set at build time via -ldflags.
var version = "dev"

// errValidationFailed makes the process exit non-zero once the failure has
// already been reported.
var errValidationFailed = errors.New("validation failed")

type config struct {
	ExemptRepos      []string `env:"STATUS_EXEMPT_REPOS"`
	AcceptedStatuses []string `env:"ACCEPTED_STATUSES,default=Accepted,Reviewing,Review Feedback"`

	GitHubToken          string `env:"GITHUB_TOKEN"`
	GitHubAppID          int64  `env:"GITHUB_APP_ID"`
	GitHubInstallationID int64  `env:"GITHUB_INSTALLATION_ID"`
	GitHubAppPrivateKey  string `env:"GITHUB_APP_PRIVATE_KEY"`
	GitHubAPIURL         string `env:"GITHUB_API_URL"`
	GitHubGraphQLURL     string `env:"GITHUB_GRAPHQL_URL"`

	EventPath   string `env:"GITHUB_EVENT_PATH"`
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`

	JiraBaseURL  string `env:"JIRA_BASE_URL"`
	JiraUser     string `env:"JIRA_USER"`
	JiraAPIToken string `env:"JIRA_API_TOKEN"`

	Port          int    `env:"PORT,default=8080"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

var cfg config

var rootCmd = &cobra.Command{
	Use:   "ticketgate",
	Short: "Check pull requests against their Jira tickets",
	Long: `ticketgate checks that a pull request title names a Jira ticket, that the
ticket is in an accepted state, and that every commit names the same ticket.
Results are published as the jira-ticket, single-commit and maint-merge
commit statuses.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd.Context(), envconfig.OsLookuper(), &cfg)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.Version = version
}

func loadConfig(ctx context.Context, l envconfig.Lookuper, c *config) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: c, Lookuper: l}); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}
	for _, r := range c.ExemptRepos {
		if r = strings.TrimSpace(r); r == "" {
			continue
		}
		if _, _, err := githubreconciler.ParseRepository(r); err != nil {
			return fmt.Errorf("STATUS_EXEMPT_REPOS: %w", err)
		}
	}
	return nil
}

func (c *config) credentials() githubreconciler.Credentials {
	return githubreconciler.Credentials{
		Token:          c.GitHubToken,
		AppID:          c.GitHubAppID,
		InstallationID: c.GitHubInstallationID,
		PrivateKey:     []byte(c.GitHubAppPrivateKey),
	}
}

func (c *config) endpoints() githubreconciler.Endpoints {
	return githubreconciler.Endpoints{
		APIURL:     c.GitHubAPIURL,
		GraphQLURL: c.GitHubGraphQLURL,
	}
}

func (c *config) jiraOptions() []issuetracker.Option {
	switch {
	case c.JiraUser != "" && c.JiraAPIToken != "":
		return []issuetracker.Option{issuetracker.WithBasicAuth(c.JiraUser, c.JiraAPIToken)}
	case c.JiraAPIToken != "":
		return []issuetracker.Option{issuetracker.WithBearerToken(c.JiraAPIToken)}
	default:
		return nil
	}
}

func (c *config) publisherOptions() []statuspublisher.Option {
	return []statuspublisher.Option{statuspublisher.WithExemptRepos(c.ExemptRepos...)}
}

// pipeline holds the collaborators shared by the validate and serve commands.
type pipeline struct {
	validator *validation.Validator
	publisher *statuspublisher.Publisher
}

func newPipeline(ctx context.Context, c *config) (*pipeline, error) {
	if strings.TrimSpace(c.JiraBaseURL) == "" {
		return nil, errors.New("JIRA_BASE_URL is required")
	}
	tickets, err := issuetracker.New(c.JiraBaseURL, c.jiraOptions()...)
	if err != nil {
		return nil, fmt.Errorf("creating jira client: %w", err)
	}
	gh, err := githubreconciler.NewClients(ctx, c.credentials(), c.endpoints())
	if err != nil {
		return nil, fmt.Errorf("creating github clients: %w", err)
	}
	return &pipeline{
		validator: validation.New(tickets, githubreconciler.NewCommitLister(gh.GraphQL),
			validation.WithAcceptedStatuses(c.AcceptedStatuses...)),
		publisher: statuspublisher.New(githubreconciler.NewStatusSink(gh.REST), c.publisherOptions()...),
	}, nil
}
