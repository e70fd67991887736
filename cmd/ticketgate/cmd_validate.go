/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chainguard.dev/ticketgate/pullrequest"
	"chainguard.dev/ticketgate/reconcilers/ticketreconciler"
)

var validateFlags struct {
	eventPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the pull request of one event payload",
	Long: `Validate reads a pull_request event payload, checks the pull request and
publishes its commit statuses. Failures are written as GitHub Actions error
annotations and make the command exit non-zero.

The payload path defaults to GITHUB_EVENT_PATH. When GITHUB_STEP_SUMMARY is
set, a markdown table of the results is appended to it.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFlags.eventPath, "event", "", "Path to the pull_request event payload (default $GITHUB_EVENT_PATH)")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path := validateFlags.eventPath
	if path == "" {
		path = cfg.EventPath
	}
	if path == "" {
		return errors.New("no event payload: pass --event or set GITHUB_EVENT_PATH")
	}
	ev, err := pullrequest.LoadEvent(path)
	if err != nil {
		return err
	}
	pr, err := pullrequest.FromEvent(ev)
	if err != nil {
		return err
	}

	p, err := newPipeline(ctx, &cfg)
	if err != nil {
		return err
	}

	opts := []ticketreconciler.Option{
		ticketreconciler.WithValidator(p.validator),
		ticketreconciler.WithPublisher(p.publisher),
		ticketreconciler.WithFailureReporter(ticketreconciler.NewActionsReporter(cmd.OutOrStdout())),
	}
	if cfg.StepSummary != "" {
		f, err := os.OpenFile(cfg.StepSummary, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening step summary: %w", err)
		}
		defer f.Close()
		opts = append(opts, ticketreconciler.WithSummary(f))
	}

	res, err := ticketreconciler.New(opts...).Reconcile(ctx, pr, ev.GetAction())
	if err != nil {
		return err
	}
	return exitStatus(cmd.ErrOrStderr(), res)
}

func exitStatus(w io.Writer, res *ticketreconciler.Result) error {
	if res.Passed() {
		return nil
	}
	fmt.Fprintf(w, "ticketgate: %s\n", res.Failure.Message)
	return errValidationFailed
}
