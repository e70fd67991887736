/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ticketreconciler runs ticket validation for one pull request event
// and routes the result.
//
// A passing run hands its outcome to the status publisher. A failing run
// never publishes the named statuses; its *validation.Failure goes to the
// configured FailureReporter instead:
//
//   - ActionsReporter writes a GitHub Actions error annotation.
//   - StatusReporter posts a failing ticket-gate commit status.
//
// # Basic Usage
//
//	r := ticketreconciler.New(
//	    ticketreconciler.WithValidator(validator),
//	    ticketreconciler.WithPublisher(publisher),
//	    ticketreconciler.WithFailureReporter(ticketreconciler.NewActionsReporter(os.Stdout)),
//	)
//	res, err := r.Reconcile(ctx, pr, "synchronize")
//
// # Webhooks
//
// WebhookHandler serves GitHub pull_request deliveries. Signed payloads are
// verified against the webhook secret, and only the opened, edited, reopened
// and synchronize actions start a run. Validation failures are answered with
// 200 since they have been reported; operational errors are answered with 500.
package ticketreconciler
