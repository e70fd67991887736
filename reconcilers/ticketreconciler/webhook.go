/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ticketreconciler

import (
	"fmt"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"

	"chainguard.dev/ticketgate/pullrequest"
)

// handledActions are the pull_request actions that can change the title,
// body or commits.
var handledActions = map[string]bool{
	"opened":      true,
	"edited":      true,
	"reopened":    true,
	"synchronize": true,
}

// WebhookHandler runs the Reconciler for GitHub webhook deliveries.
type WebhookHandler struct {
	rec    *Reconciler
	secret []byte
}

// NewWebhookHandler verifies deliveries against secret. An empty secret
// accepts unsigned deliveries.
func NewWebhookHandler(rec *Reconciler, secret []byte) *WebhookHandler {
	return &WebhookHandler{rec: rec, secret: secret}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := clog.FromContext(ctx).With("delivery", github.DeliveryID(r))

	payload, err := github.ValidatePayload(r, h.secret)
	if err != nil {
		log.Warnf("Rejecting delivery: %v", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		log.Warnf("Rejecting delivery: %v", err)
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	var ev *github.PullRequestEvent
	switch e := event.(type) {
	case *github.PingEvent:
		fmt.Fprintln(w, "pong")
		return
	case *github.PullRequestEvent:
		ev = e
	default:
		log.Debugf("Ignoring %s event", github.WebHookType(r))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	action := ev.GetAction()
	if !handledActions[action] {
		log.Debugf("Ignoring pull_request action %q", action)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	pr, err := pullrequest.FromEvent(ev)
	if err != nil {
		log.Warnf("Rejecting delivery: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.rec.Reconcile(clog.WithLogger(ctx, log), pr, action)
	if err != nil {
		log.Errorf("Reconciling %s: %v", pr, err)
		http.Error(w, "reconciliation failed", http.StatusInternalServerError)
		return
	}
	if res.Passed() {
		fmt.Fprintf(w, "%s passed\n", pr)
		return
	}
	fmt.Fprintf(w, "%s failed: %s\n", pr, res.Failure.Message)
}
