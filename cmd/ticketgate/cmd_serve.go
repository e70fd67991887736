/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"chainguard.dev/ticketgate/reconcilers/ticketreconciler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Validate pull requests from GitHub webhook deliveries",
	Long: `Serve listens on PORT for GitHub webhook deliveries at /webhook. Deliveries
are verified against WEBHOOK_SECRET when it is set. Failures are published as
a failing ticket-gate commit status.

Prometheus metrics are served at /metrics and a liveness probe at /healthz.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(ctx, &cfg)
	if err != nil {
		return err
	}
	rec := ticketreconciler.New(
		ticketreconciler.WithValidator(p.validator),
		ticketreconciler.WithPublisher(p.publisher),
		ticketreconciler.WithFailureReporter(ticketreconciler.NewStatusReporter(p.publisher)),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newMux(rec, []byte(cfg.WebhookSecret)),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		clog.InfoContextf(ctx, "Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
		clog.InfoContextf(ctx, "Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newMux(rec *ticketreconciler.Reconciler, secret []byte) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /webhook", ticketreconciler.NewWebhookHandler(rec, secret))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}
